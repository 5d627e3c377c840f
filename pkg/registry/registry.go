// Package registry generates the ordered compartment list of a model and the
// transient name→index symbol table used while transitions are resolved.
package registry

import (
	"fmt"

	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
)

// Registry is the State Registry: the ordered compartments of one parameter
// set plus a name lookup. It is built once and never modified afterwards.
type Registry struct {
	compartments []domain.Compartment
	index        map[string]int
	lengths      domain.ChainLengths
	redirects    []Redirect
}

// ChainName returns the name of link i (1-based) of a chain.
func ChainName(prefix string, i int) string {
	return fmt.Sprintf("%s_%d", prefix, i)
}

// Size returns the exact number of compartments for the given chain lengths.
func Size(lengths domain.ChainLengths) int {
	return lengths.Compartments()
}

// MaxSize is the largest registry New will allocate.
var MaxSize = Size(domain.ChainLengths{
	Vaccination: params.MaxChainLength,
	Exposure:    params.MaxChainLength,
	Infection:   params.MaxChainLength,
})

// Redirect records an initial count that was moved past a zero-length chain
// to the compartment that follows it.
type Redirect struct {
	Field string
	To    string
	Count float64
}

func checkLengths(lengths domain.ChainLengths) error {
	for _, n := range []int{lengths.Vaccination, lengths.Exposure, lengths.Infection} {
		if n < 0 || n > params.MaxChainLength {
			return fmt.Errorf("%w: chain of %d links, maximum is %d", domain.ErrCapacityExceeded, n, params.MaxChainLength)
		}
	}
	return nil
}

// New generates the compartment list for p. The slice is allocated with the
// exact capacity derived from the chain lengths and never grows past it;
// lengths beyond MaxChainLength fail with domain.ErrCapacityExceeded before
// anything is allocated.
//
// The initial count of a zero-length chain moves to the compartment that
// follows it: Infected_1 (or Isolated_1 for quarantine), and
// Recovery_Immunized when the infectious chain is empty too.
func New(p params.Parameters) (*Registry, error) {
	lengths := p.ChainLengths()
	if err := checkLengths(lengths); err != nil {
		return nil, err
	}
	size := Size(lengths)
	r := &Registry{
		compartments: make([]domain.Compartment, 0, size),
		index:        make(map[string]int, size),
		lengths:      lengths,
	}

	extra := r.redirectSeeds(p.Initial, lengths)

	steps := []struct {
		name  string
		typ   domain.CompartmentType
		count float64
	}{
		{domain.NameBirth, domain.CompartmentBirth, 0},
		{domain.NameSusceptible, domain.CompartmentSusceptible, p.Initial.Susceptible},
	}
	for _, s := range steps {
		if err := r.add(s.name, s.typ, s.count+extra[s.name]); err != nil {
			return nil, err
		}
	}

	chains := []struct {
		prefix string
		typ    domain.CompartmentType
		length int
		seed   float64
	}{
		{domain.ChainVaccinated, domain.CompartmentSusceptible, lengths.Vaccination, 0},
		{domain.ChainExposed, domain.CompartmentExposed, lengths.Exposure, p.Initial.Exposed},
		{domain.ChainQuarantined, domain.CompartmentExposed, lengths.Exposure, p.Initial.Quarantined},
		{domain.ChainInfected, domain.CompartmentInfected, lengths.Infection, p.Initial.Infected},
		{domain.ChainIsolated, domain.CompartmentInfected, lengths.Infection, p.Initial.Isolated},
	}
	for _, c := range chains {
		// A zero-length chain contributes nothing; its seed was redirected.
		for i := 1; i <= c.length; i++ {
			count := extra[ChainName(c.prefix, i)]
			if i == 1 {
				count += c.seed
			}
			if err := r.add(ChainName(c.prefix, i), c.typ, count); err != nil {
				return nil, err
			}
		}
	}

	terminals := []struct {
		name  string
		typ   domain.CompartmentType
		count float64
	}{
		{domain.NameVaccinationImmunized, domain.CompartmentImmunized, p.Initial.VaccinationImmunized},
		{domain.NameMaternallyImmunized, domain.CompartmentImmunized, p.Initial.MaternallyImmunized},
		{domain.NameRecoveryImmunized, domain.CompartmentImmunized, p.Initial.RecoveryImmunized},
		{domain.NameDead, domain.CompartmentDead, 0},
	}
	for _, s := range terminals {
		if err := r.add(s.name, s.typ, s.count+extra[s.name]); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// redirectSeeds resolves where the seeds of empty chains land. It returns the
// extra initial count per compartment name and records each move.
func (r *Registry) redirectSeeds(init params.InitialCounts, lengths domain.ChainLengths) map[string]float64 {
	infEntry, isoEntry := ChainName(domain.ChainInfected, 1), ChainName(domain.ChainIsolated, 1)
	if lengths.Infection == 0 {
		infEntry, isoEntry = domain.NameRecoveryImmunized, domain.NameRecoveryImmunized
	}

	extra := make(map[string]float64)
	move := func(field string, count float64, empty bool, to string) {
		if count == 0 || !empty {
			return
		}
		extra[to] += count
		r.redirects = append(r.redirects, Redirect{Field: field, To: to, Count: count})
	}
	move("initial.exposed", init.Exposed, lengths.Exposure == 0, infEntry)
	move("initial.quarantined", init.Quarantined, lengths.Exposure == 0, isoEntry)
	move("initial.infected", init.Infected, lengths.Infection == 0, domain.NameRecoveryImmunized)
	move("initial.isolated", init.Isolated, lengths.Infection == 0, domain.NameRecoveryImmunized)
	return extra
}

// Redirects lists the initial counts moved past zero-length chains.
func (r *Registry) Redirects() []Redirect {
	out := make([]Redirect, len(r.redirects))
	copy(out, r.redirects)
	return out
}

func (r *Registry) add(name string, typ domain.CompartmentType, count float64) error {
	if len(r.compartments) == cap(r.compartments) {
		return fmt.Errorf("%w: compartment %q beyond %d entries", domain.ErrCapacityExceeded, name, cap(r.compartments))
	}
	if _, dup := r.index[name]; dup {
		return fmt.Errorf("duplicate compartment name %q", name)
	}
	idx := len(r.compartments)
	r.compartments = append(r.compartments, domain.Compartment{
		Index:        idx,
		Name:         name,
		Type:         typ,
		InitialCount: count,
	})
	r.index[name] = idx
	return nil
}

// Len returns the number of compartments.
func (r *Registry) Len() int { return len(r.compartments) }

// Lengths returns the chain lengths the registry was generated with.
func (r *Registry) Lengths() domain.ChainLengths { return r.lengths }

// Compartments returns a copy of the ordered compartment list.
func (r *Registry) Compartments() []domain.Compartment {
	out := make([]domain.Compartment, len(r.compartments))
	copy(out, r.compartments)
	return out
}

// Lookup resolves a compartment name to its index.
func (r *Registry) Lookup(name string) (int, bool) {
	idx, ok := r.index[name]
	return idx, ok
}

// Names returns the compartment names in index order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.compartments))
	for i, c := range r.compartments {
		names[i] = c.Name
	}
	return names
}
