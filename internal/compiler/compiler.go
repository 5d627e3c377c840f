// Package compiler generates the transition graph of a model: symbolic edges
// between compartment names first, then their resolution to registry indices.
package compiler

import (
	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/aretw0/epigraph/pkg/registry"
)

// Edge is a transition in symbolic form. It only exists during compilation.
type Edge struct {
	From string
	To   string
	Kind domain.TransitionKind
}

type emitFunc func(from, to string, kind domain.TransitionKind)

// Symbolic returns the symbolic edge list for p in generation order.
// Generation runs twice: once to count, once to fill a slice of exactly that size.
func Symbolic(p params.Parameters, reg *registry.Registry) []Edge {
	count := 0
	generate(p, reg, func(string, string, domain.TransitionKind) { count++ })

	edges := make([]Edge, 0, count)
	generate(p, reg, func(from, to string, kind domain.TransitionKind) {
		edges = append(edges, Edge{From: from, To: to, Kind: kind})
	})
	return edges
}

// Compile generates and resolves the transitions of p against reg.
// An endpoint missing from the registry aborts compilation with a
// *domain.UnresolvedEndpointError.
func Compile(p params.Parameters, reg *registry.Registry) ([]domain.Transition, error) {
	return Resolve(Symbolic(p, reg), reg)
}

// Resolve maps every symbolic endpoint to its registry index, preserving order.
func Resolve(edges []Edge, reg *registry.Registry) ([]domain.Transition, error) {
	out := make([]domain.Transition, len(edges))
	for i, e := range edges {
		src, ok := reg.Lookup(e.From)
		if !ok {
			return nil, &domain.UnresolvedEndpointError{Name: e.From, Rule: e.Kind}
		}
		dst, ok := reg.Lookup(e.To)
		if !ok {
			return nil, &domain.UnresolvedEndpointError{Name: e.To, Rule: e.Kind}
		}
		out[i] = domain.Transition{Source: src, Dest: dst, Kind: e.Kind}
	}
	return out, nil
}

// generate emits the symbolic edges of every rule in their fixed order.
// Rules tied to a disabled feature (zero rate) emit nothing.
func generate(p params.Parameters, reg *registry.Registry, emit emitFunc) {
	n := reg.Lengths()

	// Self-loops carry no flow and arise only from collapsed chains.
	add := func(from, to string, kind domain.TransitionKind) {
		if from != to {
			emit(from, to, kind)
		}
	}

	vac := link(domain.ChainVaccinated)
	exp := link(domain.ChainExposed)
	qua := link(domain.ChainQuarantined)
	inf := link(domain.ChainInfected)
	iso := link(domain.ChainIsolated)

	// Entry points of the infectious stage. A zero-length infectious period
	// sends individuals straight to recovery.
	infEntry, isoEntry := inf(1), iso(1)
	if n.Infection == 0 {
		infEntry, isoEntry = domain.NameRecoveryImmunized, domain.NameRecoveryImmunized
	}

	// Births.
	if p.BirthRate != 0 {
		add(domain.NameBirth, domain.NameSusceptible, domain.KindBirth)
		if p.MaternalImmunityRate != 0 {
			add(domain.NameBirth, domain.NameMaternallyImmunized, domain.KindMaternalImmunity)
		}
	}

	// Natural mortality from every population compartment.
	if p.DeathRate != 0 {
		for _, name := range reg.Names() {
			if name == domain.NameBirth || name == domain.NameDead {
				continue
			}
			add(name, domain.NameDead, domain.KindMortality)
		}
	}

	// Vaccination chain.
	if p.VaccinationRate != 0 {
		if n.Vaccination > 0 {
			add(domain.NameSusceptible, vac(1), domain.KindVaccination)
			for i := 1; i < n.Vaccination; i++ {
				add(vac(i), vac(i+1), domain.KindVaccinationProgress)
			}
			add(vac(n.Vaccination), domain.NameVaccinationImmunized, domain.KindVaccineSuccess)
			add(vac(n.Vaccination), domain.NameSusceptible, domain.KindVaccineFailure)
		} else {
			add(domain.NameSusceptible, domain.NameVaccinationImmunized, domain.KindVaccineSuccess)
		}
	}

	// Infection entry.
	if p.BetaExp != 0 && n.Exposure > 0 {
		add(domain.NameSusceptible, exp(1), domain.KindExposure)
	}
	if p.BetaInf != 0 || (p.BetaExp != 0 && n.Exposure == 0) {
		add(domain.NameSusceptible, infEntry, domain.KindInfection)
	}

	// Incubation, with the parallel quarantine branch.
	for i := 1; i < n.Exposure; i++ {
		add(exp(i), exp(i+1), domain.KindIncubation)
	}
	if n.Exposure > 0 {
		add(exp(n.Exposure), infEntry, domain.KindOnset)
	}
	if p.QuarantineRate != 0 {
		for i := 1; i < n.Exposure; i++ {
			add(exp(i), qua(i+1), domain.KindQuarantine)
		}
	}
	for i := 1; i < n.Exposure; i++ {
		add(qua(i), qua(i+1), domain.KindQuarantineProgress)
	}
	if n.Exposure > 0 {
		add(qua(n.Exposure), isoEntry, domain.KindQuarantineOnset)
	}

	// Infectious period, with the parallel isolation branch.
	for i := 1; i < n.Infection; i++ {
		add(inf(i), inf(i+1), domain.KindInfectionProgress)
	}
	if p.IsolationRate != 0 {
		for i := 1; i < n.Infection; i++ {
			add(inf(i), iso(i+1), domain.KindIsolation)
		}
	}
	for i := 1; i < n.Infection; i++ {
		add(iso(i), iso(i+1), domain.KindIsolationProgress)
	}

	// Competing outcomes at the end of both infectious chains.
	if n.Infection > 0 {
		last := []string{inf(n.Infection), iso(n.Infection)}
		for _, src := range last {
			add(src, domain.NameRecoveryImmunized, domain.KindRecovery)
		}
		for _, src := range last {
			add(src, domain.NameSusceptible, domain.KindRelapse)
		}
		for _, src := range last {
			add(src, domain.NameDead, domain.KindFatality)
		}
	}
}

func link(prefix string) func(int) string {
	return func(i int) string { return registry.ChainName(prefix, i) }
}

// Unreachable lists the non-Birth, non-terminal compartments that no path from
// Susceptible reaches. Disabled features (zero rates) legitimately produce
// unreachable chains; callers decide whether that matters.
func Unreachable(compartments []domain.Compartment, transitions []domain.Transition) []string {
	if len(compartments) < 2 {
		return nil
	}
	adj := make([][]int, len(compartments))
	for _, t := range transitions {
		adj[t.Source] = append(adj[t.Source], t.Dest)
	}

	start := -1
	for _, c := range compartments {
		if c.Name == domain.NameSusceptible {
			start = c.Index
			break
		}
	}
	visited := make([]bool, len(compartments))
	var queue []int
	if start >= 0 {
		queue = append(queue, start)
		visited[start] = true
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var out []string
	for _, c := range compartments {
		if c.Type == domain.CompartmentBirth || c.Type.IsTerminal() || visited[c.Index] {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}
