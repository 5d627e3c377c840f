package compiler

import (
	"testing"

	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/aretw0/epigraph/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// daily returns whole-day chains: n_vac=3, n_exp=3, n_inf=5.
func daily() params.Parameters {
	p := params.Default()
	p.SamplingInterval = 1
	p.VaccinationPeriod = 3
	p.IncubationPeriod = 3
	p.InfectiousPeriod = 5
	p.Initial = params.InitialCounts{Susceptible: 9990, Exposed: 10}
	return p
}

func compile(t *testing.T, p params.Parameters) (*registry.Registry, []Edge, []domain.Transition) {
	t.Helper()
	reg, err := registry.New(p)
	require.NoError(t, err)
	transitions, err := Compile(p, reg)
	require.NoError(t, err)
	return reg, Symbolic(p, reg), transitions
}

func has(edges []Edge, from, to string) bool {
	for _, e := range edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

func TestCompile_DailyScenario(t *testing.T) {
	reg, edges, transitions := compile(t, daily())

	require.Len(t, transitions, 56)
	require.Len(t, edges, len(transitions))
	assert.Equal(t, len(edges), cap(edges), "symbolic list must be sized exactly")

	// Births come first, then mortality in index order.
	assert.Equal(t, Edge{"Birth", "Susceptible", domain.KindBirth}, edges[0])
	assert.Equal(t, Edge{"Susceptible", "Dead", domain.KindMortality}, edges[1])
	assert.Equal(t, Edge{"Recovery_Immunized", "Dead", domain.KindMortality}, edges[23])

	vaccination := []Edge{
		{"Susceptible", "Vaccinated_1", domain.KindVaccination},
		{"Vaccinated_1", "Vaccinated_2", domain.KindVaccinationProgress},
		{"Vaccinated_2", "Vaccinated_3", domain.KindVaccinationProgress},
		{"Vaccinated_3", "Vaccination_Immunized", domain.KindVaccineSuccess},
		{"Vaccinated_3", "Susceptible", domain.KindVaccineFailure},
		{"Susceptible", "Exposed_1", domain.KindExposure},
		{"Exposed_1", "Exposed_2", domain.KindIncubation},
		{"Exposed_2", "Exposed_3", domain.KindIncubation},
		{"Exposed_3", "Infected_1", domain.KindOnset},
		{"Exposed_1", "Quarantined_2", domain.KindQuarantine},
		{"Exposed_2", "Quarantined_3", domain.KindQuarantine},
		{"Quarantined_1", "Quarantined_2", domain.KindQuarantineProgress},
		{"Quarantined_2", "Quarantined_3", domain.KindQuarantineProgress},
		{"Quarantined_3", "Isolated_1", domain.KindQuarantineOnset},
		{"Infected_1", "Infected_2", domain.KindInfectionProgress},
	}
	assert.Equal(t, vaccination, edges[24:24+len(vaccination)])

	outcomes := []Edge{
		{"Infected_5", "Recovery_Immunized", domain.KindRecovery},
		{"Isolated_5", "Recovery_Immunized", domain.KindRecovery},
		{"Infected_5", "Susceptible", domain.KindRelapse},
		{"Isolated_5", "Susceptible", domain.KindRelapse},
		{"Infected_5", "Dead", domain.KindFatality},
		{"Isolated_5", "Dead", domain.KindFatality},
	}
	assert.Equal(t, outcomes, edges[len(edges)-6:])

	// Resolution keeps positions and maps names to registry indices.
	for i, e := range edges {
		src, _ := reg.Lookup(e.From)
		dst, _ := reg.Lookup(e.To)
		assert.Equal(t, domain.Transition{Source: src, Dest: dst, Kind: e.Kind}, transitions[i])
	}
}

func TestCompile_InfectedChainOrder(t *testing.T) {
	_, edges, _ := compile(t, daily())

	var kinds []domain.TransitionKind
	for _, e := range edges {
		switch e.Kind {
		case domain.KindInfectionProgress, domain.KindIsolation, domain.KindIsolationProgress:
			kinds = append(kinds, e.Kind)
		}
	}
	want := []domain.TransitionKind{}
	for _, k := range []domain.TransitionKind{domain.KindInfectionProgress, domain.KindIsolation, domain.KindIsolationProgress} {
		for i := 0; i < 4; i++ {
			want = append(want, k)
		}
	}
	assert.Equal(t, want, kinds)
}

func TestCompile_NoVaccinationChain(t *testing.T) {
	p := daily()
	p.VaccinationPeriod = 0.5

	_, edges, _ := compile(t, p)
	assert.False(t, has(edges, "Susceptible", "Vaccinated_1"))
	assert.True(t, has(edges, "Susceptible", "Vaccination_Immunized"), "empty chain degenerates to a direct edge")
	assert.True(t, has(edges, "Susceptible", "Exposed_1"))
	for _, e := range edges {
		assert.NotContains(t, e.From, "Vaccinated_")
		assert.NotContains(t, e.To, "Vaccinated_")
	}
}

func TestCompile_NoExposureChain(t *testing.T) {
	p := daily()
	p.IncubationPeriod = 0.5
	p.Initial.Exposed = 0

	_, edges, _ := compile(t, p)
	assert.True(t, has(edges, "Susceptible", "Infected_1"))
	assert.False(t, has(edges, "Susceptible", "Exposed_1"))
	for _, e := range edges {
		assert.NotContains(t, e.From, "Exposed_")
		assert.NotContains(t, e.From, "Quarantined_")
		assert.NotContains(t, e.To, "Exposed_")
		assert.NotContains(t, e.To, "Quarantined_")
	}
}

func TestCompile_NoInfectionChain(t *testing.T) {
	p := daily()
	p.InfectiousPeriod = 0.5

	_, edges, _ := compile(t, p)
	assert.True(t, has(edges, "Exposed_3", "Recovery_Immunized"))
	assert.True(t, has(edges, "Quarantined_3", "Recovery_Immunized"))
	for _, e := range edges {
		assert.NotEqual(t, domain.KindFatality, e.Kind)
		assert.NotEqual(t, domain.KindRelapse, e.Kind)
	}
}

func TestCompile_InfectedTransmissionModel(t *testing.T) {
	p := daily()
	p.BetaExp = 0
	p.BetaInf = 0.3

	_, edges, _ := compile(t, p)
	assert.True(t, has(edges, "Susceptible", "Infected_1"))
	assert.False(t, has(edges, "Susceptible", "Exposed_1"))
	// The exposed chain still drains into the infectious stage.
	assert.True(t, has(edges, "Exposed_3", "Infected_1"))
}

func TestCompile_DisabledFeatures(t *testing.T) {
	p := daily()
	p.BirthRate = 0
	p.DeathRate = 0
	p.VaccinationRate = 0
	p.QuarantineRate = 0
	p.IsolationRate = 0

	_, edges, _ := compile(t, p)
	for _, e := range edges {
		switch e.Kind {
		case domain.KindBirth, domain.KindMortality, domain.KindVaccination,
			domain.KindVaccinationProgress, domain.KindVaccineSuccess, domain.KindVaccineFailure,
			domain.KindQuarantine, domain.KindIsolation:
			t.Errorf("unexpected %s edge %s -> %s", e.Kind, e.From, e.To)
		}
	}
	assert.True(t, has(edges, "Quarantined_1", "Quarantined_2"))
}

func TestCompile_MaternalImmunity(t *testing.T) {
	p := daily()
	p.MaternalImmunityRate = 0.1

	_, edges, _ := compile(t, p)
	assert.Equal(t, Edge{"Birth", "Maternally_Immunized", domain.KindMaternalImmunity}, edges[1])
}

func TestCompile_ChainAdvanceEdges(t *testing.T) {
	reg, edges, _ := compile(t, daily())
	lengths := reg.Lengths()

	for _, chain := range []struct {
		prefix string
		n      int
	}{
		{domain.ChainVaccinated, lengths.Vaccination},
		{domain.ChainExposed, lengths.Exposure},
		{domain.ChainQuarantined, lengths.Exposure},
		{domain.ChainInfected, lengths.Infection},
		{domain.ChainIsolated, lengths.Infection},
	} {
		for i := 1; i < chain.n; i++ {
			from, to := registry.ChainName(chain.prefix, i), registry.ChainName(chain.prefix, i+1)
			count := 0
			for _, e := range edges {
				if e.From == from && e.To == to {
					count++
				}
			}
			assert.Equal(t, 1, count, "%s -> %s", from, to)
		}
	}
}

func TestCompile_TerminalsHaveNoOutgoingEdges(t *testing.T) {
	reg, _, transitions := compile(t, daily())
	comps := reg.Compartments()
	for _, tr := range transitions {
		src := comps[tr.Source]
		if src.Type.IsTerminal() {
			// Mortality from immunized compartments is the only exit.
			assert.Equal(t, domain.KindMortality, tr.Kind, "edge from %s", src.Name)
		}
		assert.NotEqual(t, tr.Source, tr.Dest)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	_, _, first := compile(t, daily())
	_, _, second := compile(t, daily())
	assert.Equal(t, first, second)
}

func TestResolve_Unresolved(t *testing.T) {
	reg, err := registry.New(daily())
	require.NoError(t, err)

	_, err = Resolve([]Edge{
		{"Susceptible", "Exposed_1", domain.KindExposure},
		{"Exposed_1", "Exposed_9", domain.KindIncubation},
	}, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnresolvedEndpoint)

	var unresolved *domain.UnresolvedEndpointError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Exposed_9", unresolved.Name)
	assert.Contains(t, err.Error(), "Exposed_9")
}

func TestUnreachable(t *testing.T) {
	// The quarantine branch enters at the second link, so Quarantined_1 only
	// ever holds seeded individuals.
	reg, _, transitions := compile(t, daily())
	assert.Equal(t, []string{"Quarantined_1"}, Unreachable(reg.Compartments(), transitions))

	p := daily()
	p.VaccinationRate = 0
	reg, _, transitions = compile(t, p)
	assert.Equal(t, []string{"Vaccinated_1", "Vaccinated_2", "Vaccinated_3", "Quarantined_1"}, Unreachable(reg.Compartments(), transitions))
}
