package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/epigraph/pkg/domain"
)

var typeOrder = []domain.CompartmentType{
	domain.CompartmentBirth,
	domain.CompartmentSusceptible,
	domain.CompartmentExposed,
	domain.CompartmentInfected,
	domain.CompartmentImmunized,
	domain.CompartmentDead,
}

// Summary renders a markdown overview of a compiled model: headline sizes,
// chain lengths, compartment counts per type, transition counts per kind and
// the seeded compartments.
func Summary(model *domain.Model) string {
	var sb strings.Builder
	chains := model.ChainLengths()

	sb.WriteString("# Model summary\n\n")
	fmt.Fprintf(&sb, "- **Compartments:** %d\n", model.Len())
	fmt.Fprintf(&sb, "- **Transitions:** %d\n", len(model.Transitions()))
	fmt.Fprintf(&sb, "- **Simulation steps:** %d\n", model.SimulationSteps())
	fmt.Fprintf(&sb, "- **Seed:** %d\n\n", model.Seed())

	sb.WriteString("## Chains\n\n| Chain | Length |\n|---|---|\n")
	fmt.Fprintf(&sb, "| %s | %d |\n", domain.ChainVaccinated, chains.Vaccination)
	fmt.Fprintf(&sb, "| %s / %s | %d |\n", domain.ChainExposed, domain.ChainQuarantined, chains.Exposure)
	fmt.Fprintf(&sb, "| %s / %s | %d |\n\n", domain.ChainInfected, domain.ChainIsolated, chains.Infection)

	counts := model.CountByType()
	sb.WriteString("## Compartments\n\n| Type | Count |\n|---|---|\n")
	for _, t := range typeOrder {
		if counts[t] == 0 {
			continue
		}
		fmt.Fprintf(&sb, "| %s | %d |\n", t, counts[t])
	}

	kinds := make(map[domain.TransitionKind]int)
	for _, t := range model.Transitions() {
		kinds[t.Kind]++
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, string(k))
	}
	sort.Strings(names)
	sb.WriteString("\n## Transitions\n\n| Kind | Count |\n|---|---|\n")
	for _, k := range names {
		fmt.Fprintf(&sb, "| %s | %d |\n", k, kinds[domain.TransitionKind(k)])
	}

	sb.WriteString("\n## Initial state\n\n| Compartment | Count |\n|---|---|\n")
	for _, c := range model.Compartments() {
		if c.InitialCount == 0 {
			continue
		}
		fmt.Fprintf(&sb, "| %s | %g |\n", c.Name, c.InitialCount)
	}

	return sb.String()
}
