package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/epigraph/pkg/domain"
)

// GraphOverlay contains presentation options layered on top of the model.
type GraphOverlay struct {
	// Highlighted compartments are styled with the "highlight" class.
	Highlighted []string
	// HideKinds omits transitions of these kinds (e.g. mortality, which
	// connects every compartment to Dead and clutters the drawing).
	HideKinds []domain.TransitionKind
}

// GenerateMermaid produces a Mermaid flowchart of the compartment graph.
// It applies semantic styling:
// - Birth: ((Circle))
// - Immunized / Dead: ([Stadium])
// - Infected: [[Subroutine]]
// - Exposed: [/Parallelogram/]
// - Default: [Rectangle]
// Edge labels carry the transition kind.
func GenerateMermaid(model *domain.Model, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	compartments := model.Compartments()
	for _, c := range compartments {
		opener, closer := "[", "]"
		switch c.Type {
		case domain.CompartmentBirth:
			opener, closer = "((", "))"
		case domain.CompartmentImmunized, domain.CompartmentDead:
			opener, closer = "([", "])"
		case domain.CompartmentInfected:
			opener, closer = "[[", "]]"
		case domain.CompartmentExposed:
			opener, closer = "[/", "/]"
		}

		label := c.Name
		if c.InitialCount != 0 {
			label = fmt.Sprintf("%s <br/> %g", c.Name, c.InitialCount)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(c.Name), opener, label, closer)
	}

	hidden := make(map[domain.TransitionKind]bool)
	if overlay != nil {
		for _, k := range overlay.HideKinds {
			hidden[k] = true
		}
	}

	for _, t := range model.Transitions() {
		if hidden[t.Kind] {
			continue
		}
		from := sanitizeMermaidID(compartments[t.Source].Name)
		to := sanitizeMermaidID(compartments[t.Dest].Name)
		arrow := "-->"
		if t.Kind != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", t.Kind)
		}
		// Back edges (relapse, vaccine failure) are drawn dotted.
		if t.Dest < t.Source && t.Kind != domain.KindMortality {
			arrow = "-.->"
			if t.Kind != "" {
				arrow = fmt.Sprintf("-. \"%s\" .->", t.Kind)
			}
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", from, arrow, to)
	}

	if overlay != nil && len(overlay.Highlighted) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[string]bool)
		for _, name := range overlay.Highlighted {
			id := sanitizeMermaidID(name)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s highlight;\n", id)
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
