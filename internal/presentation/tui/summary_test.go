package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/epigraph"
	"github.com/aretw0/epigraph/internal/presentation/tui"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	p := params.Default()
	p.SamplingInterval = 1
	model := epigraph.MustBuild(p)

	out := tui.Summary(model)

	assert.Contains(t, out, "- **Compartments:** 25")
	assert.Contains(t, out, "- **Transitions:** 56")
	assert.Contains(t, out, "| Vaccinated | 3 |")
	assert.Contains(t, out, "| Exposed / Quarantined | 3 |")
	assert.Contains(t, out, "| Infected / Isolated | 5 |")
	assert.Contains(t, out, "| Exposed | 6 |")
	assert.Contains(t, out, "| Infected | 10 |")
	assert.Contains(t, out, "| Immunized | 3 |")
	assert.Contains(t, out, "| mortality | 23 |")
	assert.Contains(t, out, "| Susceptible | 9990 |")
	assert.Contains(t, out, "| Exposed_1 | 10 |")
	assert.NotContains(t, out, "| Infected_1 |")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Hello")
	assert.NoError(t, err)
	assert.Contains(t, out, "Hello")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
}
