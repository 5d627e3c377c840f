package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/epigraph/internal/testutils"
	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// paramsOf runs a command that captures the resolved parameters.
func paramsOf(t *testing.T, args ...string) (params.Parameters, error) {
	t.Helper()
	var got params.Parameters
	root := NewRootCmd()
	root.AddCommand(&cobra.Command{
		Use: "params",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			got, err = loadParams(cmd)
			return err
		},
	})
	root.SetArgs(append([]string{"params"}, args...))
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	return got, err
}

func TestLoadParams_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("beta_exp: 0.3\ndt: 1\nseed: 5\n"), 0o644))

	t.Setenv("EPIGRAPH_SEED", "9")

	p, err := paramsOf(t, "--config", cfg, "--set", "dt=0.5")
	require.NoError(t, err)
	assert.Equal(t, 0.3, p.BetaExp, "file")
	assert.Equal(t, int64(9), p.Seed, "env beats file")
	assert.Equal(t, 0.5, p.SamplingInterval, "--set beats file")
	assert.Equal(t, params.Default().InfectiousPeriod, p.InfectiousPeriod, "default kept")
}

func TestLoadParams_Scenario(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"weekly.md": "---\nid: weekly\ndescription: weekly sampling\nparameters:\n  dt: 7\n---\n",
	})

	p, err := paramsOf(t, "--scenarios", dir, "--scenario", "weekly", "--set", "initial.exposed=2")
	require.NoError(t, err)
	assert.Equal(t, 7.0, p.SamplingInterval)
	assert.Equal(t, 2.0, p.Initial.Exposed)

	_, err = paramsOf(t, "--config", "x.yaml", "--scenario", "weekly")
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = paramsOf(t, "--set", "nonsense")
	assert.Error(t, err)
}

func TestBuildCommand(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		out, _, err := run(t, "build", "--set", "dt=1")
		require.NoError(t, err)

		var m domain.Model
		require.NoError(t, json.Unmarshal([]byte(out), &m))
		assert.Equal(t, 25, m.Len())
		assert.Len(t, m.Transitions(), 56)
	})

	t.Run("YAML To File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.yaml")
		_, _, err := run(t, "build", "--set", "dt=1", "--format", "yaml", "--output", path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var m domain.Model
		require.NoError(t, yaml.Unmarshal(data, &m))
		assert.Equal(t, 25, m.Len())
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, _, err := run(t, "build", "--format", "xml")
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("Invalid Parameters", func(t *testing.T) {
		_, _, err := run(t, "build", "--set", "beta_exp=0")
		assert.ErrorIs(t, err, domain.ErrNoTransmissionModel)
	})
}

func TestValidateCommand(t *testing.T) {
	out, _, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	_, stderr, err := run(t, "validate", "--set", "dt=0", "--set", "gamma_mor=2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNonPositiveDuration)
	assert.ErrorIs(t, err, domain.ErrInvalidProbability)
	assert.Contains(t, stderr, "dt")
}

func TestGraphCommand(t *testing.T) {
	out, _, err := run(t, "graph", "--set", "dt=1", "--hide-mortality", "--highlight", "Exposed_1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))
	assert.NotContains(t, out, `"mortality"`)
	assert.Contains(t, out, "class Exposed_1 highlight;")
}

func TestInspectCommand(t *testing.T) {
	out, _, err := run(t, "inspect", "--set", "dt=1")
	require.NoError(t, err)
	assert.Contains(t, out, "- **Compartments:** 25")
}

func TestScenariosCommand(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"a.md": "---\nid: a\ndescription: first\n---\n",
		"b.md": "---\nid: b\ndescription: second\n---\n",
	})

	out, _, err := run(t, "scenarios", "--scenarios", dir)
	require.NoError(t, err)
	assert.Equal(t, "a\tfirst\nb\tsecond\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "epigraph version "))
}

func TestLogLevelFlag(t *testing.T) {
	_, _, err := run(t, "validate", "--log-level", "chatty")
	assert.ErrorContains(t, err, "unknown log level")
}
