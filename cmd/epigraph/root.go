package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/epigraph"
	"github.com/aretw0/epigraph/internal/logging"
	loamAdapter "github.com/aretw0/epigraph/pkg/adapters/loam"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "epigraph",
		Short: "epigraph builds stochastic SEIR compartment graphs",
		Long: `epigraph compiles an epidemiological parameter set into the ordered
compartments and resolved transitions consumed by stochastic solvers.

Parameters are resolved in order: defaults, --config file or --scenario,
EPIGRAPH_* environment variables, then --set overrides.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringP("config", "c", "", "Parameter file (YAML or JSON)")
	flags.String("scenarios", ".", "Directory containing scenario documents")
	flags.StringP("scenario", "s", "", "Scenario name to load from --scenarios")
	flags.StringArray("set", nil, "Parameter override key=value (repeatable), e.g. --set initial.exposed=25")

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newInspectCmd(),
		newScenariosCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

func newBuilder(cmd *cobra.Command, opts ...epigraph.Option) (*epigraph.Builder, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	return epigraph.New(append([]epigraph.Option{epigraph.WithLogger(logger)}, opts...)...), nil
}

// loadParams resolves the parameter set from the persistent flags.
func loadParams(cmd *cobra.Command) (params.Parameters, error) {
	flags := cmd.Flags()
	config, _ := flags.GetString("config")
	dir, _ := flags.GetString("scenarios")
	name, _ := flags.GetString("scenario")
	sets, _ := flags.GetStringArray("set")

	p := params.Default()
	var err error
	switch {
	case config != "" && name != "":
		return params.Parameters{}, fmt.Errorf("--config and --scenario are mutually exclusive")
	case config != "":
		if p, err = params.LoadFile(config); err != nil {
			return params.Parameters{}, err
		}
	case name != "":
		loader, err := loamAdapter.Open(dir)
		if err != nil {
			return params.Parameters{}, err
		}
		scenario, err := loader.Load(cmd.Context(), name)
		if err != nil {
			return params.Parameters{}, err
		}
		p = scenario.Parameters
	}

	if p, err = params.ApplyEnv(p); err != nil {
		return params.Parameters{}, err
	}

	overrides, err := params.ParseOverrides(sets)
	if err != nil {
		return params.Parameters{}, err
	}
	return params.ApplyOverrides(p, overrides)
}
