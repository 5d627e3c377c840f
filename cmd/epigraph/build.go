package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the model and export it",
		Long:  `Builds the compartment list and transition graph and writes the model snapshot as JSON or YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			p, err := loadParams(cmd)
			if err != nil {
				return err
			}
			builder, err := newBuilder(cmd)
			if err != nil {
				return err
			}
			model, err := builder.Build(cmd.Context(), p)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(model)
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(model); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q: expected json or yaml", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	return cmd
}
