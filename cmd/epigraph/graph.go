package main

import (
	"fmt"

	"github.com/aretw0/epigraph/internal/presentation/graph"
	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the compartment graph visualization",
		Long:  `Builds the model and outputs a Mermaid diagram (graph LR) of compartments and transitions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			highlight, _ := cmd.Flags().GetStringSlice("highlight")
			hideMortality, _ := cmd.Flags().GetBool("hide-mortality")

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

			overlay := &graph.GraphOverlay{Highlighted: highlight}
			if hideMortality {
				overlay.HideKinds = append(overlay.HideKinds, domain.KindMortality)
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(model, overlay))
			return nil
		},
	}
	cmd.Flags().StringSlice("highlight", nil, "Compartments to highlight")
	cmd.Flags().Bool("hide-mortality", false, "Omit natural mortality edges")
	return cmd
}
