package main

import (
	"fmt"
	"os"

	"github.com/aretw0/epigraph/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the compiled model",
		Long:  `Prints chain lengths and compartment/transition counts. Markdown is rendered when stdout is a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetBool("raw")

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

			out := cmd.OutOrStdout()
			summary := tui.Summary(model)
			if raw || !isTerminal(out) {
				fmt.Fprint(out, summary)
				return nil
			}

			tui.PrintBanner(out)
			rendered, err := tui.NewRenderer()(summary)
			if err != nil {
				rendered = summary
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
	cmd.Flags().Bool("raw", false, "Print plain Markdown even on a terminal")
	return cmd
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
