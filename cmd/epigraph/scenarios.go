package main

import (
	"fmt"

	loamAdapter "github.com/aretw0/epigraph/pkg/adapters/loam"
	"github.com/spf13/cobra"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios available in --scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("scenarios")
			loader, err := loamAdapter.Open(dir)
			if err != nil {
				return err
			}
			names, err := loader.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				s, err := loader.Load(cmd.Context(), name)
				if err != nil {
					fmt.Fprintf(out, "%s\t(invalid: %v)\n", name, err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", name, s.Description)
			}
			return nil
		},
	}
}
