package main

import (
	"fmt"

	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the parameter set for consistency",
		Long:  `Runs every configuration check without building the model and lists all failures.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParams(cmd)
			if err != nil {
				return err
			}
			builder, err := newBuilder(cmd)
			if err != nil {
				return err
			}
			if err := builder.Validate(p); err != nil {
				out := cmd.ErrOrStderr()
				if errs := domain.ValidationErrors(err); len(errs) > 1 {
					for _, e := range errs {
						fmt.Fprintf(out, "  - %v\n", e)
					}
				}
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Parameters are valid! ✅")
			return nil
		},
	}
}
