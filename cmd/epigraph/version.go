package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/epigraph"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of epigraph",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "epigraph version %s\n", strings.TrimSpace(epigraph.Version))
		},
	}
}
