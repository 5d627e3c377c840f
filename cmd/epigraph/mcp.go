package main

import (
	"log"
	"os"

	"github.com/aretw0/epigraph/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts epigraph as an MCP Server over Standard Input/Output.
Tools: build_model, validate_parameters, get_graph. Overrides passed to a tool
apply on top of the resolved parameter set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParams(cmd)
			if err != nil {
				return err
			}
			builder, err := newBuilder(cmd)
			if err != nil {
				return err
			}

			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			return mcp.NewServer(builder, p).ServeStdio()
		},
	}
}
