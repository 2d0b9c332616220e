package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/raincatch/internal/mcp"
	"github.com/Sumatoshi-tech/raincatch/pkg/config"
	"github.com/Sumatoshi-tech/raincatch/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	return newMCPCommandWithDeps(&GlobalOptions{}, observability.Init)
}

func newMCPCommandWithDeps(opts *GlobalOptions, obsInit observabilityInit) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server exposes one tool:
  - trapped_water: total and per-column trapped water for a list of heights`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := config.LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}

			obsCfg, err := opts.observabilityConfig(cfg, observability.ModeMCP)
			if err != nil {
				return err
			}

			// Stdout carries the protocol.
			obsCfg.LogJSON = true
			obsCfg.LogWriter = cmd.ErrOrStderr()

			providers, err := obsInit(obsCfg)
			if err != nil {
				return fmt.Errorf("init observability: %w", err)
			}

			defer func() {
				shutdownErr := shutdownProviders(providers)
				if err == nil {
					err = shutdownErr
				}
			}()

			red, err := observability.NewREDMetrics(providers.Meter)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{Logger: providers.Logger, Metrics: red, Tracer: providers.Tracer})

			return srv.Run(cmd.Context())
		},
	}
}
