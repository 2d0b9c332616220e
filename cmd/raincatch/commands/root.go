// Package commands implements CLI command handlers for raincatch.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/raincatch/pkg/config"
	"github.com/Sumatoshi-tech/raincatch/pkg/observability"
	"github.com/Sumatoshi-tech/raincatch/pkg/version"
)

// GlobalOptions holds the persistent flags shared by every subcommand.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

type observabilityInit func(observability.Config) (observability.Providers, error)

// NewRootCommand builds the raincatch command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommandWithDeps(observability.Init)
}

func newRootCommandWithDeps(obsInit observabilityInit) *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "raincatch",
		Short: "Raincatch - trapped rain water over a 1-D terrain",
		Long: `Raincatch computes how many units of rain water a terrain of columns traps.

Commands:
  calc      Compute trapped water for a list of heights
  mcp       Serve the solver as an MCP tool over stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress output")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: ./raincatch.yaml)")

	rootCmd.AddCommand(newCalcCommandWithDeps(opts, obsInit))
	rootCmd.AddCommand(newMCPCommandWithDeps(opts, obsInit))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// logLevel resolves the effective log level from configuration and the
// persistent flags. Quiet wins over verbose; verbose never raises a level
// already below debug.
func (o *GlobalOptions) logLevel(cfg *config.Config) (slog.Level, error) {
	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return level, err
	}

	switch {
	case o.Quiet:
		return slog.LevelError, nil
	case o.Verbose:
		return min(level, slog.LevelDebug), nil
	default:
		return level, nil
	}
}

// observabilityConfig maps the loaded configuration onto the observability layer.
func (o *GlobalOptions) observabilityConfig(cfg *config.Config, mode observability.AppMode) (observability.Config, error) {
	level, err := o.logLevel(cfg)
	if err != nil {
		return observability.Config{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == config.FormatJSON
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.MetricsTextfile = cfg.Metrics.Textfile
	obsCfg.DebugTrace = level < slog.LevelDebug

	return obsCfg, nil
}

func shutdownProviders(providers observability.Providers) error {
	err := providers.Shutdown(context.Background())
	if err != nil {
		providers.Logger.Warn("observability shutdown failed", "error", err)
	}

	return err
}
