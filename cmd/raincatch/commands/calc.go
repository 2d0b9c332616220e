package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Sumatoshi-tech/raincatch/pkg/chart"
	"github.com/Sumatoshi-tech/raincatch/pkg/config"
	"github.com/Sumatoshi-tech/raincatch/pkg/heights"
	"github.com/Sumatoshi-tech/raincatch/pkg/observability"
	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

const (
	calcOp    = "calc"
	stdinPath = "-"
)

// ErrConflictingInput is returned when heights are given both as arguments
// and through --input.
var ErrConflictingInput = errors.New("heights given both as arguments and --input")

// CalcCommand holds flags and dependencies for the calc command.
type CalcCommand struct {
	opts    *GlobalOptions
	obsInit observabilityInit

	inputPath   string
	format      string
	htmlPath    string
	metricsFile string
	draw        bool
	water       bool
	noColor     bool
}

// NewCalcCommand creates the calc command.
func NewCalcCommand() *cobra.Command {
	return newCalcCommandWithDeps(&GlobalOptions{}, observability.Init)
}

func newCalcCommandWithDeps(opts *GlobalOptions, obsInit observabilityInit) *cobra.Command {
	cc := &CalcCommand{opts: opts, obsInit: obsInit}

	cmd := &cobra.Command{
		Use:   "calc [heights...]",
		Short: "Compute trapped water for a list of heights",
		Long: `Compute how many units of rain water the terrain traps.

Heights are column heights from left to right, each 0 to 32000, at most
32000 columns. Pass them as arguments or as a YAML/JSON document with --input.`,
		Example: `  raincatch calc 3 0 2 0 4
  raincatch calc --draw --water 1 3 8 7 7 4 0 0 3 7 6 5 3 2 8 1 2 5 1 8
  echo '{heights: [4, 1, 4]}' | raincatch calc --input - --format json`,
		RunE: cc.run,
	}

	cmd.Flags().StringVarP(&cc.inputPath, "input", "i", "", "Read heights from a YAML or JSON file ('-' for stdin)")
	cmd.Flags().StringVar(&cc.format, "format", config.DefaultOutputFormat, "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&cc.draw, "draw", false, "Draw the terrain as ASCII art")
	cmd.Flags().BoolVar(&cc.water, "water", false, "Include trapped water in the drawing")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "Disable colored drawing")
	cmd.Flags().StringVar(&cc.htmlPath, "html", "", "Write an HTML chart of the terrain to this file")
	cmd.Flags().StringVar(&cc.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	return cmd
}

func (cc *CalcCommand) run(cmd *cobra.Command, args []string) (err error) {
	cfg, err := config.LoadConfig(cc.opts.ConfigPath)
	if err != nil {
		return err
	}

	err = cc.applyFlags(cmd, cfg)
	if err != nil {
		return err
	}

	obsCfg, err := cc.opts.observabilityConfig(cfg, observability.ModeCLI)
	if err != nil {
		return err
	}

	obsCfg.LogWriter = cmd.ErrOrStderr()

	providers, err := cc.obsInit(obsCfg)
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

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := providers.Tracer.Start(ctx, "raincatch."+calcOp)
	defer span.End()

	start := time.Now()

	res, t, err := cc.evaluate(ctx, cmd, args, providers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		red.RecordRequest(ctx, calcOp, observability.StatusError, time.Since(start))

		return err
	}

	span.SetAttributes(
		attribute.Int("terrain.positions", t.Len()),
		attribute.Int("terrain.water", res.Water),
		attribute.String("terrain.degeneracy", string(res.Degeneracy)),
	)
	red.RecordRequest(ctx, calcOp, observability.StatusOK, time.Since(start))
	red.RecordTerrain(ctx, t.Len(), res.Water, string(res.Degeneracy))

	return cc.present(cmd, cfg, t, res)
}

// applyFlags overlays explicitly set flags on the loaded configuration.
func (cc *CalcCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = cc.format
	}

	if flags.Changed("draw") {
		cfg.Render.Draw = cc.draw
	}

	if flags.Changed("water") {
		cfg.Render.Water = cc.water
	}

	if flags.Changed("no-color") {
		cfg.Render.NoColor = cc.noColor
	}

	if flags.Changed("html") {
		cfg.Render.HTML = cc.htmlPath
	}

	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = cc.metricsFile
	}

	return cfg.Validate()
}

func (cc *CalcCommand) evaluate(
	ctx context.Context, cmd *cobra.Command, args []string, providers observability.Providers,
) (terrain.Result, *terrain.Terrain, error) {
	values, err := cc.readHeights(cmd, args)
	if err != nil {
		return terrain.Result{}, nil, err
	}

	t, err := terrain.New(values)
	if err != nil {
		return terrain.Result{}, nil, err
	}

	solver := terrain.NewSolver(terrain.WithLogger(providers.Logger), terrain.WithLevels())
	res := solver.Solve(ctx, t)

	providers.Logger.InfoContext(ctx, "collected water", "units", res.Water)

	return res, t, nil
}

func (cc *CalcCommand) readHeights(cmd *cobra.Command, args []string) ([]int, error) {
	if cc.inputPath == "" {
		return heights.ParseArgs(args)
	}

	if len(args) > 0 {
		return nil, ErrConflictingInput
	}

	if cc.inputPath == stdinPath {
		values, err := heights.Load(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return values, nil
	}

	return heights.LoadFile(cc.inputPath)
}

func (cc *CalcCommand) present(cmd *cobra.Command, cfg *config.Config, t *terrain.Terrain, res terrain.Result) error {
	out := cmd.OutOrStdout()

	if cfg.Render.Draw {
		opts := chart.OptionsFromEnv()
		opts.NoColor = opts.NoColor || cfg.Render.NoColor

		if cfg.Render.Water {
			opts.Levels = res.Levels
		}

		err := chart.Write(out, t, opts)
		if err != nil {
			return err
		}
	}

	if cfg.Render.HTML != "" {
		err := writeHTML(cfg.Render.HTML, t, res.Levels)
		if err != nil {
			return err
		}
	}

	return writeReport(out, cfg.Output.Format, t, res)
}

func writeHTML(path string, t *terrain.Terrain, levels []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html chart: %w", err)
	}

	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close html chart: %w", closeErr)
		}
	}()

	return chart.HTML(f, t, levels, "")
}
