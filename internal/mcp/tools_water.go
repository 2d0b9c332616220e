package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/raincatch/pkg/chart"
	"github.com/Sumatoshi-tech/raincatch/pkg/observability"
	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

// handleTrappedWater processes trapped_water tool calls.
func (s *Server) handleTrappedWater(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input TrappedWaterInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	ctx = observability.ContextWithAttrs(ctx,
		slog.String("tool", ToolNameTrappedWater),
		slog.Int("positions", len(input.Heights)),
	)

	t, err := terrain.New(input.Heights)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected terrain", "error", err)

		return errorResult(err)
	}

	res := terrain.NewSolver(terrain.WithLogger(s.logger), terrain.WithLevels()).Solve(ctx, t)

	s.logger.InfoContext(ctx, "collected water", "units", res.Water)

	report := WaterReport{
		Water:      res.Water,
		Positions:  t.Len(),
		FirstHill:  res.FirstHill,
		LastHill:   res.LastHill,
		Degeneracy: res.Degeneracy,
		Levels:     res.Levels,
	}

	if input.Draw {
		report.Chart = chart.ASCII(t, chart.Options{Levels: res.Levels, NoColor: true})
	}

	return jsonResult(report)
}
