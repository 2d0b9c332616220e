package terrain_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

// TestSolver_Degeneracy verifies the reported reason for dry terrains.
func TestSolver_Degeneracy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		heights []int
		want    terrain.Degeneracy
	}{
		{name: "too short", heights: []int{3, 0}, want: terrain.DegeneracyTooShort},
		{name: "rising", heights: []int{0, 1, 1, 2}, want: terrain.DegeneracyRising},
		{name: "flat", heights: []int{5, 5, 5}, want: terrain.DegeneracyRising},
		{name: "falling", heights: []int{4, 3, 3, 0}, want: terrain.DegeneracyFalling},
		{name: "single hill", heights: []int{0, 2, 4, 2, 0}, want: terrain.DegeneracySingleHill},
		{name: "pits", heights: equalHills, want: terrain.DegeneracyNone},
	}

	solver := terrain.NewSolver()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := solver.Solve(context.Background(), mustTerrain(t, tt.heights))
			assert.Equal(t, tt.want, res.Degeneracy)

			if tt.want != terrain.DegeneracyNone {
				assert.Zero(t, res.Water)
			}
		})
	}
}

// TestSolver_Hills verifies the walk bounds are reported.
func TestSolver_Hills(t *testing.T) {
	t.Parallel()

	res := terrain.NewSolver().Solve(context.Background(), mustTerrain(t, mixedHills))

	assert.Equal(t, testMixedHillsWater, res.Water)
	assert.Equal(t, 2, res.FirstHill)
	assert.Equal(t, 19, res.LastHill)
	assert.Nil(t, res.Levels)

	dry := terrain.NewSolver().Solve(context.Background(), mustTerrain(t, []int{1, 2, 3}))
	assert.Equal(t, -1, dry.FirstHill)
	assert.Equal(t, -1, dry.LastHill)
}

// TestSolver_Levels verifies per-position depths add up to the total.
func TestSolver_Levels(t *testing.T) {
	t.Parallel()

	solver := terrain.NewSolver(terrain.WithLevels())

	res := solver.Solve(context.Background(), mustTerrain(t, []int{3, 0, 2, 0, 4}))
	assert.Equal(t, []int{0, 3, 1, 3, 0}, res.Levels)
	assert.Equal(t, 7, res.Water)

	res = solver.Solve(context.Background(), mustTerrain(t, equalHills))
	require.Len(t, res.Levels, len(equalHills))

	sum := 0
	for _, depth := range res.Levels {
		sum += depth
	}

	assert.Equal(t, res.Water, sum)

	dry := solver.Solve(context.Background(), mustTerrain(t, []int{1, 0}))
	assert.Equal(t, []int{0, 0}, dry.Levels)
}

// TestSolver_TraceLogging verifies narration is emitted only when enabled.
func TestSolver_TraceLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: terrain.LevelTrace}))
	solver := terrain.NewSolver(terrain.WithLogger(logger))

	res := solver.Solve(context.Background(), mustTerrain(t, []int{5, 4, 3, 5}))
	assert.Equal(t, 3, res.Water)

	out := buf.String()
	assert.Contains(t, out, "collected")
	assert.Contains(t, out, "units=3")
	assert.Contains(t, out, "terrain solved")

	buf.Reset()

	quiet := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	res = terrain.NewSolver(terrain.WithLogger(quiet)).Solve(context.Background(), mustTerrain(t, []int{5, 4, 3, 5}))

	assert.Equal(t, 3, res.Water)
	assert.Empty(t, strings.TrimSpace(buf.String()))
}

// TestSolver_ZeroValue verifies the zero Solver works.
func TestSolver_ZeroValue(t *testing.T) {
	t.Parallel()

	var solver terrain.Solver

	res := solver.Solve(context.Background(), mustTerrain(t, mixedHills))
	assert.Equal(t, testMixedHillsWater, res.Water)
}
