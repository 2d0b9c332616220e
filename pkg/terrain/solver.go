package terrain

import (
	"context"
	"log/slog"
)

// LevelTrace is the slog level of the splitter's step-by-step narration.
const LevelTrace = slog.LevelDebug - 4

// Degeneracy names the shape that made a terrain hold no water without
// walking it.
type Degeneracy string

// Degeneracy values.
const (
	DegeneracyNone       Degeneracy = "none"
	DegeneracyTooShort   Degeneracy = "too_short"
	DegeneracyRising     Degeneracy = "rising"
	DegeneracyFalling    Degeneracy = "falling"
	DegeneracySingleHill Degeneracy = "single_hill"
)

// minPitPositions is the shortest terrain that can have an interior position.
const minPitPositions = 3

// Result describes one evaluation of a terrain.
type Result struct {
	// Levels holds the water depth above each position. Nil unless the
	// solver was built WithLevels.
	Levels []int `json:"levels,omitempty" yaml:"levels,omitempty"`

	Degeneracy Degeneracy `json:"degeneracy" yaml:"degeneracy"`

	// Water is the total trapped volume.
	Water int `json:"water" yaml:"water"`

	// FirstHill and LastHill bound the walk; -1 when not located.
	FirstHill int `json:"first_hill" yaml:"first_hill"`
	LastHill  int `json:"last_hill"  yaml:"last_hill"`
}

// Solver evaluates terrains. The zero value is ready to use.
type Solver struct {
	logger *slog.Logger
	levels bool
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger narrates every splitter step at LevelTrace and the outcome at
// debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithLevels makes the solver report the water depth at every position.
func WithLevels() Option {
	return func(s *Solver) {
		s.levels = true
	}
}

// NewSolver creates a Solver with the given options.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Solve computes the water trapped by t.
func (s *Solver) Solve(ctx context.Context, t *Terrain) Result {
	res := Result{FirstHill: -1, LastHill: -1, Degeneracy: DegeneracyNone}

	if s.levels {
		res.Levels = make([]int, t.Len())
	}

	if t.Len() < minPitPositions {
		return s.degenerate(ctx, res, DegeneracyTooShort)
	}

	first, ok := t.FirstHill()
	if !ok {
		return s.degenerate(ctx, res, DegeneracyRising)
	}

	res.FirstHill = first

	last, ok := t.LastHill()
	if !ok {
		return s.degenerate(ctx, res, DegeneracyFalling)
	}

	res.LastHill = last

	if first == last {
		return s.degenerate(ctx, res, DegeneracySingleHill)
	}

	walk := splitter{terrain: t, levels: res.Levels, ctx: ctx}
	if s.logger != nil && s.logger.Enabled(ctx, LevelTrace) {
		walk.logger = s.logger
	}

	res.Water = walk.run(first, last)

	if s.logger != nil {
		s.logger.DebugContext(ctx, "terrain solved",
			"positions", t.Len(), "first_hill", first, "last_hill", last, "water", res.Water)
	}

	return res
}

func (s *Solver) degenerate(ctx context.Context, res Result, reason Degeneracy) Result {
	res.Degeneracy = reason

	if s.logger != nil {
		s.logger.DebugContext(ctx, "terrain holds no water", "reason", string(reason))
	}

	return res
}

// TrappedWater returns the total water the terrain holds.
func (t *Terrain) TrappedWater() int {
	var s Solver

	return s.Solve(context.Background(), t).Water
}
