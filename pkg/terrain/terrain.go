// Package terrain computes the volume of rain water retained above a
// one-dimensional elevation profile.
//
// A Terrain is an immutable sequence of non-negative integer heights at
// unit-spaced positions. Water is counted by repeatedly splitting the
// profile around the tallest point of each sub-range until every residual
// range is bounded by two walls at least as tall as everything between
// them; the water held by such a range is then read off directly from the
// lower of its two walls.
package terrain

import (
	"errors"
	"fmt"
)

// Input bounds.
const (
	// MaxPositions is the largest number of positions a terrain may hold.
	MaxPositions = 32000
	// MaxHeight is the largest allowed elevation.
	MaxHeight = 32000
)

// ErrInvalidTerrain is returned by New when the heights violate the size
// or value bounds.
var ErrInvalidTerrain = errors.New("invalid terrain")

// Terrain is a validated, read-only elevation profile.
type Terrain struct {
	heights []int
}

// New validates heights and returns a Terrain holding a private copy of them.
// The sequence must contain 1..MaxPositions values, each in [0, MaxHeight].
func New(heights []int) (*Terrain, error) {
	if heights == nil {
		return nil, fmt.Errorf("%w: heights are nil", ErrInvalidTerrain)
	}

	if len(heights) == 0 || len(heights) > MaxPositions {
		return nil, fmt.Errorf("%w: %d positions (want 1..%d)", ErrInvalidTerrain, len(heights), MaxPositions)
	}

	for i, h := range heights {
		if h < 0 || h > MaxHeight {
			return nil, fmt.Errorf("%w: height %d at position %d (want 0..%d)", ErrInvalidTerrain, h, i, MaxHeight)
		}
	}

	owned := make([]int, len(heights))
	copy(owned, heights)

	return &Terrain{heights: owned}, nil
}

// Len returns the number of positions.
func (t *Terrain) Len() int {
	return len(t.heights)
}

// Height returns the elevation at position i.
func (t *Terrain) Height(i int) int {
	return t.heights[i]
}

// Heights returns a copy of the elevations.
func (t *Terrain) Heights() []int {
	out := make([]int, len(t.heights))
	copy(out, t.heights)

	return out
}

// Peak returns the index of the tallest position of the whole terrain.
func (t *Terrain) Peak() int {
	return t.PeakOf(0, len(t.heights)-1)
}

// MaxHeight returns the height of the tallest position.
func (t *Terrain) MaxHeight() int {
	return t.heights[t.Peak()]
}
