package terrain

import (
	"context"
	"log/slog"
)

// PeakOf returns the index of the tallest position in the closed range
// [start, end]. Ties resolve to the earliest index. The running maximum is
// seeded with height 0 at start and only replaced on a strictly greater
// height, so an all-zero range yields start.
func (t *Terrain) PeakOf(start, end int) int {
	peak := 0
	peakIndex := start

	for i := start; i <= end; i++ {
		if t.heights[i] > peak {
			peak = t.heights[i]
			peakIndex = i
		}
	}

	return peakIndex
}

// Collect returns the water held strictly between start and end when the
// lower of the two boundary heights is the waterline. The boundaries are
// trusted to be the walls of that range.
func (t *Terrain) Collect(start, end int) int {
	return t.collectInto(start, end, nil)
}

func (t *Terrain) collectInto(start, end int, levels []int) int {
	waterline := min(t.heights[start], t.heights[end])
	collected := 0

	for i := start + 1; i < end; i++ {
		if t.heights[i] < waterline {
			depth := waterline - t.heights[i]
			collected += depth

			if levels != nil {
				levels[i] = depth
			}
		}
	}

	return collected
}

// Solve returns the water trapped inside the closed range [start, end] by
// splitting it around its tallest points until every part can be collected
// directly. Ranges with no interior position hold nothing.
func (t *Terrain) Solve(start, end int) int {
	s := splitter{terrain: t}

	return s.run(start, end)
}

// interval is a pending [start, end] range on the splitter's work stack.
type interval struct {
	start, end int
}

// splitter drives the interval-splitting walk over an explicit stack.
// levels and logger are optional.
type splitter struct {
	terrain *Terrain
	levels  []int
	logger  *slog.Logger
	ctx     context.Context //nolint:containedctx // scoped to one walk.
}

func (s *splitter) run(start, end int) int {
	stack := make([]interval, 0, stackHint(end-start))
	stack = append(stack, interval{start: start, end: end})
	total := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var collected int

		collected, stack = s.step(top.start, top.end, stack)
		total += collected
	}

	return total
}

// step resolves one range. It either collects it directly, narrows it by one
// position and keeps going, or pushes the two halves around an interior peak.
func (s *splitter) step(start, end int, stack []interval) (int, []interval) {
	for {
		if end-start <= 1 {
			s.trace("interval too small", start, end)

			return 0, stack
		}

		peak := s.terrain.PeakOf(start, end)
		s.trace("peak", start, end, slog.Int("peak", peak))

		if peak == start {
			next := s.terrain.PeakOf(start+1, end)
			s.trace("peak is start, probing next", start, end, slog.Int("next", next))

			if next == end {
				return s.collect(start, end), stack
			}

			if next == start+1 {
				s.trace("skip first position", start+1, end)
				start++

				continue
			}

			peak = next
		}

		if peak == end {
			prev := s.terrain.PeakOf(start, end-1)
			s.trace("peak is end, probing previous", start, end, slog.Int("previous", prev))

			if prev == start {
				return s.collect(start, end), stack
			}

			if prev == end-1 {
				s.trace("skip last position", start, end-1)
				end--

				continue
			}

			peak = prev
		}

		s.trace("split", start, end, slog.Int("peak", peak))

		// Right half first so the left half is walked next.
		stack = append(stack, interval{start: peak, end: end}, interval{start: start, end: peak})

		return 0, stack
	}
}

func (s *splitter) collect(start, end int) int {
	collected := s.terrain.collectInto(start, end, s.levels)
	s.trace("collected", start, end, slog.Int("units", collected))

	return collected
}

func (s *splitter) trace(msg string, start, end int, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}

	attrs = append(attrs, slog.Int("start", start), slog.Int("end", end))
	s.logger.LogAttrs(s.ctx, LevelTrace, msg, attrs...)
}

// stackHint sizes the initial work stack; it grows on demand.
func stackHint(width int) int {
	const maxHint = 64

	return max(1, min(width, maxHint))
}
