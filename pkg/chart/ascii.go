// Package chart draws terrains: a row-per-level ASCII profile for terminals
// and logs, and a stacked bar chart as a standalone HTML page.
package chart

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

// Cell glyphs. Every cell is two characters wide.
const (
	GroundCell = "^ "
	WaterCell  = "~ "
	EmptyCell  = "  "
)

// SeparatorRune underlines the profile above the heights row.
const SeparatorRune = "-"

// Options controls ASCII rendering.
type Options struct {
	// Levels are per-position water depths; nil draws ground only.
	Levels  []int
	NoColor bool
}

// OptionsFromEnv returns Options honoring the NO_COLOR convention.
func OptionsFromEnv() Options {
	return Options{NoColor: os.Getenv("NO_COLOR") != ""}
}

// ASCII renders t one row per height level, from the tallest peak down to 1,
// followed by a separator and the numeric heights.
func ASCII(t *terrain.Terrain, opts Options) []string {
	ground := color.New(color.FgYellow)
	water := color.New(color.FgCyan)

	if opts.NoColor {
		ground.DisableColor()
		water.DisableColor()
	}

	groundCell := ground.Sprint("^") + " "
	waterCell := water.Sprint("~") + " "

	top := t.Height(t.Peak())
	rows := make([]string, 0, top+2)

	var sb strings.Builder

	for level := top; level > 0; level-- {
		sb.Reset()

		for i := range t.Len() {
			h := t.Height(i)

			switch {
			case h >= level:
				sb.WriteString(groundCell)
			case opts.Levels != nil && h+opts.Levels[i] >= level:
				sb.WriteString(waterCell)
			default:
				sb.WriteString(EmptyCell)
			}
		}

		rows = append(rows, sb.String())
	}

	numbers := make([]string, t.Len())
	for i := range numbers {
		numbers[i] = strconv.Itoa(t.Height(i))
	}

	heightsRow := strings.Join(numbers, " ")

	return append(rows, strings.Repeat(SeparatorRune, len(heightsRow)), heightsRow)
}

// Write renders t and writes one line per row to w.
func Write(w io.Writer, t *terrain.Terrain, opts Options) error {
	for _, row := range ASCII(t, opts) {
		_, err := fmt.Fprintln(w, row)
		if err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
	}

	return nil
}
