package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/raincatch/pkg/config"
	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

// calcReport is the machine-readable calc output.
type calcReport struct {
	Heights        []int `json:"heights"   yaml:"heights,flow"`
	terrain.Result `yaml:",inline"`
	Positions      int `json:"positions" yaml:"positions"`
}

func writeReport(w io.Writer, format string, t *terrain.Terrain, res terrain.Result) error {
	switch format {
	case config.FormatJSON:
		return writeJSONReport(w, newCalcReport(t, res))
	case config.FormatYAML:
		return writeYAMLReport(w, newCalcReport(t, res))
	default:
		return writeTextReport(w, t, res)
	}
}

func newCalcReport(t *terrain.Terrain, res terrain.Result) calcReport {
	return calcReport{Heights: t.Heights(), Result: res, Positions: t.Len()}
}

func writeJSONReport(w io.Writer, report calcReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

func writeYAMLReport(w io.Writer, report calcReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return nil
}

func writeTextReport(w io.Writer, t *terrain.Terrain, res terrain.Result) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false

	tbl.AppendRow(table.Row{"Positions", humanize.Comma(int64(t.Len()))})
	tbl.AppendRow(table.Row{"Peak", humanize.Comma(int64(t.MaxHeight()))})
	tbl.AppendRow(table.Row{"First hill", hillLabel(res.FirstHill)})
	tbl.AppendRow(table.Row{"Last hill", hillLabel(res.LastHill)})
	tbl.AppendRow(table.Row{"Degeneracy", string(res.Degeneracy)})
	tbl.AppendRow(table.Row{"Water", humanize.Comma(int64(res.Water))})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func hillLabel(idx int) string {
	if idx < 0 {
		return "-"
	}

	return strconv.Itoa(idx)
}
