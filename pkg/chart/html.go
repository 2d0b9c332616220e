package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

// HTML chart layout.
const (
	htmlWidth        = "100%"
	htmlHeight       = "500px"
	htmlStack        = "profile"
	groundSeries     = "Ground"
	waterSeries      = "Water"
	groundColor      = "#a0522d"
	waterColor       = "#4fa3e0"
	zoomEndPercent   = 100
	defaultPageTitle = "Trapped water"
)

// HTML writes a standalone page with a stacked bar chart of t: ground height
// per position with the trapped water depth on top. levels may be nil.
func HTML(w io.Writer, t *terrain.Terrain, levels []int, title string) error {
	if title == "" {
		title = defaultPageTitle
	}

	labels := make([]string, t.Len())
	groundData := make([]opts.BarData, t.Len())
	waterData := make([]opts.BarData, t.Len())
	total := 0

	for i := range t.Len() {
		labels[i] = strconv.Itoa(i)
		groundData[i] = opts.BarData{Value: t.Height(i)}

		depth := 0
		if levels != nil {
			depth = levels[i]
		}

		total += depth
		waterData[i] = opts.BarData{Value: depth}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     htmlWidth,
			Height:    htmlHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d positions, %d units of water", t.Len(), total),
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "10%", Left: "center"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: zoomEndPercent},
			opts.DataZoom{Type: "inside"},
		),
	)

	bar.SetXAxis(labels)
	bar.AddSeries(groundSeries, groundData,
		charts.WithBarChartOpts(opts.BarChart{Stack: htmlStack}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: groundColor}),
	)
	bar.AddSeries(waterSeries, waterData,
		charts.WithBarChartOpts(opts.BarChart{Stack: htmlStack}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: waterColor}),
	)

	err := bar.Render(w)
	if err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}

	return nil
}
