package monitor

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/gait.report/internal/gait"
)

// WriteHTMLReport renders the combined analysis result as a standalone HTML
// page: a bar chart of symmetry indices, a line chart of cycle durations,
// and a bar chart of the flat feature mapping. Intended for eyeballing a
// single run, not for dashboards.
func WriteHTMLReport(path string, result *gait.AnalysisResult) error {
	page := components.NewPage()
	page.PageTitle = "gait analysis " + result.RunID

	if result.Symmetry != nil && len(result.Symmetry.Indices) > 0 {
		page.AddCharts(indexBarChart(
			fmt.Sprintf("Symmetry indices (%s)", result.Symmetry.Classification),
			result.Symmetry.Indices))
	}
	if result.Cycles != nil && len(result.Cycles.Cycles) > 0 {
		page.AddCharts(cycleDurationChart(result.Cycles.Cycles))
	}
	if result.Features != nil && len(result.Features.Features) > 0 {
		page.AddCharts(indexBarChart("Extracted features", result.Features.Features))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// indexBarChart renders a name->value mapping as a bar chart with sorted,
// stable key order.
func indexBarChart(title string, values map[string]float64) *charts.Bar {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	data := make([]opts.BarData, len(names))
	for i, k := range names {
		data[i] = opts.BarData{Value: values[k]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
	)
	bar.SetXAxis(names).AddSeries("value", data)
	return bar
}

// cycleDurationChart renders per-cycle durations, colored by foot via two
// series over the shared cycle-id axis.
func cycleDurationChart(cycles []gait.GaitCycle) *charts.Line {
	ids := make([]string, len(cycles))
	left := make([]opts.LineData, len(cycles))
	right := make([]opts.LineData, len(cycles))
	for i, c := range cycles {
		ids[i] = fmt.Sprintf("%d", c.ID)
		if c.Foot == gait.FootLeft {
			left[i] = opts.LineData{Value: c.DurationSecs}
			right[i] = opts.LineData{Value: nil}
		} else {
			left[i] = opts.LineData{Value: nil}
			right[i] = opts.LineData{Value: c.DurationSecs}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Gait cycle durations (s)"}))
	line.SetXAxis(ids).
		AddSeries("left", left).
		AddSeries("right", right)
	return line
}
