// Package monitor renders gait analysis series for visual debugging: PNG
// line plots of per-frame signals and a self-contained HTML report of the
// computed metrics. Nothing here feeds back into the analysis itself.
package monitor

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/gait.report/internal/gait"
)

// SeriesPlotter writes PNG plots of analysis series into an output
// directory, one file per series.
type SeriesPlotter struct {
	outputDir string
}

// NewSeriesPlotter creates the output directory and returns a plotter
// writing into it.
func NewSeriesPlotter(outputDir string) (*SeriesPlotter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &SeriesPlotter{outputDir: outputDir}, nil
}

// PlotSeries renders one per-frame series as a line plot with time on the
// x-axis. The output file is <outputDir>/<name>.png.
func (sp *SeriesPlotter) PlotSeries(name, yLabel string, fps float64, values []float64) error {
	if len(values) == 0 {
		return fmt.Errorf("series %q is empty", name)
	}
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i) / fps
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build line for %q: %w", name, err)
	}
	p.Add(line)

	out := filepath.Join(sp.outputDir, name+".png")
	if err := p.Save(8*vg.Inch, 4*vg.Inch, out); err != nil {
		return fmt.Errorf("failed to save %q: %w", out, err)
	}
	return nil
}

// PlotSeriesWithEvents renders a series with detected gait events overlaid
// as scatter markers at their frame positions.
func (sp *SeriesPlotter) PlotSeriesWithEvents(name, yLabel string, fps float64, values []float64, events []gait.GaitEvent) error {
	if len(values) == 0 {
		return fmt.Errorf("series %q is empty", name)
	}
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i) / fps
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build line for %q: %w", name, err)
	}
	p.Add(line)

	var marks plotter.XYs
	for _, ev := range events {
		if ev.Frame < 0 || ev.Frame >= len(values) {
			continue
		}
		marks = append(marks, plotter.XY{
			X: float64(ev.Frame) / fps,
			Y: values[ev.Frame],
		})
	}
	if len(marks) > 0 {
		scatter, err := plotter.NewScatter(marks)
		if err != nil {
			return fmt.Errorf("failed to build event markers for %q: %w", name, err)
		}
		p.Add(scatter)
	}

	out := filepath.Join(sp.outputDir, name+".png")
	if err := p.Save(8*vg.Inch, 4*vg.Inch, out); err != nil {
		return fmt.Errorf("failed to save %q: %w", out, err)
	}
	return nil
}
