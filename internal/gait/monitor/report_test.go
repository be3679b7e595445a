package monitor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/gait.report/internal/gait"
)

func TestWriteHTMLReport(t *testing.T) {
	result := &gait.AnalysisResult{
		RunID: "test-run",
		Features: &gait.FeatureReport{
			RunID:    "test-run",
			Features: map[string]float64{"speed_mean": 1.5, "speed_std": 0.2},
		},
		Cycles: &gait.CycleReport{
			RunID:  "test-run",
			Method: gait.MethodHeelStrike,
			Cycles: []gait.GaitCycle{
				{ID: 0, Start: 10, End: 40, DurationFrames: 30, DurationSecs: 1.0, Foot: gait.FootLeft},
				{ID: 1, Start: 25, End: 55, DurationFrames: 30, DurationSecs: 1.0, Foot: gait.FootRight},
			},
			Features: map[string]float64{"num_cycles": 2},
		},
		Symmetry: &gait.SymmetryReport{
			RunID:          "test-run",
			Indices:        map[string]float64{"overall_symmetry_index": 0.03},
			Classification: gait.ClassSymmetric,
		},
	}

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTMLReport(path, result); err != nil {
		t.Fatalf("WriteHTMLReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "echarts") {
		t.Error("report should embed echarts")
	}
	if !strings.Contains(html, "Symmetry indices") {
		t.Error("report should include the symmetry chart")
	}
}

func TestNewSeriesPlotterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots", "run1")
	if _, err := NewSeriesPlotter(dir); err != nil {
		t.Fatalf("NewSeriesPlotter: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("output dir not created: %v", err)
	}
}
