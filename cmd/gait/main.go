// Command gait runs the gait analysis pipeline over a pose-sequence JSON
// file and prints the combined report as JSON. It is a thin harness around
// internal/gait; all analysis logic lives there.
//
// The input file is a JSON array of frames, each frame an object with a
// "landmarks" array of {x, y, confidence} records in layout order.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/gait.report/internal/gait"
	"github.com/banshee-data/gait.report/internal/gait/monitor"
	"github.com/banshee-data/gait.report/internal/version"
)

func main() {
	var (
		showVersion  = flag.Bool("version", false, "Print version and exit")
		inputFile    = flag.String("input", "", "Path to pose sequence JSON file (required)")
		outputFile   = flag.String("output", "", "Path for the JSON report (default: stdout)")
		plotsDir     = flag.String("plots", "", "Directory for debug PNG plots (optional)")
		htmlReport   = flag.String("html", "", "Path for an HTML report (optional)")
		fps          = flag.Float64("fps", 30, "Capture frame rate")
		layoutCount  = flag.Int("layout", 33, "Landmark layout: 17, 25 or 33")
		method       = flag.String("method", "heel_strike", "Detection method: heel_strike, toe_off or combined")
		confidence   = flag.Float64("confidence", 0.5, "Confidence threshold")
		symThreshold = flag.Float64("symmetry-threshold", 0.1, "Symmetry classification threshold")
		minCycle     = flag.Float64("min-cycle", 0.4, "Minimum gait cycle duration (seconds)")
		maxCycle     = flag.Float64("max-cycle", 2.0, "Maximum gait cycle duration (seconds)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("gait", version.String())
		return
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: gait -input <sequence.json> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	frames, err := loadFrames(*inputFile)
	if err != nil {
		log.Fatalf("Failed to load pose sequence: %v", err)
	}

	cfg := gait.DefaultAnalysisConfig()
	cfg.FPS = *fps
	cfg.Layout = gait.LandmarkLayout(*layoutCount)
	cfg.Method = gait.DetectionMethod(*method)
	cfg.ConfidenceThreshold = *confidence
	cfg.SymmetryThreshold = *symThreshold
	cfg.MinCycleDurationSecs = *minCycle
	cfg.MaxCycleDurationSecs = *maxCycle

	result := gait.Analyze(frames, cfg)

	if *plotsDir != "" {
		if err := writePlots(*plotsDir, frames, cfg, result); err != nil {
			log.Printf("Plot generation failed: %v", err)
		}
	}
	if *htmlReport != "" {
		if err := monitor.WriteHTMLReport(*htmlReport, result); err != nil {
			log.Printf("HTML report failed: %v", err)
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	if *outputFile == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(*outputFile, out, 0644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	log.Printf("Wrote report to %s", *outputFile)
}

// loadFrames decodes a pose-sequence JSON file.
func loadFrames(path string) ([]gait.FrameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var frames []gait.FrameRecord
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return frames, nil
}

// writePlots renders the ankle vertical series with detected events overlaid.
func writePlots(dir string, frames []gait.FrameRecord, cfg gait.AnalysisConfig, result *gait.AnalysisResult) error {
	pa := gait.NewPoseArray(frames)
	if pa == nil {
		return fmt.Errorf("no landmarks to plot")
	}
	sp, err := monitor.NewSeriesPlotter(dir)
	if err != nil {
		return err
	}

	var events []gait.GaitEvent
	for _, evs := range result.Cycles.Events {
		events = append(events, evs...)
	}
	for _, side := range []string{"left", "right"} {
		k, ok := cfg.Layout.Index(side + "_ankle")
		if !ok || k >= pa.Landmarks {
			continue
		}
		var sideEvents []gait.GaitEvent
		for _, ev := range events {
			if string(ev.Foot) == side {
				sideEvents = append(sideEvents, ev)
			}
		}
		name := side + "_ankle_height"
		if err := sp.PlotSeriesWithEvents(name, "y (px)", cfg.FPS, pa.YSeries(k), sideEvents); err != nil {
			return err
		}
	}
	return nil
}
