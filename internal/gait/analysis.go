// Package gait turns a per-frame sequence of body-landmark coordinates into
// quantitative gait metrics: kinematic and joint-angle statistics, gait-cycle
// timing, and left/right symmetry scores. The package is purely
// computational: it consumes a fully materialized sequence, performs no I/O,
// and its entry points never fail on degraded pose-estimation input.
package gait

import "sync"

// AnalysisResult bundles the three analyzer outputs for one sequence under a
// single run ID.
type AnalysisResult struct {
	RunID    string          `json:"run_id"`
	Features *FeatureReport  `json:"features"`
	Cycles   *CycleReport    `json:"cycles"`
	Symmetry *SymmetryReport `json:"symmetry"`
}

// Analyze adapts a raw frame sequence and runs feature extraction, gait-cycle
// analysis and symmetry analysis over it. The three analyzers only read the
// shared PoseArray, so they are fanned out concurrently. Like the individual
// entry points, Analyze never fails: degenerate input produces empty reports.
func Analyze(frames []FrameRecord, cfg AnalysisConfig) *AnalysisResult {
	pa := NewPoseArray(frames)
	result := &AnalysisResult{RunID: newRunID()}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		result.Features = ExtractFeatures(pa, cfg)
	}()
	go func() {
		defer wg.Done()
		result.Cycles = AnalyzeCycles(pa, cfg)
	}()
	go func() {
		defer wg.Done()
		result.Symmetry = AnalyzeSymmetry(pa, cfg)
	}()
	wg.Wait()

	result.Features.RunID = result.RunID
	result.Cycles.RunID = result.RunID
	result.Symmetry.RunID = result.RunID
	return result
}
