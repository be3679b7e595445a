package gait

import "github.com/google/uuid"

// FeatureReport is the Feature Extractor's output: a flat name->value
// mapping plus per-group failure reasons. A group failure never invalidates
// the other groups; callers check Errors to learn which groups are missing.
type FeatureReport struct {
	RunID    string             `json:"run_id"`
	Features map[string]float64 `json:"features"`
	Errors   map[string]string  `json:"errors,omitempty"`
}

// Empty reports whether no feature was produced at all.
func (r *FeatureReport) Empty() bool {
	return r == nil || len(r.Features) == 0
}

// CycleReport is the Gait-Cycle Analyzer's output.
type CycleReport struct {
	RunID    string                 `json:"run_id"`
	Method   DetectionMethod        `json:"method"`
	Cycles   []GaitCycle            `json:"cycles"`
	Events   map[string][]GaitEvent `json:"events"`
	Features map[string]float64     `json:"features"`
	Errors   map[string]string      `json:"errors,omitempty"`
}

// SymmetryReport is the Symmetry Analyzer's output. Indices holds every
// computed metric; Classification summarizes the *_symmetry_index subset
// against the configured threshold.
type SymmetryReport struct {
	RunID          string             `json:"run_id"`
	Indices        map[string]float64 `json:"indices"`
	Classification string             `json:"classification,omitempty"`
	Errors         map[string]string  `json:"errors,omitempty"`
}

// newRunID tags a report for downstream correlation.
func newRunID() string {
	return uuid.New().String()
}
