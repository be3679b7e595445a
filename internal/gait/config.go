package gait

// DetectionMethod selects how foot-strike events are found when segmenting
// a sequence into gait cycles.
type DetectionMethod string

const (
	// MethodHeelStrike detects ground contact as local minima of the foot's
	// vertical position.
	MethodHeelStrike DetectionMethod = "heel_strike"
	// MethodToeOff detects push-off as local maxima of the foot's vertical
	// position.
	MethodToeOff DetectionMethod = "toe_off"
	// MethodCombined detects both event types; cycles are built from the
	// heel strikes.
	MethodCombined DetectionMethod = "combined"
)

// AnalysisConfig holds every tunable parameter of the analysis pipeline.
// A zero value is not usable; start from DefaultAnalysisConfig.
type AnalysisConfig struct {
	// Layout identifies the landmark scheme of the input sequence.
	Layout LandmarkLayout

	// FPS is the capture frame rate. Must be > 0.
	FPS float64

	// ConfidenceThreshold gates landmarks out of confidence-sensitive
	// statistics (symmetry angle series, body center line).
	ConfidenceThreshold float64

	// SymmetryThreshold is the classification boundary t: an index below t
	// is symmetric, below 2t mildly asymmetric, below 3t moderately, else
	// severely asymmetric.
	SymmetryThreshold float64

	// MinCycleDurationSecs / MaxCycleDurationSecs bound the accepted gait
	// cycle length. Converted to frame counts with FPS.
	MinCycleDurationSecs float64
	MaxCycleDurationSecs float64

	// Method selects the foot-strike detector. Unknown values fall back to
	// heel-strike with a logged warning.
	Method DetectionMethod

	// StationarySpeedMax is the mean center-of-mass speed (units/frame)
	// below which the subject is treated as stationary and postural sway
	// area is computed.
	StationarySpeedMax float64

	// FrameWidth / FrameHeight are the source image dimensions, used as the
	// body-center fallback point when no landmark clears the confidence
	// threshold in any frame.
	FrameWidth  float64
	FrameHeight float64
}

// DefaultAnalysisConfig returns sensible defaults for walking video analysed
// at 30fps on a 1080p frame.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Layout:               Layout33,
		FPS:                  30,
		ConfidenceThreshold:  0.5,
		SymmetryThreshold:    0.1,
		MinCycleDurationSecs: 0.4, // brisk walk, ~150 cycles/min upper bound
		MaxCycleDurationSecs: 2.0, // slow walk lower bound
		Method:               MethodHeelStrike,
		StationarySpeedMax:   0.5,
		FrameWidth:           1920,
		FrameHeight:          1080,
	}
}

// minCycleFrames converts the configured minimum cycle duration to frames.
func (c AnalysisConfig) minCycleFrames() int {
	n := int(c.MinCycleDurationSecs * c.FPS)
	if n < 1 {
		n = 1
	}
	return n
}

// maxCycleFrames converts the configured maximum cycle duration to frames.
func (c AnalysisConfig) maxCycleFrames() int {
	n := int(c.MaxCycleDurationSecs * c.FPS)
	if n < 1 {
		n = 1
	}
	return n
}
