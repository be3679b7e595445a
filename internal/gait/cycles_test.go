package gait

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCyclesSinusoidalGait(t *testing.T) {
	const period = 28 // frames, within the default [12, 60] cycle bounds
	frames := walkingFrames(150, period, 10)
	cfg := DefaultAnalysisConfig()
	cfg.Layout = Layout17

	report := AnalyzeCycles(NewPoseArray(frames), cfg)
	require.Empty(t, report.Errors)
	require.NotEmpty(t, report.Cycles)

	// 150 frames at period 28 give five strikes per foot, four cycles each.
	perFoot := map[Foot]int{}
	for _, c := range report.Cycles {
		perFoot[c.Foot]++
		assert.InDelta(t, period, c.DurationFrames, 1, "cycle %d duration", c.ID)
		assert.GreaterOrEqual(t, c.DurationFrames, cfg.minCycleFrames())
		assert.LessOrEqual(t, c.DurationFrames, cfg.maxCycleFrames())
		assert.Equal(t, MethodHeelStrike, c.Method)
	}
	assert.GreaterOrEqual(t, perFoot[FootLeft], 2)
	assert.GreaterOrEqual(t, perFoot[FootRight], 2)

	// Cycles are sorted by start frame and tagged with sequential ids.
	for i, c := range report.Cycles {
		assert.Equal(t, i, c.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, c.Start, report.Cycles[i-1].Start)
		}
	}

	assert.InDelta(t, float64(period)/cfg.FPS, report.Features["cycle_duration_mean"], 0.05)
	assert.InDelta(t, 0, report.Features["cycle_duration_asymmetry"], 0.05)

	cadence := report.Features["cadence_steps_per_min"]
	assert.GreaterOrEqual(t, cadence, 100.0)
	assert.LessOrEqual(t, cadence, 140.0)

	// Eight cycles comfortably clear the regularity minimum; a pure
	// sinusoid has near-constant start gaps.
	assert.Less(t, report.Features["step_regularity"], 0.1)
}

func TestAnalyzeCyclesPhaseFeatures(t *testing.T) {
	frames := walkingFrames(150, 28, 10)
	cfg := DefaultAnalysisConfig()
	cfg.Layout = Layout17

	report := AnalyzeCycles(NewPoseArray(frames), cfg)
	require.NotEmpty(t, report.Cycles)

	stance := report.Features["stance_duration_mean"]
	swing := report.Features["swing_duration_mean"]
	require.Greater(t, stance, 0.0)
	require.Greater(t, swing, 0.0)

	// The 60th-percentile split puts more frames in stance than swing.
	assert.Greater(t, stance, swing)
	assert.Greater(t, report.Features["stance_swing_ratio_mean"], 1.0)

	// Stance plus swing spans the cycle window.
	cycleSecs := report.Features["cycle_duration_mean"]
	assert.InDelta(t, cycleSecs, stance+swing, 0.1)
}

func TestAnalyzeCyclesDetectionMethods(t *testing.T) {
	frames := walkingFrames(150, 28, 10)
	pa := NewPoseArray(frames)
	cfg := DefaultAnalysisConfig()
	cfg.Layout = Layout17

	t.Run("heel strike", func(t *testing.T) {
		report := AnalyzeCycles(pa, cfg)
		assert.Equal(t, MethodHeelStrike, report.Method)
		assert.NotEmpty(t, report.Events["heel_strike"])
		assert.Empty(t, report.Events["toe_off"])
	})

	t.Run("toe off mirrors on maxima", func(t *testing.T) {
		cfg := cfg
		cfg.Method = MethodToeOff
		report := AnalyzeCycles(pa, cfg)
		require.NotEmpty(t, report.Events["toe_off"])
		assert.Empty(t, report.Events["heel_strike"])
		assert.NotEmpty(t, report.Cycles)
		for _, c := range report.Cycles {
			assert.Equal(t, MethodToeOff, c.Method)
		}
	})

	t.Run("combined detects both, cycles from heel strikes", func(t *testing.T) {
		cfg := cfg
		cfg.Method = MethodCombined
		report := AnalyzeCycles(pa, cfg)
		assert.NotEmpty(t, report.Events["heel_strike"])
		assert.NotEmpty(t, report.Events["toe_off"])
		for _, c := range report.Cycles {
			assert.Equal(t, MethodCombined, c.Method)
		}
	})

	t.Run("unknown method falls back to heel strike", func(t *testing.T) {
		cfg := cfg
		cfg.Method = DetectionMethod("gallop")
		report := AnalyzeCycles(pa, cfg)
		assert.Equal(t, MethodHeelStrike, report.Method)
		assert.NotEmpty(t, report.Cycles)
	})
}

func TestAnalyzeCyclesStrikeSpacing(t *testing.T) {
	frames := walkingFrames(150, 28, 10)
	cfg := DefaultAnalysisConfig()
	cfg.Layout = Layout17
	report := AnalyzeCycles(NewPoseArray(frames), cfg)

	// Accepted strikes for one foot are at least minCycleFrames apart and
	// never earlier than minCycleFrames into the sequence.
	minCF := cfg.minCycleFrames()
	lastByFoot := map[Foot]int{}
	for _, ev := range report.Events["heel_strike"] {
		assert.GreaterOrEqual(t, ev.Frame, minCF)
		if last, ok := lastByFoot[ev.Foot]; ok {
			assert.GreaterOrEqual(t, ev.Frame-last, minCF)
		}
		lastByFoot[ev.Foot] = ev.Frame
	}
}

func TestAnalyzeCyclesDegenerateInput(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	report := AnalyzeCycles(nil, cfg)
	assert.Empty(t, report.Cycles)
	assert.Empty(t, report.Events["heel_strike"])

	// Too short for any local extremum.
	short := uniformFrames(2, 17, func(f, k int) (float64, float64, float64) {
		return float64(f), float64(k), 0.9
	})
	cfg.Layout = Layout17
	report = AnalyzeCycles(NewPoseArray(short), cfg)
	assert.Empty(t, report.Cycles)

	// Unsupported layout degrades to an empty report.
	cfg.Layout = LandmarkLayout(5)
	report = AnalyzeCycles(NewPoseArray(short), cfg)
	assert.Empty(t, report.Cycles)
}
