package gait

import (
	"math"
	"testing"
)

func TestJointAngleRightAngle(t *testing.T) {
	// Vertex at the origin, arms along the axes.
	got := jointAngleDegrees(1, 0, 0, 0, 0, 1)
	if math.Abs(got-90) > 1e-6 {
		t.Errorf("right-angle configuration = %v°, want 90°", got)
	}

	// Collinear configurations clip cleanly to 0 and 180.
	if got := jointAngleDegrees(1, 0, 0, 0, 2, 0); math.Abs(got) > 1e-6 {
		t.Errorf("collinear same-side = %v°, want 0°", got)
	}
	if got := jointAngleDegrees(-1, 0, 0, 0, 1, 0); math.Abs(got-180) > 1e-6 {
		t.Errorf("collinear opposite = %v°, want 180°", got)
	}

	// Degenerate segment.
	if got := jointAngleDegrees(0, 0, 0, 0, 1, 1); got != 0 {
		t.Errorf("degenerate segment = %v°, want 0°", got)
	}
}

func TestJointAngleSeriesConfidenceGate(t *testing.T) {
	frames := uniformFrames(6, 17, func(f, k int) (float64, float64, float64) {
		conf := 0.9
		if f < 2 {
			conf = 0 // first two frames untracked
		}
		return float64(k), float64(k * 2), conf
	})
	pa := NewPoseArray(frames)

	triple := Layout17.Joints()[0]
	series := pa.jointAngleSeries(triple, gateNonZero)
	if len(series) != 4 {
		t.Errorf("gated series length = %d, want 4", len(series))
	}
}

func TestExtractFeaturesStaticSequence(t *testing.T) {
	frames := uniformFrames(30, 17, func(f, k int) (float64, float64, float64) {
		x, y := baselinePosition(k)
		return x, y, 0.9
	})
	cfg := DefaultAnalysisConfig()
	cfg.Layout = Layout17

	report := ExtractFeatures(NewPoseArray(frames), cfg)
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected group errors: %v", report.Errors)
	}

	// A frozen trajectory has zero kinematics at every order.
	for _, key := range []string{
		"speed_mean", "speed_std", "speed_max",
		"acceleration_mean", "acceleration_max",
		"jerk_mean", "jerk_max",
	} {
		v, ok := report.Features[key]
		if !ok {
			t.Errorf("missing feature %q", key)
			continue
		}
		if v != 0 {
			t.Errorf("%s = %v, want 0", key, v)
		}
	}

	// Identical left/right signals are perfectly symmetric.
	for _, key := range []string{"knee_symmetry_index", "ankle_symmetry_index"} {
		if v := report.Features[key]; v != 0 {
			t.Errorf("%s = %v, want 0", key, v)
		}
	}

	// A static subject is stationary, so postural sway is reported; the COM
	// never moves, so the hull degenerates and the bounding box is 0 too.
	if v, ok := report.Features["postural_sway_area"]; !ok || v != 0 {
		t.Errorf("postural_sway_area = %v (present=%v), want 0", v, ok)
	}
}

func TestExtractFeaturesDominantFrequency(t *testing.T) {
	const (
		fps    = 30.0
		f0     = 2.0 // Hz
		frames = 150
	)
	// Steady drift plus a sinusoid keeps the per-frame displacement strictly
	// positive, so the displacement spectrum peaks at the driving frequency.
	seq := uniformFrames(frames, 17, func(f, k int) (float64, float64, float64) {
		x := 5*float64(f) + 3*math.Sin(2*math.Pi*f0*float64(f)/fps)
		return x, 100 + float64(k), 0.9
	})
	cfg := DefaultAnalysisConfig()
	cfg.Layout = Layout17
	cfg.FPS = fps

	report := ExtractFeatures(NewPoseArray(seq), cfg)

	dominant, ok := report.Features["dominant_frequency"]
	if !ok {
		t.Fatal("dominant_frequency missing")
	}
	binWidth := fps / float64(frames-1)
	if math.Abs(dominant-f0) > binWidth {
		t.Errorf("dominant_frequency = %v, want %v ± %v", dominant, f0, binWidth)
	}
	if got, want := report.Features["cadence_estimate"], dominant*120; math.Abs(got-want) > 1e-9 {
		t.Errorf("cadence_estimate = %v, want %v", got, want)
	}
	if got, want := report.Features["duration_seconds"], float64(frames)/fps; math.Abs(got-want) > 1e-9 {
		t.Errorf("duration_seconds = %v, want %v", got, want)
	}
}

func TestExtractFeaturesStrideGroup(t *testing.T) {
	frames := walkingFrames(150, 28, 10)
	cfg := DefaultAnalysisConfig()
	cfg.Layout = Layout17

	report := ExtractFeatures(NewPoseArray(frames), cfg)

	// Both ankles trace equal-amplitude sinusoids: equal path lengths.
	lp := report.Features["left_path_length"]
	rp := report.Features["right_path_length"]
	if lp <= 0 || rp <= 0 {
		t.Fatalf("path lengths = (%v, %v), want > 0", lp, rp)
	}
	if asym := report.Features["path_length_asymmetry"]; asym > 1e-6 {
		t.Errorf("path_length_asymmetry = %v, want ~0", asym)
	}
	if w := report.Features["step_width_mean"]; w < 100 || w > 102 {
		// Ankles 100px apart horizontally, up to 20px apart vertically.
		t.Errorf("step_width_mean = %v, want ~100", w)
	}
}

func TestExtractFeaturesDegenerateInput(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	report := ExtractFeatures(nil, cfg)
	if !report.Empty() {
		t.Errorf("nil array: got %d features, want none", len(report.Features))
	}

	// Unknown layout degrades to an empty mapping, not a failure.
	cfg.Layout = LandmarkLayout(99)
	frames := uniformFrames(10, 17, func(f, k int) (float64, float64, float64) {
		return float64(f), float64(k), 0.5
	})
	report = ExtractFeatures(NewPoseArray(frames), cfg)
	if !report.Empty() {
		t.Errorf("unknown layout: got %d features, want none", len(report.Features))
	}
}

func TestConvexHullArea(t *testing.T) {
	// Unit square with an interior point.
	xs := []float64{0, 1, 1, 0, 0.5}
	ys := []float64{0, 0, 1, 1, 0.5}
	if got := convexHullArea(xs, ys); math.Abs(got-1) > 1e-12 {
		t.Errorf("unit square hull area = %v, want 1", got)
	}

	// Collinear points degenerate to zero; bounding box is the fallback.
	xs = []float64{0, 1, 2, 3}
	ys = []float64{0, 0, 0, 0}
	if got := convexHullArea(xs, ys); got != 0 {
		t.Errorf("collinear hull area = %v, want 0", got)
	}
	if got := boundingBoxArea(xs, ys); got != 0 {
		t.Errorf("collinear bbox area = %v, want 0", got)
	}
	ys = []float64{0, 1, 0, 2}
	if got := boundingBoxArea(xs, ys); got != 6 {
		t.Errorf("bbox area = %v, want 6", got)
	}
}
