package gait

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// minSpectrumSamples is the shortest displacement series the dominant
// frequency estimate will accept.
const minSpectrumSamples = 10

// extractor bundles the immutable inputs shared by the feature groups.
type extractor struct {
	pa  *PoseArray
	cfg AnalysisConfig
}

// ExtractFeatures computes every feature group over the sequence and returns
// a flat feature mapping. Feature groups are independent: a failure in one is
// recorded under its group name in Errors while the rest still complete. No
// input may make this function panic or return an error; degenerate input
// yields an empty report.
func ExtractFeatures(pa *PoseArray, cfg AnalysisConfig) *FeatureReport {
	report := &FeatureReport{
		RunID:    newRunID(),
		Features: make(map[string]float64),
	}
	if pa == nil || pa.Frames == 0 {
		return report
	}
	if !cfg.Layout.Valid() {
		log.Printf("gait: unsupported landmark layout %d, skipping feature extraction", int(cfg.Layout))
		return report
	}

	ex := &extractor{pa: pa, cfg: cfg}
	groups := []struct {
		name string
		fn   func() (map[string]float64, error)
	}{
		{"kinematic", ex.kinematicFeatures},
		{"joint_angles", ex.jointAngleFeatures},
		{"temporal", ex.temporalFeatures},
		{"stride", ex.strideFeatures},
		{"symmetry", ex.symmetryFeatures},
		{"stability", ex.stabilityFeatures},
	}
	for _, g := range groups {
		feats, err := runFeatureGroup(g.name, g.fn)
		if err != nil {
			if report.Errors == nil {
				report.Errors = make(map[string]string)
			}
			report.Errors[g.name] = err.Error()
			continue
		}
		for k, v := range feats {
			report.Features[k] = v
		}
	}
	return report
}

// runFeatureGroup isolates one group: a panic inside the group becomes its
// recorded failure reason instead of propagating to the caller.
func runFeatureGroup(name string, fn func() (map[string]float64, error)) (feats map[string]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			feats = nil
			err = fmt.Errorf("%s group panicked: %v", name, r)
		}
	}()
	return fn()
}

// kinematicFeatures aggregates speed, acceleration and jerk magnitudes over
// every landmark and valid frame pair. The n-th order magnitude is the
// Euclidean norm of the n-th finite difference of the (x, y) trajectory.
func (ex *extractor) kinematicFeatures() (map[string]float64, error) {
	pa := ex.pa
	if pa.Frames < 2 {
		return nil, nil
	}

	var speeds, accels, jerks []float64
	for k := 0; k < pa.Landmarks; k++ {
		xs := make([]float64, pa.Frames)
		ys := make([]float64, pa.Frames)
		for f := 0; f < pa.Frames; f++ {
			xs[f] = pa.X(f, k)
			ys[f] = pa.Y(f, k)
		}
		d1x, d1y := diffPairs(xs, ys)
		speeds = append(speeds, magnitudes(d1x, d1y)...)
		d2x, d2y := diffPairs(d1x, d1y)
		accels = append(accels, magnitudes(d2x, d2y)...)
		d3x, d3y := diffPairs(d2x, d2y)
		jerks = append(jerks, magnitudes(d3x, d3y)...)
	}

	out := make(map[string]float64)
	addSeriesStats(out, "speed", speeds)
	addSeriesStats(out, "acceleration", accels)
	addSeriesStats(out, "jerk", jerks)
	return out, nil
}

// addSeriesStats writes <prefix>_mean/std/min/max for a non-empty series.
func addSeriesStats(out map[string]float64, prefix string, v []float64) {
	if len(v) == 0 {
		return
	}
	mean, std, min, max := seriesStats(v)
	out[prefix+"_mean"] = mean
	out[prefix+"_std"] = std
	out[prefix+"_min"] = min
	out[prefix+"_max"] = max
}

// jointAngleFeatures aggregates the per-layout joint-angle series. Frames
// contribute when all participating landmarks carry a non-zero confidence.
func (ex *extractor) jointAngleFeatures() (map[string]float64, error) {
	pa := ex.pa
	out := make(map[string]float64)

	for _, t := range ex.cfg.Layout.Joints() {
		if t.A >= pa.Landmarks || t.Vertex >= pa.Landmarks || t.B >= pa.Landmarks {
			continue
		}
		addAngleStats(out, t.Name, pa.jointAngleSeries(t, gateNonZero))
	}

	for _, side := range []string{"left", "right"} {
		knee, ok1 := ex.cfg.Layout.Index(side + "_knee")
		ankle, ok2 := ex.cfg.Layout.Index(side + "_ankle")
		if !ok1 || !ok2 || knee >= pa.Landmarks || ankle >= pa.Landmarks {
			continue
		}
		addAngleStats(out, side+"_ankle_angle", pa.ankleAngleSeries(knee, ankle, gateNonZero))
	}
	return out, nil
}

// addAngleStats writes mean/std/range/min/max for a non-empty angle series.
func addAngleStats(out map[string]float64, name string, v []float64) {
	if len(v) == 0 {
		return
	}
	mean, std, min, max := seriesStats(v)
	out[name+"_mean"] = mean
	out[name+"_std"] = std
	out[name+"_range"] = max - min
	out[name+"_min"] = min
	out[name+"_max"] = max
}

// temporalFeatures reports the sequence duration and, when enough samples
// exist, the dominant movement frequency from the magnitude spectrum of the
// center-of-mass displacement signal.
func (ex *extractor) temporalFeatures() (map[string]float64, error) {
	out := map[string]float64{
		"duration_seconds": float64(ex.pa.Frames) / ex.cfg.FPS,
	}

	xs, ys := ex.pa.CenterOfMass()
	dxs, dys := diffPairs(xs, ys)
	disp := magnitudes(dxs, dys)
	if len(disp) < minSpectrumSamples {
		return out, nil
	}

	// Real-input FFT: the coefficients already cover only the non-negative
	// half of the spectrum. Skip the DC bin when searching for the peak.
	fft := fourier.NewFFT(len(disp))
	coeffs := fft.Coefficients(nil, disp)
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = math.Hypot(real(c), imag(c))
	}
	best := 1 + argmax(mags[1:])
	dominant := fft.Freq(best) * ex.cfg.FPS

	out["dominant_frequency"] = dominant
	// Two steps per gait cycle.
	out["cadence_estimate"] = dominant * 60 * 2
	return out, nil
}

// strideFeatures reports per-ankle path lengths, their asymmetry, and the
// step width (inter-ankle distance) statistics.
func (ex *extractor) strideFeatures() (map[string]float64, error) {
	pa := ex.pa
	left, ok1 := ex.cfg.Layout.Index("left_ankle")
	right, ok2 := ex.cfg.Layout.Index("right_ankle")
	if !ok1 || !ok2 || left >= pa.Landmarks || right >= pa.Landmarks {
		return nil, nil
	}

	out := make(map[string]float64)
	pathLen := func(k int) float64 {
		var total float64
		for f := 1; f < pa.Frames; f++ {
			total += math.Hypot(pa.X(f, k)-pa.X(f-1, k), pa.Y(f, k)-pa.Y(f-1, k))
		}
		return total
	}
	lp, rp := pathLen(left), pathLen(right)
	out["left_path_length"] = lp
	out["right_path_length"] = rp
	out["path_length_asymmetry"] = math.Abs(lp - rp)

	widths := make([]float64, pa.Frames)
	for f := 0; f < pa.Frames; f++ {
		widths[f] = math.Hypot(pa.X(f, left)-pa.X(f, right), pa.Y(f, left)-pa.Y(f, right))
	}
	mean, std, min, max := seriesStats(widths)
	out["step_width_mean"] = mean
	out["step_width_std"] = std
	out["step_width_range"] = max - min
	return out, nil
}

// symmetryFeatures is the extractor-local simplified symmetry variant: the
// relative-difference index over left/right displacement-magnitude series
// for each symmetric pair. The SymmetryReport carries the full four-family
// analysis; this group exists so the flat feature mapping is self-contained.
func (ex *extractor) symmetryFeatures() (map[string]float64, error) {
	pa := ex.pa
	if pa.Frames < 2 {
		return nil, nil
	}
	out := make(map[string]float64)
	for _, p := range ex.cfg.Layout.Pairs() {
		if p.Left >= pa.Landmarks || p.Right >= pa.Landmarks {
			continue
		}
		out[p.Name+"_symmetry_index"] = relDiffIndex(ex.speedSeries(p.Left), ex.speedSeries(p.Right))
	}
	return out, nil
}

// speedSeries is the displacement-magnitude series of one landmark.
func (ex *extractor) speedSeries(k int) []float64 {
	pa := ex.pa
	xs := make([]float64, pa.Frames)
	ys := make([]float64, pa.Frames)
	for f := 0; f < pa.Frames; f++ {
		xs[f] = pa.X(f, k)
		ys[f] = pa.Y(f, k)
	}
	return magnitudes(diffPairs(xs, ys))
}

// stabilityFeatures reports the center-of-mass speed variability and, for
// near-stationary sequences, the postural sway area (convex hull of the COM
// trajectory, bounding box when the hull degenerates).
func (ex *extractor) stabilityFeatures() (map[string]float64, error) {
	xs, ys := ex.pa.CenterOfMass()
	dxs, dys := diffPairs(xs, ys)
	disp := magnitudes(dxs, dys)
	if len(disp) == 0 {
		return nil, nil
	}

	mean, std, _, _ := seriesStats(disp)
	out := map[string]float64{"com_speed_mean": mean}
	if mean > 0 {
		out["stability_index"] = std / mean
	} else {
		out["stability_index"] = 0
	}

	if mean < ex.cfg.StationarySpeedMax {
		area := convexHullArea(xs, ys)
		if area == 0 {
			area = boundingBoxArea(xs, ys)
		}
		out["postural_sway_area"] = area
	}
	return out, nil
}
