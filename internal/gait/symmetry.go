package gait

import (
	"log"
	"math"

	"gonum.org/v1/gonum/stat"
)

// minPhaseSamples is the shortest series pair the cross-correlation phase
// estimate will accept; shorter inputs report a phase difference of 0.
const minPhaseSamples = 10

// Symmetry classification labels.
const (
	ClassSymmetric            = "symmetric"
	ClassMildlyAsymmetric     = "mildly_asymmetric"
	ClassModeratelyAsymmetric = "moderately_asymmetric"
	ClassSeverelyAsymmetric   = "severely_asymmetric"
)

// symmetryAnalyzer bundles the immutable inputs shared by the metric
// families.
type symmetryAnalyzer struct {
	pa      *PoseArray
	cfg     AnalysisConfig
	centerX float64
	centerY float64
}

// AnalyzeSymmetry computes the four left/right symmetry metric families
// (positional, movement, temporal, angular) and the overall classification.
// Degenerate input yields an empty report; family failures are recorded in
// Errors while the remaining families still complete.
func AnalyzeSymmetry(pa *PoseArray, cfg AnalysisConfig) *SymmetryReport {
	report := &SymmetryReport{
		RunID:   newRunID(),
		Indices: make(map[string]float64),
	}
	if pa == nil || pa.Frames == 0 {
		return report
	}
	if !cfg.Layout.Valid() {
		log.Printf("gait: unsupported landmark layout %d, skipping symmetry analysis", int(cfg.Layout))
		return report
	}

	sa := &symmetryAnalyzer{pa: pa, cfg: cfg}
	sa.centerX, sa.centerY = sa.bodyCenterLine()

	groups := []struct {
		name string
		fn   func() (map[string]float64, error)
	}{
		{"positional", sa.positionalSymmetry},
		{"movement", sa.movementSymmetry},
		{"temporal", sa.temporalSymmetry},
		{"angular", sa.angularSymmetry},
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
			report.Indices[k] = v
		}
	}

	sa.summarize(report)
	return report
}

// bodyCenterLine averages the shoulder-pair and hip-pair midpoints across
// frames where both pair members clear the confidence threshold. With no
// valid frame at all it falls back to the configured frame center.
func (sa *symmetryAnalyzer) bodyCenterLine() (cx, cy float64) {
	pa, cfg := sa.pa, sa.cfg
	gate := cfg.ConfidenceThreshold

	var sumX, sumY float64
	var count int
	for _, base := range []string{"shoulder", "hip"} {
		li, lok := cfg.Layout.Index("left_" + base)
		ri, rok := cfg.Layout.Index("right_" + base)
		if !lok || !rok || li >= pa.Landmarks || ri >= pa.Landmarks {
			continue
		}
		for f := 0; f < pa.Frames; f++ {
			if pa.Conf(f, li) < gate || pa.Conf(f, ri) < gate {
				continue
			}
			sumX += (pa.X(f, li) + pa.X(f, ri)) / 2
			sumY += (pa.Y(f, li) + pa.Y(f, ri)) / 2
			count++
		}
	}
	if count == 0 {
		return cfg.FrameWidth / 2, cfg.FrameHeight / 2
	}
	return sumX / float64(count), sumY / float64(count)
}

// pairedSeries collects, per symmetric pair, a per-frame value for each side
// over the frames where both sides clear the confidence threshold, so the
// two series stay index-aligned.
func (sa *symmetryAnalyzer) pairedSeries(p SymmetricPair, value func(f, k int) float64) (left, right []float64) {
	pa := sa.pa
	gate := sa.cfg.ConfidenceThreshold
	for f := 0; f < pa.Frames; f++ {
		if pa.Conf(f, p.Left) < gate || pa.Conf(f, p.Right) < gate {
			continue
		}
		left = append(left, value(f, p.Left))
		right = append(right, value(f, p.Right))
	}
	return left, right
}

// positionalSymmetry compares distance from the body center line, positional
// variance, and range of motion between matching left/right landmarks.
func (sa *symmetryAnalyzer) positionalSymmetry() (map[string]float64, error) {
	pa := sa.pa
	out := make(map[string]float64)
	for _, p := range sa.cfg.Layout.Pairs() {
		if p.Left >= pa.Landmarks || p.Right >= pa.Landmarks {
			continue
		}
		left, right := sa.pairedSeries(p, func(f, k int) float64 {
			return math.Hypot(pa.X(f, k)-sa.centerX, pa.Y(f, k)-sa.centerY)
		})
		if len(left) == 0 {
			continue
		}
		out[p.Name+"_position_symmetry_index"] = relDiffIndex(left, right)

		_, ls, lmin, lmax := seriesStats(left)
		_, rs, rmin, rmax := seriesStats(right)
		out[p.Name+"_variance_symmetry_index"] = relDiffScalar(ls*ls, rs*rs)
		out[p.Name+"_rom_symmetry_index"] = relDiffScalar(lmax-lmin, rmax-rmin)
	}
	return out, nil
}

// movementSymmetry compares velocity-magnitude series between sides: the
// shared relative-difference index, the Pearson correlation, and a phase
// difference from the cross-correlation peak lag.
func (sa *symmetryAnalyzer) movementSymmetry() (map[string]float64, error) {
	pa := sa.pa
	out := make(map[string]float64)
	ex := &extractor{pa: pa, cfg: sa.cfg}
	for _, p := range sa.cfg.Layout.Pairs() {
		if p.Left >= pa.Landmarks || p.Right >= pa.Landmarks {
			continue
		}
		left := ex.speedSeries(p.Left)
		right := ex.speedSeries(p.Right)
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		out[p.Name+"_velocity_symmetry_index"] = relDiffIndex(left, right)

		n := len(left)
		if len(right) < n {
			n = len(right)
		}
		if n >= 2 {
			// Constant series have no defined correlation; skip the NaN.
			if r := stat.Correlation(left[:n], right[:n], nil); !math.IsNaN(r) {
				out[p.Name+"_velocity_correlation"] = r
			}
		}
		out[p.Name+"_phase_difference"] = phaseDifference(left, right)
	}
	return out, nil
}

// phaseDifference estimates the lag between two series as the argmax of
// their full cross-correlation, offset by len(right)-1 and normalized by
// half the shorter series length. Series shorter than minPhaseSamples on
// either side report 0.
func phaseDifference(left, right []float64) float64 {
	if len(left) < minPhaseSamples || len(right) < minPhaseSamples {
		return 0
	}
	xc := crossCorrelate(left, right)
	lag := argmax(xc) - (len(right) - 1)
	shorter := len(left)
	if len(right) < shorter {
		shorter = len(right)
	}
	half := float64(shorter) / 2
	if half == 0 {
		return 0
	}
	return math.Abs(float64(lag)) / half
}

// temporalSymmetry runs a simple per-foot cycle detection (plain strict
// local minima of the ankle's vertical position, no window or spacing
// gating) and compares mean cycle duration and cycle frequency between feet.
func (sa *symmetryAnalyzer) temporalSymmetry() (map[string]float64, error) {
	pa := sa.pa
	li, lok := sa.cfg.Layout.Index("left_ankle")
	ri, rok := sa.cfg.Layout.Index("right_ankle")
	if !lok || !rok || li >= pa.Landmarks || ri >= pa.Landmarks {
		return nil, nil
	}

	minima := func(series []float64) []int {
		var out []int
		for i := 1; i < len(series)-1; i++ {
			if series[i] < series[i-1] && series[i] < series[i+1] {
				out = append(out, i)
			}
		}
		return out
	}
	meanGap := func(idx []int) float64 {
		if len(idx) < 2 {
			return 0
		}
		var sum float64
		for i := 1; i < len(idx); i++ {
			sum += float64(idx[i] - idx[i-1])
		}
		return sum / float64(len(idx)-1)
	}

	leftMin := minima(pa.YSeries(li))
	rightMin := minima(pa.YSeries(ri))

	out := make(map[string]float64)
	if lg, rg := meanGap(leftMin), meanGap(rightMin); lg > 0 || rg > 0 {
		out["cycle_duration_symmetry_index"] = relDiffScalar(lg, rg)
	}
	frames := float64(pa.Frames)
	out["cycle_frequency_symmetry_index"] = relDiffScalar(
		float64(len(leftMin))/frames, float64(len(rightMin))/frames)
	return out, nil
}

// angularSymmetry compares independently computed per-side knee and hip
// angle series, truncated to equal length, by the relative-difference index
// and by range of motion.
func (sa *symmetryAnalyzer) angularSymmetry() (map[string]float64, error) {
	pa := sa.pa
	gate := gateAtLeast(sa.cfg.ConfidenceThreshold)
	joints := make(map[string][]float64)
	for _, t := range sa.cfg.Layout.Joints() {
		if t.A >= pa.Landmarks || t.Vertex >= pa.Landmarks || t.B >= pa.Landmarks {
			continue
		}
		joints[t.Name] = pa.jointAngleSeries(t, gate)
	}

	out := make(map[string]float64)
	for _, base := range []string{"knee", "hip"} {
		left := joints["left_"+base+"_angle"]
		right := joints["right_"+base+"_angle"]
		n := len(left)
		if len(right) < n {
			n = len(right)
		}
		if n == 0 {
			continue
		}
		left, right = left[:n], right[:n]
		out[base+"_angle_symmetry_index"] = relDiffIndex(left, right)

		_, _, lmin, lmax := seriesStats(left)
		_, _, rmin, rmax := seriesStats(right)
		out[base+"_rom_symmetry_index"] = relDiffScalar(lmax-lmin, rmax-rmin)
	}
	return out, nil
}

// summarize aggregates every *_symmetry_index metric into the overall index,
// spread, exceedance counts, and the threshold-ladder classification.
func (sa *symmetryAnalyzer) summarize(report *SymmetryReport) {
	var indices []float64
	var exceeding int
	t := sa.cfg.SymmetryThreshold
	for name, v := range report.Indices {
		if !isSymmetryIndexKey(name) {
			continue
		}
		indices = append(indices, v)
		if v > t {
			exceeding++
		}
	}
	if len(indices) == 0 {
		return
	}

	mean, std, _, _ := seriesStats(indices)
	report.Indices["overall_symmetry_index"] = mean
	report.Indices["overall_symmetry_std"] = std
	report.Indices["asymmetric_index_count"] = float64(exceeding)
	report.Indices["asymmetric_index_pct"] = float64(exceeding) / float64(len(indices)) * 100
	report.Classification = ClassifySymmetry(mean, t)
}

// isSymmetryIndexKey reports whether a metric participates in the overall
// aggregate. The aggregate key itself never does.
func isSymmetryIndexKey(name string) bool {
	const suffix = "_symmetry_index"
	if name == "overall_symmetry_index" {
		return false
	}
	return len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix
}

// ClassifySymmetry maps an overall symmetry index to its label using the
// threshold ladder: below t symmetric, below 2t mild, below 3t moderate,
// otherwise severe.
func ClassifySymmetry(value, threshold float64) string {
	// Exact multiples of the threshold belong to the rung above; the
	// tolerance absorbs float64 rounding in k*threshold.
	tol := threshold * 1e-9
	switch {
	case value < threshold-tol:
		return ClassSymmetric
	case value < 2*threshold-tol:
		return ClassMildlyAsymmetric
	case value < 3*threshold-tol:
		return ClassModeratelyAsymmetric
	default:
		return ClassSeverelyAsymmetric
	}
}
