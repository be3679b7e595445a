package gait

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// epsilon stabilizes every relative-difference denominator in the pipeline.
const epsilon = 1e-8

// seriesStats aggregates a series to mean, population standard deviation,
// min and max. Returns zeros for an empty series.
func seriesStats(v []float64) (mean, std, min, max float64) {
	if len(v) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(v, nil)
	std = popStd(v, mean)
	return mean, std, floats.Min(v), floats.Max(v)
}

// popStd is the population standard deviation (divide by n, not n-1),
// matching how the per-frame statistics are defined throughout the pipeline.
func popStd(v []float64, mean float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var ss float64
	for _, x := range v {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(v)))
}

// diffPairs returns the first finite difference of a 2D point series.
func diffPairs(xs, ys []float64) (dxs, dys []float64) {
	if len(xs) < 2 {
		return nil, nil
	}
	dxs = make([]float64, len(xs)-1)
	dys = make([]float64, len(ys)-1)
	for i := 1; i < len(xs); i++ {
		dxs[i-1] = xs[i] - xs[i-1]
		dys[i-1] = ys[i] - ys[i-1]
	}
	return dxs, dys
}

// magnitudes returns the per-sample Euclidean magnitude of a 2D series.
func magnitudes(dxs, dys []float64) []float64 {
	out := make([]float64, len(dxs))
	for i := range dxs {
		out[i] = math.Hypot(dxs[i], dys[i])
	}
	return out
}

// relDiffIndex is the shared symmetry formula: mean(|L-R| / (L+R+epsilon))
// over the common prefix of the two series. Returns 0 when either is empty.
func relDiffIndex(left, right []float64) float64 {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(left[i]-right[i]) / (left[i] + right[i] + epsilon)
	}
	return sum / float64(n)
}

// relDiffScalar applies the symmetry formula to a single left/right value.
func relDiffScalar(left, right float64) float64 {
	return math.Abs(left-right) / (left + right + epsilon)
}

// percentile returns the p-quantile (p in [0,1]) of the series using the
// empirical CDF. The input is not modified.
func percentile(v []float64, p float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// crossCorrelate computes the full discrete cross-correlation of a and b:
// out[k] = sum_i a[i] * b[i - (k - (len(b)-1))], k in [0, len(a)+len(b)-2].
// Index len(b)-1 corresponds to zero lag.
func crossCorrelate(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for k := range out {
		lag := k - (len(b) - 1)
		var sum float64
		for i := range a {
			j := i - lag
			if j >= 0 && j < len(b) {
				sum += a[i] * b[j]
			}
		}
		out[k] = sum
	}
	return out
}

// argmax returns the index of the maximum value, -1 for an empty series.
func argmax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
