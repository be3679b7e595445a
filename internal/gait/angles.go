package gait

import "math"

// verticalRefOffset is the synthetic reference point distance (image units)
// placed directly below the ankle for the ankle inclination angle.
const verticalRefOffset = 50.0

// jointAngleDegrees returns the angle at vertex (vx, vy) between the segments
// to (ax, ay) and (bx, by), in degrees. The cosine is clipped to [-1, 1] to
// absorb float rounding at collinear configurations. Returns 0 when either
// segment degenerates to a point.
func jointAngleDegrees(ax, ay, vx, vy, bx, by float64) float64 {
	ux, uy := ax-vx, ay-vy
	wx, wy := bx-vx, by-vy
	nu := math.Hypot(ux, uy)
	nw := math.Hypot(wx, wy)
	if nu == 0 || nw == 0 {
		return 0
	}
	cos := (ux*wx + uy*wy) / (nu * nw)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// jointAngleSeries computes the per-frame angle series for a joint triple.
// A frame contributes only when all three landmarks pass the confidence
// gate, so the series length is at most the frame count.
func (pa *PoseArray) jointAngleSeries(t JointTriple, gate func(conf float64) bool) []float64 {
	var out []float64
	for f := 0; f < pa.Frames; f++ {
		if !gate(pa.Conf(f, t.A)) || !gate(pa.Conf(f, t.Vertex)) || !gate(pa.Conf(f, t.B)) {
			continue
		}
		ax, ay, _ := pa.At(f, t.A)
		vx, vy, _ := pa.At(f, t.Vertex)
		bx, by, _ := pa.At(f, t.B)
		out = append(out, jointAngleDegrees(ax, ay, vx, vy, bx, by))
	}
	return out
}

// ankleAngleSeries approximates the shank's inclination from vertical: the
// angle at the ankle between the knee and a synthetic point 50 units below
// the ankle. This is not a true anatomical ankle angle; layouts without heel
// and toe landmarks have nothing better to offer.
func (pa *PoseArray) ankleAngleSeries(knee, ankle int, gate func(conf float64) bool) []float64 {
	var out []float64
	for f := 0; f < pa.Frames; f++ {
		if !gate(pa.Conf(f, knee)) || !gate(pa.Conf(f, ankle)) {
			continue
		}
		kx, ky, _ := pa.At(f, knee)
		axp, ayp, _ := pa.At(f, ankle)
		out = append(out, jointAngleDegrees(kx, ky, axp, ayp, axp, ayp+verticalRefOffset))
	}
	return out
}

// gateNonZero admits landmarks with any recorded confidence.
func gateNonZero(c float64) bool { return c > 0 }

// gateAtLeast returns a gate admitting confidences at or above min.
func gateAtLeast(min float64) func(float64) bool {
	return func(c float64) bool { return c >= min }
}
