package gait

// LandmarkRecord is one tracked body point in one frame, as delivered by the
// upstream pose-estimation component. Missing fields decode to zero.
type LandmarkRecord struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// FrameRecord is the loosely-structured per-frame input: a frame may carry a
// full landmark list, a short one, or none at all.
type FrameRecord struct {
	Landmarks []LandmarkRecord `json:"landmarks"`
}

// PoseArray is the dense [frame, landmark, (x, y, confidence)] structure all
// analyzers consume. It is constructed once from the raw sequence and is
// read-only thereafter, so a single array may be shared across concurrently
// running analyzers without synchronization.
type PoseArray struct {
	Frames    int
	Landmarks int
	data      []float64 // flat, frame-major: (f*Landmarks + k)*3 + channel
}

// NewPoseArray converts a raw frame sequence into a dense PoseArray.
//
// The landmark count is fixed by the first frame that has a non-empty
// landmark list. Frames with missing or short landmark lists are zero-filled
// (x=0, y=0, confidence=0); confidence gating downstream treats those entries
// as absent. Returns nil if the sequence is empty or no frame has landmarks.
func NewPoseArray(frames []FrameRecord) *PoseArray {
	if len(frames) == 0 {
		return nil
	}

	landmarks := 0
	for _, f := range frames {
		if len(f.Landmarks) > 0 {
			landmarks = len(f.Landmarks)
			break
		}
	}
	if landmarks == 0 {
		return nil
	}

	pa := &PoseArray{
		Frames:    len(frames),
		Landmarks: landmarks,
		data:      make([]float64, len(frames)*landmarks*3),
	}
	for fi, f := range frames {
		n := len(f.Landmarks)
		if n > landmarks {
			n = landmarks
		}
		for ki := 0; ki < n; ki++ {
			base := (fi*landmarks + ki) * 3
			pa.data[base] = f.Landmarks[ki].X
			pa.data[base+1] = f.Landmarks[ki].Y
			pa.data[base+2] = f.Landmarks[ki].Confidence
		}
	}
	return pa
}

// At returns the x, y and confidence channels for landmark k of frame f.
func (pa *PoseArray) At(f, k int) (x, y, conf float64) {
	base := (f*pa.Landmarks + k) * 3
	return pa.data[base], pa.data[base+1], pa.data[base+2]
}

// X returns the x channel for landmark k of frame f.
func (pa *PoseArray) X(f, k int) float64 {
	return pa.data[(f*pa.Landmarks+k)*3]
}

// Y returns the y channel for landmark k of frame f.
func (pa *PoseArray) Y(f, k int) float64 {
	return pa.data[(f*pa.Landmarks+k)*3+1]
}

// Conf returns the confidence channel for landmark k of frame f.
func (pa *PoseArray) Conf(f, k int) float64 {
	return pa.data[(f*pa.Landmarks+k)*3+2]
}

// YSeries returns the vertical position series of landmark k across all
// frames as a fresh slice.
func (pa *PoseArray) YSeries(k int) []float64 {
	out := make([]float64, pa.Frames)
	for f := 0; f < pa.Frames; f++ {
		out[f] = pa.Y(f, k)
	}
	return out
}

// CenterOfMass returns the per-frame mean (x, y) over all landmarks.
func (pa *PoseArray) CenterOfMass() (xs, ys []float64) {
	xs = make([]float64, pa.Frames)
	ys = make([]float64, pa.Frames)
	inv := 1.0 / float64(pa.Landmarks)
	for f := 0; f < pa.Frames; f++ {
		var sx, sy float64
		for k := 0; k < pa.Landmarks; k++ {
			sx += pa.X(f, k)
			sy += pa.Y(f, k)
		}
		xs[f] = sx * inv
		ys[f] = sy * inv
	}
	return xs, ys
}
