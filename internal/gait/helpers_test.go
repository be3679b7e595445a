package gait

import "math"

// uniformFrames builds a synthetic sequence by evaluating fn for every
// frame/landmark slot.
func uniformFrames(frames, landmarks int, fn func(f, k int) (x, y, conf float64)) []FrameRecord {
	out := make([]FrameRecord, frames)
	for f := range out {
		lms := make([]LandmarkRecord, landmarks)
		for k := range lms {
			x, y, c := fn(f, k)
			lms[k] = LandmarkRecord{X: x, Y: y, Confidence: c}
		}
		out[f] = FrameRecord{Landmarks: lms}
	}
	return out
}

// walkingFrames builds a 17-landmark sequence of a static upper body with
// both ankles tracing vertical sinusoids of the given period (frames),
// 180 degrees out of phase and equal amplitude. The phase is chosen so each
// ankle's first vertical minimum lands past the default minimum cycle
// distance from the start.
func walkingFrames(frames, period int, amplitude float64) []FrameRecord {
	leftAnkle, _ := Layout17.Index("left_ankle")
	rightAnkle, _ := Layout17.Index("right_ankle")
	omega := 2 * math.Pi / float64(period)
	phase := 3*math.Pi/2 - 13*omega // left ankle minimum near frame 13

	return uniformFrames(frames, Layout17.Count(), func(f, k int) (float64, float64, float64) {
		x, y := baselinePosition(k)
		switch k {
		case leftAnkle:
			y += amplitude * math.Sin(omega*float64(f)+phase)
		case rightAnkle:
			y -= amplitude * math.Sin(omega*float64(f)+phase)
		}
		return x, y, 0.9
	})
}

// baselinePosition places the 17 COCO landmarks in a plausible standing
// posture, symmetric about x=500.
func baselinePosition(k int) (x, y float64) {
	switch coco17Names[k] {
	case "nose":
		return 500, 100
	case "left_eye":
		return 510, 90
	case "right_eye":
		return 490, 90
	case "left_ear":
		return 520, 95
	case "right_ear":
		return 480, 95
	case "left_shoulder":
		return 540, 200
	case "right_shoulder":
		return 460, 200
	case "left_elbow":
		return 550, 280
	case "right_elbow":
		return 450, 280
	case "left_wrist":
		return 555, 360
	case "right_wrist":
		return 445, 360
	case "left_hip":
		return 530, 400
	case "right_hip":
		return 470, 400
	case "left_knee":
		return 540, 450
	case "right_knee":
		return 460, 450
	case "left_ankle":
		return 550, 500
	case "right_ankle":
		return 450, 500
	}
	return 500, 300
}
