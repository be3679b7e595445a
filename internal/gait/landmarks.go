package gait

import "fmt"

// LandmarkLayout identifies which pose-estimation landmark scheme produced a
// sequence. The numeric value equals the landmark count of the scheme.
type LandmarkLayout int

const (
	// Layout17 is the 17-point COCO keypoint scheme.
	Layout17 LandmarkLayout = 17
	// Layout25 is the 25-point OpenPose BODY_25 scheme.
	Layout25 LandmarkLayout = 25
	// Layout33 is the 33-point MediaPipe Pose scheme.
	Layout33 LandmarkLayout = 33
)

// String returns a human-readable layout name.
func (l LandmarkLayout) String() string {
	switch l {
	case Layout17:
		return "coco_17"
	case Layout25:
		return "body_25"
	case Layout33:
		return "mediapipe_33"
	default:
		return fmt.Sprintf("unknown_%d", int(l))
	}
}

// Valid reports whether the layout is one of the supported schemes.
func (l LandmarkLayout) Valid() bool {
	switch l {
	case Layout17, Layout25, Layout33:
		return true
	}
	return false
}

// SymmetricPair names a left/right landmark pair and carries the resolved
// indices for the owning layout.
type SymmetricPair struct {
	Name  string // e.g. "knee"
	Left  int
	Right int
}

// JointTriple defines a joint angle as three resolved landmark indices:
// the angle is measured at Vertex between the A-Vertex and B-Vertex segments.
type JointTriple struct {
	Name   string // e.g. "left_knee_angle"
	A      int
	Vertex int
	B      int
}

// layoutSpec is the immutable per-layout registry entry: the name->index
// mapping, the symmetric pairs, and the joint-angle triples.
type layoutSpec struct {
	names  []string
	index  map[string]int
	pairs  []SymmetricPair
	joints []JointTriple
}

// coco17Names lists the COCO keypoints in model output order.
var coco17Names = []string{
	"nose", "left_eye", "right_eye", "left_ear", "right_ear",
	"left_shoulder", "right_shoulder", "left_elbow", "right_elbow",
	"left_wrist", "right_wrist", "left_hip", "right_hip",
	"left_knee", "right_knee", "left_ankle", "right_ankle",
}

// body25Names lists the OpenPose BODY_25 keypoints in model output order.
var body25Names = []string{
	"nose", "neck", "right_shoulder", "right_elbow", "right_wrist",
	"left_shoulder", "left_elbow", "left_wrist", "mid_hip",
	"right_hip", "right_knee", "right_ankle",
	"left_hip", "left_knee", "left_ankle",
	"right_eye", "left_eye", "right_ear", "left_ear",
	"left_big_toe", "left_small_toe", "left_heel",
	"right_big_toe", "right_small_toe", "right_heel",
}

// mediapipe33Names lists the MediaPipe Pose keypoints in model output order.
var mediapipe33Names = []string{
	"nose", "left_eye_inner", "left_eye", "left_eye_outer",
	"right_eye_inner", "right_eye", "right_eye_outer",
	"left_ear", "right_ear", "mouth_left", "mouth_right",
	"left_shoulder", "right_shoulder", "left_elbow", "right_elbow",
	"left_wrist", "right_wrist", "left_pinky", "right_pinky",
	"left_index", "right_index", "left_thumb", "right_thumb",
	"left_hip", "right_hip", "left_knee", "right_knee",
	"left_ankle", "right_ankle", "left_heel", "right_heel",
	"left_foot_index", "right_foot_index",
}

// gaitPairNames are the left/right pairs compared by the symmetry analyzers.
// Only pairs present in a layout's name table are registered for that layout.
var gaitPairNames = []string{
	"shoulder", "elbow", "wrist", "hip", "knee", "ankle", "heel",
	"big_toe", "foot_index",
}

// layouts is the precomputed registry, built once at package init.
// The per-layout specs are never mutated after construction.
var layouts = map[LandmarkLayout]*layoutSpec{
	Layout17: buildLayoutSpec(coco17Names),
	Layout25: buildLayoutSpec(body25Names),
	Layout33: buildLayoutSpec(mediapipe33Names),
}

func buildLayoutSpec(names []string) *layoutSpec {
	spec := &layoutSpec{
		names: names,
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		spec.index[n] = i
	}

	for _, base := range gaitPairNames {
		li, lok := spec.index["left_"+base]
		ri, rok := spec.index["right_"+base]
		if lok && rok {
			spec.pairs = append(spec.pairs, SymmetricPair{Name: base, Left: li, Right: ri})
		}
	}

	for _, side := range []string{"left", "right"} {
		if j, ok := spec.triple(side+"_knee_angle", side+"_hip", side+"_knee", side+"_ankle"); ok {
			spec.joints = append(spec.joints, j)
		}
		if j, ok := spec.triple(side+"_hip_angle", side+"_shoulder", side+"_hip", side+"_knee"); ok {
			spec.joints = append(spec.joints, j)
		}
		// Foot angle needs heel and toe landmarks; only the 25- and 33-point
		// schemes expose them (under different names).
		for _, toe := range []string{side + "_big_toe", side + "_foot_index"} {
			if j, ok := spec.triple(side+"_foot_angle", side+"_ankle", side+"_heel", toe); ok {
				spec.joints = append(spec.joints, j)
				break
			}
		}
	}
	return spec
}

func (s *layoutSpec) triple(name, a, vertex, b string) (JointTriple, bool) {
	ai, ok1 := s.index[a]
	vi, ok2 := s.index[vertex]
	bi, ok3 := s.index[b]
	if !ok1 || !ok2 || !ok3 {
		return JointTriple{}, false
	}
	return JointTriple{Name: name, A: ai, Vertex: vi, B: bi}, true
}

// Index returns the positional index of a named landmark within the layout.
func (l LandmarkLayout) Index(name string) (int, bool) {
	spec, ok := layouts[l]
	if !ok {
		return 0, false
	}
	i, ok := spec.index[name]
	return i, ok
}

// Count returns the number of landmarks in the layout, or 0 if unsupported.
func (l LandmarkLayout) Count() int {
	if _, ok := layouts[l]; !ok {
		return 0
	}
	return int(l)
}

// Pairs returns the symmetric left/right landmark pairs for the layout.
// The returned slice is shared and must not be modified.
func (l LandmarkLayout) Pairs() []SymmetricPair {
	spec, ok := layouts[l]
	if !ok {
		return nil
	}
	return spec.pairs
}

// Joints returns the joint-angle triples defined for the layout.
// The returned slice is shared and must not be modified.
func (l LandmarkLayout) Joints() []JointTriple {
	spec, ok := layouts[l]
	if !ok {
		return nil
	}
	return spec.joints
}

// LayoutFromCount maps a per-frame landmark count to its layout, for callers
// that receive raw sequences without an explicit layout selector.
func LayoutFromCount(n int) (LandmarkLayout, bool) {
	l := LandmarkLayout(n)
	return l, l.Valid()
}
