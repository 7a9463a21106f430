// Package detector provides hand landmark detection interfaces and types
// for pointer control.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a single landmark position in normalized image
// coordinates. X and Y are in [0,1]; Z is relative depth from the camera.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for one hand
// in a single frame. Instances are immutable once produced by a detector.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// distance3D calculates the Euclidean distance between two 3D points.
func distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ScaleReference returns the wrist to middle-finger MCP distance, used to
// normalize distances against hand size and distance from the camera.
func (h *HandLandmarks) ScaleReference() float64 {
	return distance3D(h.Points[Wrist], h.Points[MiddleMCP])
}

// PinchDistance returns the thumb-tip to index-tip distance divided by the
// hand scale reference. The second return value is false when the scale
// reference is degenerate (all landmarks collapsed to a point), in which
// case the frame carries no usable pinch signal.
func (h *HandLandmarks) PinchDistance() (float64, bool) {
	ref := h.ScaleReference()
	if ref < 1e-10 {
		return 0, false
	}
	return distance3D(h.Points[ThumbTip], h.Points[IndexTip]) / ref, true
}
