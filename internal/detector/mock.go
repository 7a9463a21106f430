package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It can return a fixed result for every frame, or play back a queued
// sequence of per-frame results (including empty frames for "no hand").
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	queue [][]HandLandmarks
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands returned by Detect once the queue is drained.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// QueueFrames appends per-frame results that Detect will play back in
// order before falling through to the fixed result. A nil or empty entry
// simulates a frame with no hand detected.
func (m *MockDetector) QueueFrames(frames ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, frames...)
}

// Detect returns the next queued frame, or the fixed hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// HandAt returns a synthetic right hand whose middle-finger MCP sits at
// (cx, cy) in normalized image coordinates. The wrist is placed so the
// scale reference is exactly 0.15, and the thumb and index tips are
// separated so that PinchDistance reports exactly pinch.
func HandAt(cx, cy, pinch float64) HandLandmarks {
	const ref = 0.15

	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: cx, Y: cy + ref, Z: 0}
	hand.Points[MiddleMCP] = Point3D{X: cx, Y: cy, Z: 0}

	// Thumb and index tips pinch toward each other above the palm.
	gap := pinch * ref / 2
	hand.Points[ThumbTip] = Point3D{X: cx - gap, Y: cy - 0.1, Z: 0}
	hand.Points[IndexTip] = Point3D{X: cx + gap, Y: cy - 0.1, Z: 0}

	// Remaining joints get plausible resting positions around the palm.
	hand.Points[ThumbCMC] = Point3D{X: cx - 0.05, Y: cy + 0.1, Z: 0}
	hand.Points[ThumbMCP] = Point3D{X: cx - 0.06, Y: cy + 0.05, Z: 0}
	hand.Points[ThumbIP] = Point3D{X: cx - gap - 0.02, Y: cy - 0.05, Z: 0}
	hand.Points[IndexMCP] = Point3D{X: cx + 0.04, Y: cy + 0.01, Z: 0}
	hand.Points[IndexPIP] = Point3D{X: cx + 0.045, Y: cy - 0.04, Z: 0}
	hand.Points[IndexDIP] = Point3D{X: cx + gap + 0.01, Y: cy - 0.07, Z: 0}
	hand.Points[MiddlePIP] = Point3D{X: cx, Y: cy - 0.05, Z: 0}
	hand.Points[MiddleDIP] = Point3D{X: cx, Y: cy - 0.1, Z: 0}
	hand.Points[MiddleTip] = Point3D{X: cx, Y: cy - 0.14, Z: 0}
	hand.Points[RingMCP] = Point3D{X: cx - 0.04, Y: cy + 0.01, Z: 0}
	hand.Points[RingPIP] = Point3D{X: cx - 0.045, Y: cy - 0.04, Z: 0}
	hand.Points[RingDIP] = Point3D{X: cx - 0.05, Y: cy - 0.08, Z: 0}
	hand.Points[RingTip] = Point3D{X: cx - 0.05, Y: cy - 0.11, Z: 0}
	hand.Points[PinkyMCP] = Point3D{X: cx - 0.07, Y: cy + 0.03, Z: 0}
	hand.Points[PinkyPIP] = Point3D{X: cx - 0.08, Y: cy - 0.01, Z: 0}
	hand.Points[PinkyDIP] = Point3D{X: cx - 0.085, Y: cy - 0.04, Z: 0}
	hand.Points[PinkyTip] = Point3D{X: cx - 0.09, Y: cy - 0.06, Z: 0}

	return hand
}

// OpenHand returns a relaxed open hand centered at (cx, cy); its pinch
// distance is 1.0, well above any sensible press threshold.
func OpenHand(cx, cy float64) HandLandmarks {
	return HandAt(cx, cy, 1.0)
}

// PinchedHand returns a hand centered at (cx, cy) with thumb and index
// tips pinched together; its pinch distance is 0.2.
func PinchedHand(cx, cy float64) HandLandmarks {
	return HandAt(cx, cy, 0.2)
}
