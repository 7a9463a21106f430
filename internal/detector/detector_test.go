package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestHandLandmarks_ScaleReference(t *testing.T) {
	hand := HandLandmarks{}
	hand.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0}
	hand.Points[MiddleMCP] = Point3D{X: 0.5, Y: 0.6, Z: 0}

	if got := hand.ScaleReference(); math.Abs(got-0.2) > epsilon {
		t.Errorf("ScaleReference() = %f, want 0.2", got)
	}
}

func TestHandLandmarks_PinchDistance(t *testing.T) {
	tests := []struct {
		name      string
		thumbTip  Point3D
		indexTip  Point3D
		wrist     Point3D
		middleMCP Point3D
		want      float64
		wantOK    bool
	}{
		{
			name:      "tips apart by one hand scale",
			thumbTip:  Point3D{X: 0.4, Y: 0.5},
			indexTip:  Point3D{X: 0.6, Y: 0.5},
			wrist:     Point3D{X: 0.5, Y: 0.9},
			middleMCP: Point3D{X: 0.5, Y: 0.7},
			want:      1.0,
			wantOK:    true,
		},
		{
			name:      "tips touching",
			thumbTip:  Point3D{X: 0.5, Y: 0.5},
			indexTip:  Point3D{X: 0.5, Y: 0.5},
			wrist:     Point3D{X: 0.5, Y: 0.9},
			middleMCP: Point3D{X: 0.5, Y: 0.7},
			want:      0.0,
			wantOK:    true,
		},
		{
			name:      "degenerate hand scale",
			thumbTip:  Point3D{X: 0.4, Y: 0.5},
			indexTip:  Point3D{X: 0.6, Y: 0.5},
			wrist:     Point3D{X: 0.5, Y: 0.7},
			middleMCP: Point3D{X: 0.5, Y: 0.7},
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := HandLandmarks{}
			hand.Points[ThumbTip] = tt.thumbTip
			hand.Points[IndexTip] = tt.indexTip
			hand.Points[Wrist] = tt.wrist
			hand.Points[MiddleMCP] = tt.middleMCP

			got, ok := hand.PinchDistance()
			if ok != tt.wantOK {
				t.Fatalf("PinchDistance() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > epsilon {
				t.Errorf("PinchDistance() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestHandAt_PinchDistanceMatchesRequest(t *testing.T) {
	for _, pinch := range []float64{0.1, 0.2, 0.5, 1.0} {
		hand := HandAt(0.5, 0.5, pinch)
		got, ok := hand.PinchDistance()
		if !ok {
			t.Fatalf("HandAt(%f) produced degenerate hand scale", pinch)
		}
		if math.Abs(got-pinch) > 1e-6 {
			t.Errorf("HandAt(%f) pinch distance = %f", pinch, got)
		}
	}
}

func TestHandAt_ControlPointPlacement(t *testing.T) {
	hand := HandAt(0.3, 0.7, 0.5)
	cp := hand.Points[MiddleMCP]
	if math.Abs(cp.X-0.3) > epsilon || math.Abs(cp.Y-0.7) > epsilon {
		t.Errorf("control point = (%f, %f), want (0.3, 0.7)", cp.X, cp.Y)
	}
}

func TestMockDetector_QueuePlayback(t *testing.T) {
	mock := NewMockDetector()
	mock.SetHands([]HandLandmarks{OpenHand(0.5, 0.5)})
	mock.QueueFrames(
		[]HandLandmarks{PinchedHand(0.4, 0.4)},
		nil, // a frame with no hand
	)

	hands, err := mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("first frame: got %d hands, want 1", len(hands))
	}
	if d, _ := hands[0].PinchDistance(); math.Abs(d-0.2) > 1e-6 {
		t.Errorf("first frame pinch distance = %f, want 0.2", d)
	}

	hands, err = mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("second frame: got %d hands, want 0", len(hands))
	}

	// Queue drained; falls back to the fixed result.
	hands, _ = mock.Detect(nil)
	if len(hands) != 1 {
		t.Errorf("after queue: got %d hands, want 1", len(hands))
	}
}

func TestMockDetector_Error(t *testing.T) {
	mock := NewMockDetector()
	wantErr := errors.New("camera unplugged")
	mock.SetError(wantErr)

	if _, err := mock.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}
