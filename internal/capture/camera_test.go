package capture

import (
	"errors"
	"testing"
)

func TestNewCamera(t *testing.T) {
	cam := NewCamera(0)
	if cam == nil {
		t.Fatal("NewCamera returned nil")
	}

	if cam.IsOpen() {
		t.Error("camera should not be open before Open()")
	}
	if got := cam.FPS(); got != DefaultFPS {
		t.Errorf("FPS() = %d, want %d", got, DefaultFPS)
	}
}

func TestNewV4L2Camera(t *testing.T) {
	cam := NewV4L2Camera("/dev/video0")
	if cam == nil {
		t.Fatal("NewV4L2Camera returned nil")
	}

	impl, ok := cam.(*cameraImpl)
	if !ok {
		t.Fatalf("NewV4L2Camera returned %T, want *cameraImpl", cam)
	}
	if impl.device != "/dev/video0" {
		t.Errorf("device = %v, want /dev/video0", impl.device)
	}
}

func TestCamera_ReadBeforeOpen(t *testing.T) {
	cam := NewCamera(0)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestCamera_CloseWithoutOpen(t *testing.T) {
	cam := NewCamera(0)

	if err := cam.Close(); err != nil {
		t.Errorf("Close() on unopened camera error = %v", err)
	}
	if cam.IsOpen() {
		t.Error("camera should not be open after Close()")
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(0)

	cam.SetFPS(30)
	if got := cam.FPS(); got != 30 {
		t.Errorf("FPS() = %d, want 30", got)
	}

	// Non-positive values are ignored
	cam.SetFPS(-1)
	if got := cam.FPS(); got != 30 {
		t.Errorf("FPS() after SetFPS(-1) = %d, want 30", got)
	}
}
