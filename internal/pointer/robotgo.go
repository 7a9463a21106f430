package pointer

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/ayusman/mudra/internal/control"
)

// RobotgoInjector drives the real OS pointer through robotgo.
type RobotgoInjector struct{}

// NewRobotgoInjector creates the default pointer injection backend.
func NewRobotgoInjector() *RobotgoInjector {
	return &RobotgoInjector{}
}

// Move positions the cursor at the given absolute screen coordinates.
func (r *RobotgoInjector) Move(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// ButtonDown presses the given pointer button.
func (r *RobotgoInjector) ButtonDown(button control.Button) error {
	if err := robotgo.Toggle(string(button), "down"); err != nil {
		return fmt.Errorf("press %s button: %w", button, err)
	}
	return nil
}

// ButtonUp releases the given pointer button.
func (r *RobotgoInjector) ButtonUp(button control.Button) error {
	if err := robotgo.Toggle(string(button), "up"); err != nil {
		return fmt.Errorf("release %s button: %w", button, err)
	}
	return nil
}

// DetectScreen queries the primary display size from the OS.
func DetectScreen() (ScreenGeometry, error) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return ScreenGeometry{}, fmt.Errorf("could not determine screen size (got %dx%d)", w, h)
	}
	return ScreenGeometry{Width: w, Height: h}, nil
}
