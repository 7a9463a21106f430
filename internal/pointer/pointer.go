// Package pointer provides the OS pointer injection backend that executes
// the intents produced by the control loop.
package pointer

import (
	"errors"
	"fmt"

	"github.com/ayusman/mudra/internal/control"
)

// ErrUnknownIntent is returned when an intent type is not recognized.
var ErrUnknownIntent = errors.New("unknown pointer intent")

// ScreenGeometry holds the screen size in pixels, read once at startup.
type ScreenGeometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Injector is the OS-level primitive that moves the cursor and synthesizes
// button events.
type Injector interface {
	// Move positions the cursor at the given absolute screen coordinates.
	Move(x, y int) error

	// ButtonDown presses the given pointer button.
	ButtonDown(button control.Button) error

	// ButtonUp releases the given pointer button.
	ButtonUp(button control.Button) error
}

// Dispatch executes a single intent against the injector.
func Dispatch(inj Injector, intent control.PointerIntent) error {
	switch intent.Type {
	case control.IntentMove:
		return inj.Move(intent.X, intent.Y)
	case control.IntentButtonDown:
		return inj.ButtonDown(intent.Button)
	case control.IntentButtonUp:
		return inj.ButtonUp(intent.Button)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, intent.Type)
	}
}
