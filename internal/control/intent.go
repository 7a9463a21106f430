// Package control turns per-frame hand landmarks into smoothed, screen-mapped
// pointer movement and debounced click events.
package control

// Button identifies a pointer button.
type Button string

// ButtonLeft is the primary pointer button driven by the pinch gesture.
const ButtonLeft Button = "left"

// IntentType distinguishes the pointer intents produced by the control loop.
type IntentType string

const (
	// IntentMove moves the pointer to an absolute screen position.
	IntentMove IntentType = "move"
	// IntentButtonDown presses a pointer button.
	IntentButtonDown IntentType = "button_down"
	// IntentButtonUp releases a pointer button.
	IntentButtonUp IntentType = "button_up"
)

// PointerIntent is one output event of the control loop, consumed
// immediately by the injection backend and never persisted.
type PointerIntent struct {
	Type   IntentType `json:"type"`
	X      int        `json:"x,omitempty"`
	Y      int        `json:"y,omitempty"`
	Button Button     `json:"button,omitempty"`
}

// MoveIntent returns a pointer move intent for the given screen position.
func MoveIntent(x, y int) PointerIntent {
	return PointerIntent{Type: IntentMove, X: x, Y: y}
}

// ButtonDownIntent returns a press intent for the given button.
func ButtonDownIntent(b Button) PointerIntent {
	return PointerIntent{Type: IntentButtonDown, Button: b}
}

// ButtonUpIntent returns a release intent for the given button.
func ButtonUpIntent(b Button) PointerIntent {
	return PointerIntent{Type: IntentButtonUp, Button: b}
}
