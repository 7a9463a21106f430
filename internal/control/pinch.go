package control

// PinchState is the current state of the pinch gesture machine.
type PinchState string

const (
	// PinchReleased is the initial and rest state.
	PinchReleased PinchState = "released"
	// PinchPressed means the button is logically held down.
	PinchPressed PinchState = "pressed"
)

// PinchDetector turns the continuous thumb-to-index pinch distance into
// discrete button press and release events. Hysteresis (distinct press and
// release thresholds) prevents chatter at the boundary, and both
// transitions are debounced over consecutive frames. One instance tracks
// one hand for the process lifetime.
type PinchDetector struct {
	press    float64
	release  float64
	debounce int

	state      PinchState
	belowCount int
	aboveCount int
}

// NewPinchDetector creates a detector from a validated config.
func NewPinchDetector(cfg Config) *PinchDetector {
	return &PinchDetector{
		press:    cfg.PressThreshold,
		release:  cfg.ReleaseThreshold,
		debounce: cfg.DebounceFrames,
		state:    PinchReleased,
	}
}

// State returns the current machine state.
func (d *PinchDetector) State() PinchState {
	return d.state
}

// Observe feeds one frame's normalized pinch distance. It returns a button
// intent and true when a transition fires this frame.
//
// Thresholds use strict inequality: a distance exactly at the threshold
// counts as not yet crossed.
func (d *PinchDetector) Observe(dist float64) (PointerIntent, bool) {
	switch d.state {
	case PinchReleased:
		if dist < d.press {
			d.belowCount++
		} else {
			d.belowCount = 0
		}
		if d.belowCount >= d.debounce {
			d.state = PinchPressed
			d.belowCount = 0
			d.aboveCount = 0
			return ButtonDownIntent(ButtonLeft), true
		}

	case PinchPressed:
		if dist > d.release {
			d.aboveCount++
		} else {
			d.aboveCount = 0
		}
		if d.aboveCount >= d.debounce {
			d.state = PinchReleased
			d.belowCount = 0
			d.aboveCount = 0
			return ButtonUpIntent(ButtonLeft), true
		}
	}

	return PointerIntent{}, false
}

// HandLost handles a frame with no usable hand. Losing tracking while
// pressed releases the button immediately, without debounce, so the OS
// pointer is never left in a stuck-down state.
func (d *PinchDetector) HandLost() (PointerIntent, bool) {
	d.belowCount = 0
	d.aboveCount = 0
	if d.state == PinchPressed {
		d.state = PinchReleased
		return ButtonUpIntent(ButtonLeft), true
	}
	return PointerIntent{}, false
}
