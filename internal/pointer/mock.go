package pointer

import (
	"sync"

	"github.com/ayusman/mudra/internal/control"
)

// Recorder is a test Injector that records every intent it receives and
// tracks the logical button state.
type Recorder struct {
	mu      sync.Mutex
	intents []control.PointerIntent
	err     error
	down    map[control.Button]bool
}

// NewRecorder creates a Recorder.
func NewRecorder() *Recorder {
	return &Recorder{down: make(map[control.Button]bool)}
}

// SetError makes every subsequent call fail with err.
func (r *Recorder) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Move records a move intent.
func (r *Recorder) Move(x, y int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.intents = append(r.intents, control.MoveIntent(x, y))
	return nil
}

// ButtonDown records a press and marks the button held.
func (r *Recorder) ButtonDown(button control.Button) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.intents = append(r.intents, control.ButtonDownIntent(button))
	r.down[button] = true
	return nil
}

// ButtonUp records a release and marks the button up.
func (r *Recorder) ButtonUp(button control.Button) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.intents = append(r.intents, control.ButtonUpIntent(button))
	r.down[button] = false
	return nil
}

// Intents returns a copy of everything recorded so far.
func (r *Recorder) Intents() []control.PointerIntent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]control.PointerIntent, len(r.intents))
	copy(out, r.intents)
	return out
}

// IsDown reports whether the button is logically held.
func (r *Recorder) IsDown(button control.Button) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.down[button]
}
