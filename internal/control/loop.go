package control

import "github.com/ayusman/mudra/internal/detector"

// Controller sequences the per-frame control work: smoothing, coordinate
// mapping and pinch detection. It owns all mutable per-hand state and is
// driven by exactly one goroutine.
type Controller struct {
	cfg    Config
	filter *SmoothingFilter
	mapper *Mapper
	pinch  *PinchDetector
}

// NewController validates the config and builds the control pipeline for
// the given screen size.
func NewController(cfg Config, screenWidth, screenHeight int) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		cfg:    cfg,
		filter: NewSmoothingFilter(cfg),
		mapper: NewMapper(cfg, screenWidth, screenHeight),
		pinch:  NewPinchDetector(cfg),
	}, nil
}

// Step processes one frame's detection result; hand is nil when no hand
// was detected (or the detector failed) this frame. It returns at most one
// Move intent followed by at most one button intent, in that order, so a
// click always lands at the just-updated position.
func (c *Controller) Step(hand *detector.HandLandmarks) []PointerIntent {
	if hand == nil {
		return c.stepAbsent()
	}

	var intents []PointerIntent

	cp := hand.Points[c.cfg.ControlLandmark]
	raw := Point{X: cp.X, Y: cp.Y}
	if smoothed, ok := c.filter.Update(&raw); ok {
		x, y := c.mapper.Map(smoothed)
		intents = append(intents, MoveIntent(x, y))
	}

	if dist, ok := hand.PinchDistance(); ok {
		if intent, fired := c.pinch.Observe(dist); fired {
			intents = append(intents, intent)
		}
	} else {
		// Degenerate landmarks carry no pinch signal; treat like a lost
		// hand so a held button is released.
		if intent, fired := c.pinch.HandLost(); fired {
			intents = append(intents, intent)
		}
	}

	return intents
}

func (c *Controller) stepAbsent() []PointerIntent {
	c.filter.Update(nil)
	c.mapper.Reset()

	if intent, fired := c.pinch.HandLost(); fired {
		return []PointerIntent{intent}
	}
	return nil
}

// Release produces the fail-safe ButtonUp for shutdown when the pinch
// machine is still pressed. Callers must dispatch it before exiting.
func (c *Controller) Release() (PointerIntent, bool) {
	return c.pinch.HandLost()
}

// PinchState exposes the pinch machine state for status reporting.
func (c *Controller) PinchState() PinchState {
	return c.pinch.State()
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}
