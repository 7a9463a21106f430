package control

import (
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
)

// MappingMode selects how camera-space positions become screen coordinates.
type MappingMode string

const (
	// MappingAbsolute rescales the camera-space point to the full screen.
	MappingAbsolute MappingMode = "absolute"
	// MappingRelative accumulates scaled deltas onto the cursor position.
	MappingRelative MappingMode = "relative"
)

// ActiveRegion is the sub-rectangle of normalized camera space mapped to
// the full screen in absolute mode, expressed as margins cut from each
// edge. Landmarks outside the region clamp to its border.
type ActiveRegion struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal extent of the region.
func (r ActiveRegion) Width() float64 { return 1.0 - r.Left - r.Right }

// Height returns the vertical extent of the region.
func (r ActiveRegion) Height() float64 { return 1.0 - r.Top - r.Bottom }

// Config holds the tunable parameters of the control loop.
type Config struct {
	// ControlLandmark is the index of the landmark that drives the cursor.
	ControlLandmark int `json:"control_landmark"`

	// SmoothingFactor in (0,1) weights the raw sample in the exponential
	// moving average. Closer to 1 is more responsive, closer to 0 smoother.
	SmoothingFactor float64 `json:"smoothing_factor"`

	// AdaptiveSmoothing interpolates the smoothing factor between
	// AdaptiveMinFactor and AdaptiveMaxFactor by the raw landmark velocity,
	// damping jitter at rest without lagging deliberate motion.
	AdaptiveSmoothing bool    `json:"adaptive_smoothing"`
	AdaptiveMinFactor float64 `json:"adaptive_min_factor"`
	AdaptiveMaxFactor float64 `json:"adaptive_max_factor"`
	// VelocityLow and VelocityHigh bound the interpolation, in normalized
	// camera units moved per frame.
	VelocityLow  float64 `json:"velocity_low"`
	VelocityHigh float64 `json:"velocity_high"`

	// MissFrameThreshold is the number of consecutive missed frames
	// tolerated before the smoothing state is discarded.
	MissFrameThreshold int `json:"miss_frame_threshold"`

	// PressThreshold and ReleaseThreshold bound the pinch hysteresis band.
	// Both are normalized pinch distances; ReleaseThreshold must be greater
	// than PressThreshold.
	PressThreshold   float64 `json:"pinch_press_threshold"`
	ReleaseThreshold float64 `json:"pinch_release_threshold"`

	// DebounceFrames is how many consecutive frames a pinch condition must
	// hold before the corresponding button transition fires.
	DebounceFrames int `json:"pinch_debounce_frames"`

	// Mode selects absolute or relative coordinate mapping.
	Mode MappingMode `json:"mapping_mode"`

	// Region restricts absolute mapping to a sub-rectangle of camera space.
	Region ActiveRegion `json:"active_region"`

	// Sensitivity scales deltas in relative mode (pixels per normalized unit).
	Sensitivity float64 `json:"sensitivity"`

	// MirrorX flips the horizontal axis for mirrored camera feeds.
	MirrorX bool `json:"mirror_x"`
}

// DefaultConfig returns the tuning used for a typical webcam setup.
func DefaultConfig() Config {
	return Config{
		ControlLandmark:    detector.MiddleMCP,
		SmoothingFactor:    0.7,
		AdaptiveSmoothing:  false,
		AdaptiveMinFactor:  0.2,
		AdaptiveMaxFactor:  0.85,
		VelocityLow:        0.003,
		VelocityHigh:       0.025,
		MissFrameThreshold: 5,
		PressThreshold:     0.3,
		ReleaseThreshold:   0.4,
		DebounceFrames:     2,
		Mode:               MappingAbsolute,
		Region:             ActiveRegion{Left: 0.3, Right: 0.1, Top: 0.3, Bottom: 0.15},
		Sensitivity:        1000,
		MirrorX:            false,
	}
}

// Validate rejects misconfiguration before the control loop starts.
// Threshold relationships are never silently clamped.
func (c Config) Validate() error {
	if c.ControlLandmark < 0 || c.ControlLandmark >= detector.NumLandmarks {
		return fmt.Errorf("control landmark index %d out of range [0,%d)", c.ControlLandmark, detector.NumLandmarks)
	}
	if c.SmoothingFactor <= 0 || c.SmoothingFactor >= 1 {
		return fmt.Errorf("smoothing factor %g must be in (0,1)", c.SmoothingFactor)
	}
	if c.AdaptiveSmoothing {
		if c.AdaptiveMinFactor <= 0 || c.AdaptiveMinFactor >= 1 {
			return fmt.Errorf("adaptive min factor %g must be in (0,1)", c.AdaptiveMinFactor)
		}
		if c.AdaptiveMaxFactor <= 0 || c.AdaptiveMaxFactor >= 1 {
			return fmt.Errorf("adaptive max factor %g must be in (0,1)", c.AdaptiveMaxFactor)
		}
		if c.AdaptiveMinFactor > c.AdaptiveMaxFactor {
			return fmt.Errorf("adaptive min factor %g exceeds max factor %g", c.AdaptiveMinFactor, c.AdaptiveMaxFactor)
		}
		if c.VelocityLow >= c.VelocityHigh {
			return fmt.Errorf("velocity low threshold %g must be below high threshold %g", c.VelocityLow, c.VelocityHigh)
		}
	}
	if c.MissFrameThreshold < 0 {
		return fmt.Errorf("miss frame threshold %d must be >= 0", c.MissFrameThreshold)
	}
	if c.PressThreshold <= 0 {
		return fmt.Errorf("pinch press threshold %g must be > 0", c.PressThreshold)
	}
	if c.ReleaseThreshold <= c.PressThreshold {
		return fmt.Errorf("pinch release threshold %g must exceed press threshold %g", c.ReleaseThreshold, c.PressThreshold)
	}
	if c.DebounceFrames < 1 {
		return fmt.Errorf("pinch debounce frames %d must be >= 1", c.DebounceFrames)
	}
	switch c.Mode {
	case MappingAbsolute:
		if c.Region.Width() <= 0 || c.Region.Height() <= 0 {
			return fmt.Errorf("active region margins leave no usable area")
		}
	case MappingRelative:
		if c.Sensitivity <= 0 {
			return fmt.Errorf("sensitivity %g must be > 0 in relative mode", c.Sensitivity)
		}
	default:
		return fmt.Errorf("unknown mapping mode %q", c.Mode)
	}
	return nil
}
