package control

import "math"

// Point is a 2D position in normalized camera space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SmoothingFilter reduces per-frame jitter in the control landmark with a
// per-axis exponential moving average. The filter owns its state; it is
// driven once per frame by the control loop and is not safe for concurrent
// use.
type SmoothingFilter struct {
	factor    float64
	adaptive  bool
	minFactor float64
	maxFactor float64
	velLow    float64
	velHigh   float64
	missLimit int

	pos     Point
	lastRaw Point
	misses  int
	ready   bool
}

// NewSmoothingFilter creates a filter from a validated config.
func NewSmoothingFilter(cfg Config) *SmoothingFilter {
	return &SmoothingFilter{
		factor:    cfg.SmoothingFactor,
		adaptive:  cfg.AdaptiveSmoothing,
		minFactor: cfg.AdaptiveMinFactor,
		maxFactor: cfg.AdaptiveMaxFactor,
		velLow:    cfg.VelocityLow,
		velHigh:   cfg.VelocityHigh,
		missLimit: cfg.MissFrameThreshold,
	}
}

// Update feeds one frame's raw control point, or nil when no hand was
// detected. It returns the smoothed position and whether a position is
// available this frame.
//
// A missed frame never moves the smoothed position. Once misses exceed the
// configured threshold the state is discarded, so the next detection starts
// fresh instead of blending with a position from before the gap.
func (f *SmoothingFilter) Update(raw *Point) (Point, bool) {
	if raw == nil {
		f.misses++
		if f.misses > f.missLimit {
			f.ready = false
		}
		return Point{}, false
	}

	p := Point{X: clamp01(raw.X), Y: clamp01(raw.Y)}
	f.misses = 0

	if !f.ready {
		f.pos = p
		f.lastRaw = p
		f.ready = true
		return p, true
	}

	a := f.factor
	if f.adaptive {
		a = f.adaptiveFactor(distance2D(p, f.lastRaw))
	}
	f.lastRaw = p

	f.pos = Point{
		X: a*p.X + (1-a)*f.pos.X,
		Y: a*p.Y + (1-a)*f.pos.Y,
	}
	return f.pos, true
}

// Reset discards the filter state entirely.
func (f *SmoothingFilter) Reset() {
	f.ready = false
	f.misses = 0
}

// adaptiveFactor interpolates the smoothing factor by raw landmark
// velocity: heavy smoothing for jitter at rest, light smoothing for
// deliberate motion.
func (f *SmoothingFilter) adaptiveFactor(velocity float64) float64 {
	if velocity <= f.velLow {
		return f.minFactor
	}
	if velocity >= f.velHigh {
		return f.maxFactor
	}
	t := (velocity - f.velLow) / (f.velHigh - f.velLow)
	return f.minFactor + t*(f.maxFactor-f.minFactor)
}

func distance2D(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
