package control

// Mapper converts smoothed camera-space positions into screen coordinates.
// In absolute mode the active region of camera space is rescaled to the
// full screen. In relative mode per-frame deltas are scaled by the
// sensitivity and accumulated onto a cursor position that starts at the
// screen center. Output is always clamped to the screen bounds.
type Mapper struct {
	mode        MappingMode
	region      ActiveRegion
	sensitivity float64
	mirrorX     bool
	width       int
	height      int

	cursorX float64
	cursorY float64
	prev    Point
	hasPrev bool
}

// NewMapper creates a mapper from a validated config and screen size.
func NewMapper(cfg Config, screenWidth, screenHeight int) *Mapper {
	return &Mapper{
		mode:        cfg.Mode,
		region:      cfg.Region,
		sensitivity: cfg.Sensitivity,
		mirrorX:     cfg.MirrorX,
		width:       screenWidth,
		height:      screenHeight,
		cursorX:     float64(screenWidth) / 2,
		cursorY:     float64(screenHeight) / 2,
	}
}

// Map converts one smoothed camera-space point to a screen coordinate.
// Same point, same prior cursor state and same config always yield the
// same output.
func (m *Mapper) Map(p Point) (int, int) {
	if m.mode == MappingRelative {
		return m.mapRelative(p)
	}
	return m.mapAbsolute(p)
}

func (m *Mapper) mapAbsolute(p Point) (int, int) {
	nx := clamp01((p.X - m.region.Left) / m.region.Width())
	ny := clamp01((p.Y - m.region.Top) / m.region.Height())
	if m.mirrorX {
		nx = 1 - nx
	}

	x := clampInt(int(nx*float64(m.width)), 0, m.width-1)
	y := clampInt(int(ny*float64(m.height)), 0, m.height-1)
	return x, y
}

func (m *Mapper) mapRelative(p Point) (int, int) {
	if !m.hasPrev {
		m.prev = p
		m.hasPrev = true
		return int(m.cursorX), int(m.cursorY)
	}

	dx := (p.X - m.prev.X) * m.sensitivity
	dy := (p.Y - m.prev.Y) * m.sensitivity
	if m.mirrorX {
		dx = -dx
	}
	m.prev = p

	m.cursorX = clampFloat(m.cursorX+dx, 0, float64(m.width-1))
	m.cursorY = clampFloat(m.cursorY+dy, 0, float64(m.height-1))
	return int(m.cursorX), int(m.cursorY)
}

// Reset drops the previous-point reference so that reacquiring the hand
// after a tracking gap does not produce a spurious relative jump. The
// accumulated cursor position is kept.
func (m *Mapper) Reset() {
	m.hasPrev = false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
