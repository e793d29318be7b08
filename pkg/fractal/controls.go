package fractal

// Key labels the controls react to.
const (
	KeyUp        = "W"
	KeyDown      = "S"
	KeyLeft      = "A"
	KeyRight     = "D"
	KeyMore      = "Q"
	KeyLess      = "E"
	KeyZoomIn    = "Space"
	KeyZoomOut   = "Left Shift"
	KeyQuit      = "Escape"
	KeyResetView = "R"
)

type action int

const (
	panUp action = iota
	panDown
	panLeft
	panRight
	zoomIn
	zoomOut
	moreIterations
	lessIterations
	actionCount
)

var bindings = map[string]action{
	KeyUp:      panUp,
	KeyDown:    panDown,
	KeyLeft:    panLeft,
	KeyRight:   panRight,
	KeyZoomIn:  zoomIn,
	KeyZoomOut: zoomOut,
	KeyMore:    moreIterations,
	KeyLess:    lessIterations,
}

// Limits bounds what Update may do to a View.
type Limits struct {
	MinIter int32
	MaxIter int32
	MinMag  float32
}

func DefaultLimits() Limits {
	return Limits{MinIter: DefaultMinIterations, MaxIter: DefaultMaxIterations, MinMag: DefaultMinMag}
}

// Controls turns key state into view changes. Pan and zoom keys act for as
// long as they are held; the iteration keys act once per press.
type Controls struct {
	limits Limits
	held   [actionCount]bool
}

func NewControls(limits Limits) *Controls {
	return &Controls{limits: limits}
}

// KeyDown marks the key as held. It reports whether the key is bound.
func (c *Controls) KeyDown(label string) bool {
	a, ok := bindings[label]
	if ok {
		c.held[a] = true
	}
	return ok
}

func (c *Controls) KeyUp(label string) bool {
	a, ok := bindings[label]
	if ok {
		c.held[a] = false
	}
	return ok
}

// Active reports whether any key is held, i.e. whether the next Update can
// change the view.
func (c *Controls) Active() bool {
	for _, h := range c.held {
		if h {
			return true
		}
	}
	return false
}

// Update advances v by dt seconds. Panning moves dt/Mag plane units, zooming
// scales Mag by (1 ± dt). Mag never drops below the configured minimum.
func (c *Controls) Update(v *View, dt float32) {
	step := dt / v.Mag
	grow := v.Mag * dt

	if c.held[panUp] {
		v.Pos[1] += step
	}
	if c.held[panDown] {
		v.Pos[1] -= step
	}
	if c.held[panLeft] {
		v.Pos[0] -= step
	}
	if c.held[panRight] {
		v.Pos[0] += step
	}
	if c.held[zoomIn] {
		v.Mag += grow
	}
	if c.held[zoomOut] {
		v.Mag -= grow
	}
	if c.held[moreIterations] && v.Iter < c.limits.MaxIter {
		v.Iter = min(v.Iter*2, c.limits.MaxIter)
		c.held[moreIterations] = false
	}
	if c.held[lessIterations] && v.Iter > c.limits.MinIter {
		v.Iter = max(v.Iter/2, c.limits.MinIter)
		c.held[lessIterations] = false
	}
	if v.Mag < c.limits.MinMag {
		v.Mag = c.limits.MinMag
	}
}
