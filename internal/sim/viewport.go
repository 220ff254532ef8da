package sim

import "errors"

// ErrViewportUnavailable is returned when the viewport provider is missing or
// has not been initialized yet. Ticking against stale bounds would break
// reflection and respawn placement, so callers must treat it as fatal.
var ErrViewportUnavailable = errors.New("sim: viewport unavailable")

// Viewport exposes the current size of the simulation area, centered at the
// origin. It is queried on every tick and may change between ticks.
type Viewport interface {
	// Bounds returns the width and height in world units. ok is false until
	// the provider knows its size.
	Bounds() (w, h float64, ok bool)
}

// FixedViewport is a Viewport with constant dimensions, used for headless
// runs and tests.
type FixedViewport struct {
	W, H float64
}

// Bounds implements Viewport.
func (v FixedViewport) Bounds() (float64, float64, bool) {
	return v.W, v.H, true
}

// bounds reads the viewport and reports whether a tick has any area to act on.
func bounds(v Viewport) (w, h float64, empty bool, err error) {
	if v == nil {
		return 0, 0, true, ErrViewportUnavailable
	}
	w, h, ok := v.Bounds()
	if !ok {
		return 0, 0, true, ErrViewportUnavailable
	}
	return w, h, w <= 0 || h <= 0, nil
}
