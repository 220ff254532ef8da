package sim

import "fmt"

// MarginPolicy selects which size the box variant uses to inset the respawn
// rectangle.
type MarginPolicy string

const (
	// MarginOldSize insets by the half extent the body had before respawning.
	// The new size is drawn afterwards, so a body that grows can still spawn
	// partly outside the viewport.
	MarginOldSize MarginPolicy = "old"
	// MarginNewSize draws the new size first and insets by it, so the full
	// extent always starts inside the viewport.
	MarginNewSize MarginPolicy = "new"
)

// ParseMarginPolicy validates a margin policy name. Empty means MarginOldSize.
func ParseMarginPolicy(s string) (MarginPolicy, error) {
	switch MarginPolicy(s) {
	case "", MarginOldSize:
		return MarginOldSize, nil
	case MarginNewSize:
		return MarginNewSize, nil
	default:
		return "", fmt.Errorf("sim: unknown margin policy %q", s)
	}
}

// Spawner draws fresh body attributes from the configured ranges. It serves
// both initial scene setup and collision respawns.
type Spawner struct {
	Radius Range       // Size range [Min, Max)
	MaxVel float64     // Per-axis velocity bound
	Margin MarginPolicy
	Test   OverlapTest
	RNG    RandomSource
}

// velocity draws each axis uniformly from [-MaxVel, MaxVel].
func (s *Spawner) velocity() Vec2 {
	return Vec2{
		X: s.RNG.RangeInclusive(-s.MaxVel, s.MaxVel),
		Y: s.RNG.RangeInclusive(-s.MaxVel, s.MaxVel),
	}
}

// size draws from [Radius.Min, Radius.Max).
func (s *Spawner) size() float64 {
	return s.RNG.Range(s.Radius.Min, s.Radius.Max)
}

// position draws a point in the viewport inset by margin on every side.
// If the inset leaves no room on an axis, that axis collapses to the center.
func (s *Spawner) position(w, h, margin float64) Vec2 {
	halfW := w/2 - margin
	halfH := h/2 - margin
	if halfW < 0 {
		halfW = 0
	}
	if halfH < 0 {
		halfH = 0
	}
	return Vec2{
		X: s.RNG.RangeInclusive(-halfW, halfW),
		Y: s.RNG.RangeInclusive(-halfH, halfH),
	}
}

// Spawn creates a body for initial scene setup: position uniform over the
// whole viewport, velocity and size from their ranges.
func (s *Spawner) Spawn(w, h float64) Body {
	pos := s.position(w, h, 0)
	vel := s.velocity()
	return Body{
		Pos:   pos,
		Layer: BodyLayer,
		Vel:   vel,
		Size:  s.size(),
	}
}

// Respawn returns the replacement for old. The circle variant places the body
// anywhere in the viewport. The box variant keeps the new extent inside it,
// using the margin policy to pick which size sets the inset.
func (s *Spawner) Respawn(old Body, w, h float64) Body {
	if s.Test.Kind() != TestBox {
		vel := s.velocity()
		size := s.size()
		pos := s.position(w, h, 0)
		return Body{Pos: pos, Layer: BodyLayer, Vel: vel, Size: size}
	}

	var size, margin float64
	switch s.Margin {
	case MarginNewSize:
		size = s.size()
		margin = s.Test.HalfExtent(size)
	default:
		margin = s.Test.HalfExtent(old.Size)
		size = s.size()
	}
	vel := s.velocity()
	pos := s.position(w, h, margin)
	return Body{Pos: pos, Layer: BodyLayer, Vel: vel, Size: size}
}
