package sim

import (
	"fmt"
	"math"
)

// TestKind names an overlap predicate.
type TestKind string

const (
	TestCircle TestKind = "circle"
	TestBox    TestKind = "box"
)

// OverlapTest decides whether two bodies touch. It is selected once at startup
// and also reports the half extent that the reflector and respawn policy use
// for a given size.
type OverlapTest interface {
	Kind() TestKind
	Overlaps(a, b Body) bool
	HalfExtent(size float64) float64
}

// CircleTest treats size as a radius. Bodies touch when the gap between their
// rims is at most Slack, so they register contact slightly before the rendered
// edges meet.
type CircleTest struct {
	Slack float64
}

// Kind implements OverlapTest.
func (CircleTest) Kind() TestKind { return TestCircle }

// Overlaps implements OverlapTest.
func (c CircleTest) Overlaps(a, b Body) bool {
	gap := a.Pos.Dist(b.Pos) - a.Size - b.Size
	return gap <= c.Slack
}

// HalfExtent implements OverlapTest.
func (CircleTest) HalfExtent(size float64) float64 { return size }

// BoxTest treats each body as an axis-aligned square with half side
// size*Shrink. With Shrink below 1/sqrt(2) the square sits inside the rendered
// circle, so bodies can visually touch without registering a hit.
type BoxTest struct {
	Shrink float64
}

// Kind implements OverlapTest.
func (BoxTest) Kind() TestKind { return TestBox }

// Overlaps implements OverlapTest. Boxes that only share an edge do not overlap.
func (t BoxTest) Overlaps(a, b Body) bool {
	reach := t.HalfExtent(a.Size) + t.HalfExtent(b.Size)
	return math.Abs(a.Pos.X-b.Pos.X) < reach && math.Abs(a.Pos.Y-b.Pos.Y) < reach
}

// HalfExtent implements OverlapTest.
func (t BoxTest) HalfExtent(size float64) float64 { return size * t.Shrink }

// NewOverlapTest builds the predicate for kind. slack applies to the circle
// test and shrink to the box test.
func NewOverlapTest(kind TestKind, slack, shrink float64) (OverlapTest, error) {
	switch kind {
	case TestCircle:
		if slack < 0 {
			return nil, fmt.Errorf("sim: circle slack must be non-negative, got %g", slack)
		}
		return CircleTest{Slack: slack}, nil
	case TestBox:
		if shrink <= 0 || shrink > 1 {
			return nil, fmt.Errorf("sim: box shrink must be in (0, 1], got %g", shrink)
		}
		return BoxTest{Shrink: shrink}, nil
	default:
		return nil, fmt.Errorf("sim: unknown overlap test %q", kind)
	}
}
