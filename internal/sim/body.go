// Package sim implements the bubble simulation: bodies drifting at constant
// velocity, bouncing off the viewport border, and respawning when they overlap.
// It has no terminal or UI dependencies so it can be driven headless and tested
// in isolation.
package sim

import "math"

// BodyLayer is the constant depth every body is held at.
const BodyLayer = 0.0

// Vec2 is a 2D vector in world units. The world origin is the viewport center,
// with Y pointing up.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Body is the per-bubble state. Bodies are stored by value and only ever
// overwritten in place, so their index is stable for the lifetime of a World.
type Body struct {
	Pos   Vec2    // Center
	Layer float64 // Depth, always BodyLayer
	Vel   Vec2    // World units per second
	Size  float64 // Radius (circle test) or hit-box scale (box test)
}

// Range is a closed-open float interval [Min, Max).
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}
