package sim

import (
	"reflect"
	"testing"
)

func TestIntegrateLinearity(t *testing.T) {
	bodies := []Body{
		{Pos: Vec2{X: 1, Y: 2}, Vel: Vec2{X: 3, Y: -4}, Size: 5},
		{Pos: Vec2{X: -100.5, Y: 42}, Vel: Vec2{X: 0.75, Y: 0.25}, Size: 12},
		{Pos: Vec2{}, Vel: Vec2{}, Size: 3},
	}

	for _, dt := range []float64{0, 0.01, 1.0 / 60, 2.5} {
		before := make([]Body, len(bodies))
		copy(before, bodies)

		Integrate(bodies, dt)

		for i, b := range bodies {
			wantX := before[i].Pos.X + before[i].Vel.X*dt
			wantY := before[i].Pos.Y + before[i].Vel.Y*dt
			if b.Pos.X != wantX || b.Pos.Y != wantY {
				t.Errorf("dt=%g body %d: Pos = %v, expected (%g, %g)", dt, i, b.Pos, wantX, wantY)
			}
			if b.Vel != before[i].Vel || b.Size != before[i].Size || b.Layer != before[i].Layer {
				t.Errorf("dt=%g body %d: Integrate mutated a field other than Pos", dt, i)
			}
		}
	}
}

func TestReflect(t *testing.T) {
	const w, h = 800.0, 600.0

	tests := []struct {
		name    string
		body    Body
		wantVel Vec2
	}{
		{
			name:    "right edge crossing",
			body:    Body{Pos: Vec2{X: w/2 - 2, Y: 0}, Vel: Vec2{X: 3, Y: 0}, Size: 5},
			wantVel: Vec2{X: -3, Y: 0},
		},
		{
			name:    "left edge crossing",
			body:    Body{Pos: Vec2{X: -w/2 + 1, Y: 10}, Vel: Vec2{X: -2, Y: 1}, Size: 4},
			wantVel: Vec2{X: 2, Y: 1},
		},
		{
			name:    "top edge only",
			body:    Body{Pos: Vec2{X: 0, Y: h/2 - 3}, Vel: Vec2{X: 7, Y: 5}, Size: 3},
			wantVel: Vec2{X: 7, Y: -5},
		},
		{
			name:    "bottom edge touching exactly",
			body:    Body{Pos: Vec2{X: 0, Y: -h/2 + 10}, Vel: Vec2{X: 1, Y: -1}, Size: 10},
			wantVel: Vec2{X: 1, Y: 1},
		},
		{
			name:    "corner flips both",
			body:    Body{Pos: Vec2{X: w / 2, Y: h / 2}, Vel: Vec2{X: 4, Y: 6}, Size: 5},
			wantVel: Vec2{X: -4, Y: -6},
		},
		{
			name:    "inside untouched",
			body:    Body{Pos: Vec2{X: 0, Y: 0}, Vel: Vec2{X: 4, Y: -6}, Size: 20},
			wantVel: Vec2{X: 4, Y: -6},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bodies := []Body{tc.body}
			Reflect(bodies, w, h, CircleTest{})

			if bodies[0].Vel != tc.wantVel {
				t.Errorf("Vel = %v, expected %v", bodies[0].Vel, tc.wantVel)
			}
			if bodies[0].Pos != tc.body.Pos || bodies[0].Size != tc.body.Size {
				t.Error("Reflect should only write velocity")
			}
		})
	}
}

func TestReflectUsesBoxHalfExtent(t *testing.T) {
	const w, h = 800.0, 600.0

	// Rendered radius 10 would touch the edge, the shrunk box (half 5) does not.
	bodies := []Body{{Pos: Vec2{X: w/2 - 8, Y: 0}, Vel: Vec2{X: 2, Y: 0}, Size: 10}}
	Reflect(bodies, w, h, BoxTest{Shrink: 0.5})

	if bodies[0].Vel.X != 2 {
		t.Errorf("Vel.X = %g, expected 2 (box extent does not reach the edge)", bodies[0].Vel.X)
	}
}

func TestCollideFirstIndexOnly(t *testing.T) {
	bodies := []Body{
		{Pos: Vec2{X: -10, Y: 0}, Size: 10},
		{Pos: Vec2{X: 5, Y: 0}, Size: 10},
	}

	got := Collide(bodies, CircleTest{Slack: 0})
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("Collide() = %v, expected [0]", got)
	}
}

func TestCollideSchedulesEachBodyOnce(t *testing.T) {
	// Three bodies stacked on the same point: every pair overlaps.
	bodies := []Body{
		{Pos: Vec2{}, Size: 5},
		{Pos: Vec2{}, Size: 5},
		{Pos: Vec2{}, Size: 5},
	}

	got := Collide(bodies, CircleTest{})
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("Collide() = %v, expected [0 1]", got)
	}
}

func TestCollideEmptyAndSingle(t *testing.T) {
	if got := Collide(nil, CircleTest{}); len(got) != 0 {
		t.Errorf("Collide(nil) = %v, expected none", got)
	}
	one := []Body{{Pos: Vec2{}, Size: 5}}
	if got := Collide(one, CircleTest{}); len(got) != 0 {
		t.Errorf("Collide(single) = %v, expected none", got)
	}
}

func TestCollideDoesNotMutate(t *testing.T) {
	bodies := []Body{
		{Pos: Vec2{X: 0, Y: 0}, Vel: Vec2{X: 1, Y: 1}, Size: 10},
		{Pos: Vec2{X: 1, Y: 1}, Vel: Vec2{X: -1, Y: 2}, Size: 10},
	}
	before := make([]Body, len(bodies))
	copy(before, bodies)

	Collide(bodies, CircleTest{Slack: 5})

	if !reflect.DeepEqual(bodies, before) {
		t.Error("Collide should not mutate bodies")
	}
}

func TestPairCount(t *testing.T) {
	tests := []struct{ n, expected int }{
		{0, 0}, {1, 0}, {2, 1}, {3, 3}, {15, 105},
	}
	for _, tc := range tests {
		if got := PairCount(tc.n); got != tc.expected {
			t.Errorf("PairCount(%d) = %d, expected %d", tc.n, got, tc.expected)
		}
	}
}
