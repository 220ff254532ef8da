package sim

import "testing"

func newTestSpawner(test OverlapTest, margin MarginPolicy, seed int64) *Spawner {
	return &Spawner{
		Radius: Range{Min: 3, Max: 40},
		MaxVel: 75,
		Margin: margin,
		Test:   test,
		RNG:    NewSimpleRNG(seed),
	}
}

func checkRanges(t *testing.T, s *Spawner, b Body) {
	t.Helper()
	if !s.Radius.Contains(b.Size) || b.Size <= 0 {
		t.Errorf("size %g outside [%g, %g)", b.Size, s.Radius.Min, s.Radius.Max)
	}
	if b.Vel.X < -s.MaxVel || b.Vel.X > s.MaxVel || b.Vel.Y < -s.MaxVel || b.Vel.Y > s.MaxVel {
		t.Errorf("velocity %v outside [-%g, %g]", b.Vel, s.MaxVel, s.MaxVel)
	}
	if b.Layer != BodyLayer {
		t.Errorf("layer = %g, expected %g", b.Layer, BodyLayer)
	}
}

func TestRespawnCircleRanges(t *testing.T) {
	const w, h = 1200.0, 650.0
	s := newTestSpawner(CircleTest{Slack: 5}, MarginOldSize, 7)

	old := Body{Pos: Vec2{X: -10, Y: 0}, Vel: Vec2{X: 1, Y: 1}, Size: 10}
	for i := 0; i < 1000; i++ {
		b := s.Respawn(old, w, h)
		checkRanges(t, s, b)
		if b.Pos.X < -w/2 || b.Pos.X > w/2 || b.Pos.Y < -h/2 || b.Pos.Y > h/2 {
			t.Fatalf("position %v outside viewport", b.Pos)
		}
	}
}

func TestRespawnBoxNewMarginKeepsExtentInside(t *testing.T) {
	const w, h = 400.0, 300.0
	box := BoxTest{Shrink: 0.7}
	s := newTestSpawner(box, MarginNewSize, 99)

	old := Body{Pos: Vec2{}, Size: 3}
	for i := 0; i < 1000; i++ {
		b := s.Respawn(old, w, h)
		checkRanges(t, s, b)
		half := box.HalfExtent(b.Size) - 1e-9 // float slack
		if b.Pos.X-half < -w/2 || b.Pos.X+half > w/2 || b.Pos.Y-half < -h/2 || b.Pos.Y+half > h/2 {
			t.Fatalf("extent of %+v leaves the viewport", b)
		}
	}
}

func TestRespawnBoxOldMarginUsesPreviousSize(t *testing.T) {
	const w, h = 400.0, 300.0
	box := BoxTest{Shrink: 0.5}
	s := newTestSpawner(box, MarginOldSize, 3)

	old := Body{Pos: Vec2{}, Size: 30} // margin 15
	for i := 0; i < 1000; i++ {
		b := s.Respawn(old, w, h)
		checkRanges(t, s, b)
		if b.Pos.X < -w/2+15 || b.Pos.X > w/2-15 || b.Pos.Y < -h/2+15 || b.Pos.Y > h/2-15 {
			t.Fatalf("position %v outside the rectangle inset by the old half extent", b.Pos)
		}
	}
}

func TestRespawnMarginLargerThanViewport(t *testing.T) {
	box := BoxTest{Shrink: 1}
	s := newTestSpawner(box, MarginOldSize, 5)

	b := s.Respawn(Body{Size: 39}, 20, 20)
	if b.Pos.X != 0 || b.Pos.Y != 0 {
		t.Errorf("position = %v, expected center when the inset leaves no room", b.Pos)
	}
}

func TestParseMarginPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MarginPolicy
		wantErr bool
	}{
		{"", MarginOldSize, false},
		{"old", MarginOldSize, false},
		{"new", MarginNewSize, false},
		{"sideways", "", true},
	}
	for _, tc := range tests {
		got, err := ParseMarginPolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMarginPolicy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMarginPolicy(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestSimpleRNGRanges(t *testing.T) {
	r := NewSimpleRNG(12345)
	for i := 0; i < 10000; i++ {
		v := r.Range(3, 40)
		if v < 3 || v >= 40 {
			t.Fatalf("Range(3, 40) = %g", v)
		}
		u := r.RangeInclusive(-0.75, 0.75)
		if u < -0.75 || u > 0.75 {
			t.Fatalf("RangeInclusive(-0.75, 0.75) = %g", u)
		}
	}

	if v := r.Range(5, 5); v != 5 {
		t.Errorf("Range on empty interval = %g, expected 5", v)
	}
	if v := r.RangeInclusive(0, 0); v != 0 {
		t.Errorf("RangeInclusive(0, 0) = %g, expected 0", v)
	}
}

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(42)
	b := NewSimpleRNG(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatal("generators with the same seed diverged")
		}
	}

	// Zero seed must not get stuck.
	z := NewSimpleRNG(0)
	if z.Next() == z.Next() {
		t.Error("zero-seeded generator repeated a value")
	}
}
