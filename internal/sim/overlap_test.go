package sim

import "testing"

func TestCircleTest(t *testing.T) {
	tests := []struct {
		name     string
		slack    float64
		a, b     Body
		expected bool
	}{
		{
			name:     "overlapping centers",
			a:        Body{Pos: Vec2{X: -10, Y: 0}, Size: 10},
			b:        Body{Pos: Vec2{X: 5, Y: 0}, Size: 10},
			expected: true,
		},
		{
			name:     "rims exactly touching",
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 10},
			b:        Body{Pos: Vec2{X: 20, Y: 0}, Size: 10},
			expected: true,
		},
		{
			name:     "apart without slack",
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 10},
			b:        Body{Pos: Vec2{X: 24, Y: 0}, Size: 10},
			expected: false,
		},
		{
			name:     "apart but within slack",
			slack:    5,
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 10},
			b:        Body{Pos: Vec2{X: 24, Y: 0}, Size: 10},
			expected: true,
		},
		{
			name:     "beyond slack",
			slack:    5,
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 10},
			b:        Body{Pos: Vec2{X: 0, Y: 26}, Size: 10},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			test := CircleTest{Slack: tc.slack}
			if got := test.Overlaps(tc.a, tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := test.Overlaps(tc.b, tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxTest(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Body
		expected bool
	}{
		{
			// Half extents 4 and 4 at distance 6: combined 8 > 6.
			name:     "shrunk boxes overlapping on X",
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 8},
			b:        Body{Pos: Vec2{X: 6, Y: 0}, Size: 8},
			expected: true,
		},
		{
			name:     "adjacent edges do not overlap",
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 8},
			b:        Body{Pos: Vec2{X: 8, Y: 0}, Size: 8},
			expected: false,
		},
		{
			name:     "overlap on X only",
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 8},
			b:        Body{Pos: Vec2{X: 2, Y: 20}, Size: 8},
			expected: false,
		},
		{
			// Circles of radius 5 at this spacing overlap, the shrunk boxes do not.
			name:     "diagonal circles touch but boxes miss",
			a:        Body{Pos: Vec2{X: 0, Y: 0}, Size: 5},
			b:        Body{Pos: Vec2{X: 7, Y: 7}, Size: 5},
			expected: false,
		},
	}

	box := BoxTest{Shrink: 0.5}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.Overlaps(tc.a, tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := box.Overlaps(tc.b, tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}

	diagA := Body{Pos: Vec2{X: 0, Y: 0}, Size: 5}
	diagB := Body{Pos: Vec2{X: 7, Y: 7}, Size: 5}
	if !(CircleTest{}).Overlaps(diagA, diagB) {
		t.Error("circle test should report the diagonal pair as overlapping")
	}
}

func TestOverlapVerdictIsPure(t *testing.T) {
	a := Body{Pos: Vec2{X: 3, Y: -2}, Size: 6}
	b := Body{Pos: Vec2{X: 9, Y: 1}, Size: 4}

	for _, test := range []OverlapTest{CircleTest{Slack: 1}, BoxTest{Shrink: 0.7}} {
		first := test.Overlaps(a, b)
		for i := 0; i < 100; i++ {
			if test.Overlaps(a, b) != first {
				t.Fatalf("%s verdict changed between calls", test.Kind())
			}
		}
	}
}

func TestNewOverlapTest(t *testing.T) {
	tests := []struct {
		name    string
		kind    TestKind
		slack   float64
		shrink  float64
		wantErr bool
	}{
		{"circle", TestCircle, 5, 0, false},
		{"circle negative slack", TestCircle, -1, 0, true},
		{"box", TestBox, 0, 0.7, false},
		{"box zero shrink", TestBox, 0, 0, true},
		{"box shrink above one", TestBox, 0, 1.5, true},
		{"unknown", TestKind("hexagon"), 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			test, err := NewOverlapTest(tc.kind, tc.slack, tc.shrink)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewOverlapTest() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && test.Kind() != tc.kind {
				t.Errorf("Kind() = %q, expected %q", test.Kind(), tc.kind)
			}
		})
	}
}
