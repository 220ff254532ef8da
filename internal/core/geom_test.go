package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		n        int
		expected Rect
	}{
		{"one cell", NewRect(0, 0, 10, 6), 1, NewRect(1, 1, 8, 4)},
		{"collapses to zero", NewRect(2, 2, 3, 3), 2, NewRect(4, 4, 0, 0)},
		{"zero inset", NewRect(1, 2, 3, 4), 0, NewRect(1, 2, 3, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Inset(tc.n); got != tc.expected {
				t.Errorf("Inset(%d) = %+v, expected %+v", tc.n, got, tc.expected)
			}
		})
	}
	if !NewRect(0, 0, 0, 5).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(0.25, 0.5, 4); got != 0.5 {
		t.Errorf("ClampF(0.25, 0.5, 4) = %g, expected 0.5", got)
	}
	if got := ClampF(8, 0.5, 4); got != 4 {
		t.Errorf("ClampF(8, 0.5, 4) = %g, expected 4", got)
	}
}
