package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'o', ColorCyan)
	if c := s.GetCell(5, 5); c.Rune != 'o' || c.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected cyan 'o'", c)
	}

	// Out of bounds writes are dropped.
	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'A')
	s.Set(0, 10, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(s.Bounds(), 'X')
	s.Clear()

	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("after Clear String() = %q", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(7, 0, "héllo")
	if got := s.Row(0); got != "       hél" {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}

	s.DrawTextCentered(1, "ab")
	if got := s.Row(1); got != "    ab    " {
		t.Errorf("Row(1) = %q, expected centered text", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(s.Bounds(), ColorGray)

	expected := strings.Join([]string{
		"┌───┐",
		"│   │",
		"└───┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corner should carry the box color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 2x3", s.Width(), s.Height())
	}
	expected := "ab\nef\n  "
	if got := s.String(); got != expected {
		t.Errorf("after shrink String() = %q, expected %q", got, expected)
	}

	s.Resize(-3, 0)
	if s.Width() != 0 || s.Height() != 0 || s.String() != "" {
		t.Error("negative size should collapse to an empty screen")
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blank row", got)
	}
}
