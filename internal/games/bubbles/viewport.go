package bubbles

import (
	"math"

	"github.com/vovakirdan/tui-bubbles/internal/sim"
)

// HUDRows is the number of screen rows reserved above the simulation area.
const HUDRows = 1

// screenViewport maps a terminal grid to a world rectangle centered at the
// origin with Y pointing up. It reports itself unavailable until the first
// real screen size is known.
type screenViewport struct {
	cols, rows   int
	cellW, cellH float64
	sized        bool
}

var _ sim.Viewport = (*screenViewport)(nil)

func newScreenViewport(cellW, cellH float64) *screenViewport {
	return &screenViewport{cellW: cellW, cellH: cellH}
}

// setSize records the terminal size. A zero size is valid and yields an
// empty world area.
func (v *screenViewport) setSize(cols, rows int) {
	v.cols = max(cols, 0)
	v.rows = max(rows, 0)
	v.sized = true
}

func (v *screenViewport) playRows() int {
	return max(v.rows-HUDRows, 0)
}

// Bounds implements sim.Viewport.
func (v *screenViewport) Bounds() (float64, float64, bool) {
	if !v.sized {
		return 0, 0, false
	}
	return float64(v.cols) * v.cellW, float64(v.playRows()) * v.cellH, true
}

// toCell converts a world position to fractional screen coordinates.
func (v *screenViewport) toCell(p sim.Vec2) (col, row float64) {
	w, h, _ := v.Bounds()
	col = (p.X + w/2) / v.cellW
	row = float64(HUDRows) + (h/2-p.Y)/v.cellH
	return col, row
}

// cellOf returns the screen cell containing a world position.
func (v *screenViewport) cellOf(p sim.Vec2) (x, y int) {
	col, row := v.toCell(p)
	return int(math.Floor(col)), int(math.Floor(row))
}
