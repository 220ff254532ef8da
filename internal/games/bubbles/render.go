package bubbles

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/sim"
)

// Render draws the HUD and every bubble.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.viewport == nil {
		return
	}
	if g.tooSmall() {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	g.renderHUD(dst)
	if g.world != nil {
		g.renderBodies(dst)
	}
	if g.paused {
		g.drawCenteredBox(dst, "PAUSED", "P resume  |  R restart  |  B menu")
	}
}

// renderHUD draws the title and counters on row 0.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	left := fmt.Sprintf("%s  pop %d  respawns %d", g.Title(), st.Population, st.Respawns)
	dst.DrawTextColored(1, 0, left, core.ColorWhite)

	right := fmt.Sprintf("tick %d  %s/%s  x%g", st.Ticks, g.cfg.Schedule.Mode, g.cfg.Overlap.Test, st.Speed)
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorGray)
}

// renderBodies draws bubbles largest first so small ones stay visible.
func (g *Game) renderBodies(dst *core.Screen) {
	bodies := g.world.Bodies()
	sort.SliceStable(bodies, func(i, j int) bool {
		return bodies[i].Size > bodies[j].Size
	})

	params := g.world.Params()
	for _, b := range bodies {
		c := colorForSize(b.Size, params.Radius.Min, params.Radius.Max)
		g.drawBody(dst, b, params.Test, c)
	}
}

// drawBody rasterizes one body. Cells whose centers fall inside the body's
// extent are filled, and the outermost ring of those cells is drawn as a rim.
func (g *Game) drawBody(dst *core.Screen, b sim.Body, test sim.OverlapTest, c core.Color) {
	vp := g.viewport
	half := test.HalfExtent(b.Size)
	rx, ry := half/vp.cellW, half/vp.cellH
	col, row := vp.toCell(b.Pos)

	if rx < 0.5 && ry < 0.5 {
		g.setPlayCell(dst, int(math.Floor(col)), int(math.Floor(row)), DotGlyph, c)
		return
	}

	boxed := test.Kind() == sim.TestBox
	rim := RimGlyph
	if boxed {
		rim = BoxRimGlyph
	}
	// One cell in normalized units along the tighter axis.
	edge := 1 - 1/math.Max(math.Min(rx, ry), 1)

	drawn := false
	for y := int(math.Floor(row - ry)); y <= int(math.Floor(row+ry)); y++ {
		for x := int(math.Floor(col - rx)); x <= int(math.Floor(col+rx)); x++ {
			nx := (float64(x) + 0.5 - col) / math.Max(rx, 0.5)
			ny := (float64(y) + 0.5 - row) / math.Max(ry, 0.5)

			var d float64
			if boxed {
				d = math.Max(math.Abs(nx), math.Abs(ny))
			} else {
				d = math.Hypot(nx, ny)
			}
			if d > 1 {
				continue
			}

			glyph := FillGlyph
			if d >= edge {
				glyph = rim
			}
			g.setPlayCell(dst, x, y, glyph, c)
			drawn = true
		}
	}

	// Thin bodies may miss every cell center.
	if !drawn {
		g.setPlayCell(dst, int(math.Floor(col)), int(math.Floor(row)), rim, c)
	}
}

// setPlayCell writes a cell only inside the simulation area below the HUD.
func (g *Game) setPlayCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	if y < HUDRows {
		return
	}
	dst.SetColored(x, y, r, c)
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
