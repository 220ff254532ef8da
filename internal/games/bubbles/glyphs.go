package bubbles

import "github.com/vovakirdan/tui-bubbles/internal/core"

// Glyphs
const (
	RimGlyph    = '●'
	FillGlyph   = '░'
	DotGlyph    = '∘' // Bubble smaller than one cell
	BoxRimGlyph = '■'
)

// sizePalette colors bubbles from smallest to largest.
var sizePalette = []core.Color{
	core.ColorBrightCyan,
	core.ColorCyan,
	core.ColorTurquoise,
	core.ColorBrightBlue,
	core.ColorBlue,
}

// colorForSize picks a palette entry by where size falls in [lo, hi).
func colorForSize(size, lo, hi float64) core.Color {
	if hi <= lo {
		return sizePalette[0]
	}
	frac := core.ClampF((size-lo)/(hi-lo), 0, 0.999)
	return sizePalette[int(frac*float64(len(sizePalette)))]
}
