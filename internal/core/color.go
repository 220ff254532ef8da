package core

// Color is the foreground color of a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the renderer. Bubbles pick from the cyan/blue range by size.
const (
	ColorDefault Color = iota
	ColorCyan
	ColorBrightCyan
	ColorTurquoise
	ColorBlue
	ColorBrightBlue
	ColorMagenta
	ColorYellow
	ColorGray
	ColorWhite
)
