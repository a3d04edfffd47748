package core

// Color is the foreground color of a screen cell, expressed as an index
// into the palette the platform layer maps to terminal colors.
type Color uint8

// Palette entries used by the shooter.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// Dim returns a darker variant used for scenery drawn behind the playfield.
func (c Color) Dim() Color {
	switch c {
	case ColorBrightGreen:
		return ColorGreen
	case ColorBrightBlue:
		return ColorBlue
	case ColorBrightCyan:
		return ColorCyan
	case ColorWhite, ColorBrightWhite, ColorGray:
		return ColorDarkGray
	default:
		return c
	}
}
