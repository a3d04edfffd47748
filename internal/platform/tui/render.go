package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// palette holds the 256-color code for every core.Color. An empty code keeps
// the terminal's own foreground.
var palette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorDarkGray:      "240",
}

// cellStyles is palette turned into lipgloss styles, indexed the same way.
var cellStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for i, code := range palette {
		styles[i] = lipgloss.NewStyle()
		if code != "" {
			styles[i] = styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each run of same-colored cells becomes one styled span; runs of blanks are
// written bare since color does not show on a space.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	var span []rune
	for y := range h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; {
			first := s.GetCell(x, y)
			span = span[:0]
			for ; x < w; x++ {
				c := s.GetCell(x, y)
				if c.Color != first.Color {
					break
				}
				span = append(span, c.Rune)
			}
			text := string(span)
			if first.Color == core.ColorDefault || strings.TrimSpace(text) == "" {
				sb.WriteString(text)
				continue
			}
			sb.WriteString(styleFor(first.Color).Render(text))
		}
	}
	return sb.String()
}
