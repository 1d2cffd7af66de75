package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/numbers21py/miniarcades/internal/core"
)

// colorStyles caches one lipgloss style per palette entry, keyed off
// the palette's own ANSI codes.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style)
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if code := c.ANSI(); code != "" {
			styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

// RenderScreen converts a screen buffer into a styled string. Runs of
// cells sharing a color are styled together to keep escape sequences
// down.
func RenderScreen(s *core.Screen) string {
	var b strings.Builder

	for y := 0; y < s.Height(); y++ {
		var run strings.Builder
		runColor := core.ColorDefault

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := colorStyles[runColor]; ok && runColor != core.ColorDefault {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}

		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				flush()
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		flush()

		if y < s.Height()-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}
