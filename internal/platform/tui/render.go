package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reversi/internal/core"
)

// ansiCodes maps core.Color to ANSI 256-color codes.
var ansiCodes = map[core.Color]string{
	core.ColorBlack:        "0",
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorGray:         "245",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightWhite:  "15",
	core.ColorBoard:        "22",
}

// applyStyle adds the colors of st to base.
func applyStyle(base lipgloss.Style, st core.Style) lipgloss.Style {
	if code, ok := ansiCodes[st.Fg]; ok {
		base = base.Foreground(lipgloss.Color(code))
	}
	if code, ok := ansiCodes[st.Bg]; ok {
		base = base.Background(lipgloss.Color(code))
	}
	return base
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, func(st core.Style) lipgloss.Style {
		return applyStyle(lipgloss.NewStyle(), st)
	})
}

// RenderScreenWith renders with a session-specific renderer, so each SSH
// client gets its own color profile.
func RenderScreenWith(s *core.Screen, r *lipgloss.Renderer) string {
	if r == nil {
		return RenderScreen(s)
	}
	return renderScreen(s, func(st core.Style) lipgloss.Style {
		return applyStyle(r.NewStyle(), st)
	})
}

func renderScreen(s *core.Screen, style func(core.Style) lipgloss.Style) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	cache := make(map[core.Style]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Style

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Style != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (core.Style{}) {
				sb.WriteString(run.String())
				continue
			}
			st, ok := cache[start]
			if !ok {
				st = style(start)
				cache[start] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
