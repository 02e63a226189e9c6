package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dataloss/internal/core"
)

// colorStyles maps palette slots to terminal styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
	core.ColorMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorPlatform: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorGhost:    lipgloss.NewStyle().Foreground(lipgloss.Color("61")),
	core.ColorHazard:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGoal:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells of the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
