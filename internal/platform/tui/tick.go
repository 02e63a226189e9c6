// Package tui runs the game in a terminal through Bubble Tea, locally or
// over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one game frame.
type TickMsg time.Time

// tickCmd schedules the next frame at fps frames per second.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
