package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dataloss/internal/core"
)

// KeyMap binds terminal keys to game actions.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Dash    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Pause   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "less"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "more"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "jump"),
		),
		Dash: key.NewBinding(
			key.WithKeys("x", "shift+right"),
			key.WithHelp("x", "dash"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc", "p"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Dash, k.Pause, k.Confirm, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Dash, k.Pause},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Back, k.Quit},
	}
}

// Apply adds the actions bound to msg to frame. It reports whether msg is
// the quit key, which the platform handles itself.
func (k KeyMap) Apply(msg tea.KeyMsg, frame *core.InputFrame) (quit bool) {
	if key.Matches(msg, k.Quit) {
		return true
	}

	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Jump, core.ActionJump},
		{k.Dash, core.ActionDash},
		{k.Confirm, core.ActionConfirm},
		{k.Back, core.ActionBack},
		{k.Pause, core.ActionPause},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			frame.Set(b.action)
		}
	}
	frame.Set(core.ActionAnyKey)
	return false
}
