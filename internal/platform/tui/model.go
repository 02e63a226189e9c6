package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/game"
)

// helpRows is the space below the game screen used by the help line.
const helpRows = 1

// Options describes the terminal the game runs in.
type Options struct {
	Width  int // Terminal width in characters
	Height int // Terminal height in characters
	FPS    int // Frames per second
}

// Model is the Bubble Tea model that drives a game host.
type Model struct {
	host       *game.Host
	screen     *core.Screen
	inputFrame core.InputFrame
	keys       KeyMap
	help       help.Model
	fps        int
	quitting   bool
	err        error
}

// NewModel creates a model for host.
func NewModel(host *game.Host, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	h := help.New()
	h.Width = opts.Width

	return Model{
		host:       host,
		screen:     core.NewScreen(opts.Width, max(opts.Height-helpRows, 0)),
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		fps:        opts.FPS,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.Apply(msg, &m.inputFrame) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick runs one host frame with the keys pressed since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	// Scenes only see the keys pressed since the last tick.
	input := m.inputFrame.Clone()
	m.inputFrame.Clear()

	if err := m.host.Frame(m.screen, input, now); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if m.host.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.fps)
}

// View renders the last frame and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Err returns the error that ended the game, if any.
func (m Model) Err() error {
	return m.err
}

// Run plays the game on the local terminal until the player quits.
// The host is closed on return.
func Run(host *game.Host, opts Options) error {
	defer func() {
		if err := host.Close(); err != nil {
			log.Warn("closing game", "err", err)
		}
	}()

	p := tea.NewProgram(NewModel(host, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
