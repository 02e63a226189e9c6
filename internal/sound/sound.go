// Package sound turns named sound triggers into terminal output.
package sound

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Trigger names sent by scenes.
const (
	ButtonPress   = "button-press"
	LevelComplete = "level-complete"
	Death         = "death"
)

// Sink plays a named sound at a volume in [0, 1].
type Sink interface {
	Play(name string, volume float64)
}

// Bell rings the terminal bell for known triggers.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell creates a Bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

// Play implements Sink. Muted or unknown triggers are ignored.
func (b *Bell) Play(name string, volume float64) {
	if volume <= 0 {
		return
	}
	switch name {
	case ButtonPress, LevelComplete, Death:
	default:
		log.Debug("unknown sound trigger", "name", name)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.out, "\a"); err != nil {
		log.Debug("bell failed", "err", err)
	}
}

// Silent discards every trigger.
type Silent struct{}

// Play implements Sink.
func (Silent) Play(string, float64) {}
