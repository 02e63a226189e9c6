package scenes

import (
	"fmt"
	"time"

	"github.com/vovakirdan/dataloss/internal/core"
)

// menu is a vertical list of entries with a cursor.
type menu struct {
	items  []string
	cursor int
}

// update moves the cursor and reports the chosen entry on Confirm.
func (m *menu) update(in core.InputFrame) (choice int, chosen bool) {
	if len(m.items) == 0 {
		return 0, false
	}
	switch {
	case in.Has(core.ActionUp):
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case in.Has(core.ActionDown):
		m.cursor = (m.cursor + 1) % len(m.items)
	case in.Has(core.ActionConfirm), in.Has(core.ActionJump):
		return m.cursor, true
	}
	return 0, false
}

func (m *menu) draw(s *core.Screen, x, y int) {
	for i, item := range m.items {
		if i == m.cursor {
			s.DrawTextColored(x-3, y+i, ">> "+item, core.ColorSelected)
			continue
		}
		s.DrawTextColored(x, y+i, item, core.ColorDefault)
	}
}

// drawTitle writes a bracketed heading near the top of the screen.
func drawTitle(s *core.Screen, title string) {
	s.DrawTextCentered(2, "[ "+title+" ]", core.ColorTitle)
}

// drawFrame outlines the whole screen.
func drawFrame(s *core.Screen, c core.Color) {
	s.DrawBox(core.NewRect(0, 0, s.Width(), s.Height()), c)
}

// drawHint writes a key hint on the bottom row.
func drawHint(s *core.Screen, hint string) {
	s.DrawTextCentered(s.Height()-2, hint, core.ColorMuted)
}

// drawLines writes text lines starting at row y, left aligned at x.
func drawLines(s *core.Screen, x, y int, lines []string, c core.Color) {
	for i, line := range lines {
		s.DrawTextColored(x, y+i, line, c)
	}
}

// formatClock renders a duration as MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
