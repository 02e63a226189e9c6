package scenes

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
)

// fsmErrorScene is the only scene of the fallback machine. It is not
// registered: BuildFallback creates it with the error that broke Build.
type fsmErrorScene struct {
	cause error
}

func (s *fsmErrorScene) OnRegister() error {
	log.Debug("registered", "scene", FsmError)
	return nil
}

func (s *fsmErrorScene) OnFirstRun(ctx *engine.Context) error {
	log.Error("scene machine failed, showing fallback", "err", s.cause)
	ctx.Presence.Send(ctx.Activity("it died"))
	return nil
}

func (s *fsmErrorScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	drawFrame(scr, core.ColorWarning)
	scr.DrawTextColored(2, 1, "FSM Failure", core.ColorWarning)
	scr.DrawTextColored(2, 2, "Falling back to Default state", core.ColorWarning)

	msg := "unknown error"
	if s.cause != nil {
		msg = s.cause.Error()
	}
	drawLines(scr, 2, 4, wrap(msg, scr.Width()-4), core.ColorDefault)
	drawHint(scr, "press any key to quit")

	if ctx.Input.Has(core.ActionAnyKey) {
		ctx.Flags.Send(engine.Quit{})
	}
	return stay(), nil
}

func (s *fsmErrorScene) OnFinish(bool) error {
	return nil
}

// wrap splits text into lines of at most width runes.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		runes := []rune(para)
		for len(runes) > width {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		lines = append(lines, string(runes))
	}
	return lines
}
