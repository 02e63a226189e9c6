package scenes

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
)

func init() {
	all.Register(Loading, func() Scene { return &loadingScene{} })
}

var logo = []string{
	"████▄  ▄███▄ █████ ▄███▄   █     ▄███▄ ▄████ ▄████",
	"█   █  █▄▄▄█   █   █▄▄▄█   █     █   █ ▀███▄ ▀███▄",
	"████▀  █   █   █   █   █   █████ ▀███▀ ████▀ ████▀",
}

// loadingScene shows the splash until it times out or a key is pressed.
type loadingScene struct {
	shownAt time.Time
}

func (s *loadingScene) OnRegister() error {
	log.Debug("registered", "scene", Loading)
	return nil
}

func (s *loadingScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", Loading)
	s.shownAt = ctx.Now
	ctx.Presence.Send(ctx.Activity("booting"))
	return nil
}

func (s *loadingScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	top := scr.Height()/2 - len(logo)
	for i, line := range logo {
		scr.DrawTextCentered(top+i, line, core.ColorTitle)
	}

	elapsed := ctx.Now.Sub(s.shownAt)
	splash := ctx.Config.Timing.Splash
	scr.DrawTextCentered(top+len(logo)+2, progressBar(elapsed, splash, 30), core.ColorMuted)
	drawHint(scr, "press any key")

	if elapsed >= splash || ctx.Input.Has(core.ActionAnyKey) {
		return switchTo(MainMenu), nil
	}
	return stay(), nil
}

func (s *loadingScene) OnFinish(bool) error {
	log.Debug("finished", "scene", Loading)
	s.shownAt = time.Time{}
	return nil
}

// progressBar renders elapsed/total as a fixed-width bar.
func progressBar(elapsed, total time.Duration, width int) string {
	filled := width
	if total > 0 && elapsed < total {
		filled = int(float64(width) * float64(elapsed) / float64(total))
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return "[" + string(bar) + "]"
}
