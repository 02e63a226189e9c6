package scenes

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
	"github.com/vovakirdan/dataloss/internal/sound"
)

func init() {
	all.Register(Pause, func() Scene {
		return &pauseScene{menu: menu{items: []string{"RESUME", "MAIN MENU"}}}
	})
}

type pauseScene struct {
	menu menu
}

func (s *pauseScene) OnRegister() error {
	log.Debug("registered", "scene", Pause)
	return nil
}

func (s *pauseScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", Pause)
	ctx.Presence.Send(ctx.Activity("paused"))
	return nil
}

func (s *pauseScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	drawFrame(scr, core.ColorMuted)
	scr.DrawTextCentered(scr.Height()/2-3, "P A U S E D", core.ColorTitle)
	scr.DrawTextCentered(scr.Height()/2-1, "TIME "+formatClock(ctx.Elapsed()), core.ColorMuted)
	s.menu.draw(scr, scr.Width()/2-5, scr.Height()/2+1)
	drawHint(scr, "esc/p resume • enter select")

	if ctx.Input.Has(core.ActionPause) {
		return switchTo(InGame), nil
	}

	choice, chosen := s.menu.update(ctx.Input)
	if !chosen {
		return stay(), nil
	}
	ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
	if choice == 0 {
		return switchTo(InGame), nil
	}
	return switchTo(MainMenu), nil
}

func (s *pauseScene) OnFinish(bool) error {
	log.Debug("finished", "scene", Pause)
	s.menu.cursor = 0
	return nil
}
