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
	all.Register(Win, func() Scene { return &winScene{} })
}

type winScene struct {
	enteredAt time.Time
}

func (s *winScene) OnRegister() error {
	log.Debug("registered", "scene", Win)
	return nil
}

func (s *winScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", Win)
	s.enteredAt = ctx.Now
	ctx.Presence.Send(ctx.Activity("somehow won the game"))
	return nil
}

func (s *winScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	drawFrame(scr, core.ColorGoal)

	// The lines appear one per second.
	shown := int(ctx.Now.Sub(s.enteredAt)/time.Second) + 1
	for i, line := range []string{"congrats.", "you win.", "yay."} {
		if i < shown {
			scr.DrawTextCentered(scr.Height()/2-2+i*2, line, core.ColorGoal)
		}
	}
	scr.DrawTextCentered(scr.Height()-3, ">> RETURN TO MAIN MENU", core.ColorSelected)

	if ctx.Input.Has(core.ActionConfirm) || ctx.Input.Has(core.ActionBack) {
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
		ctx.Flags.Send(engine.SwitchLevel{Index: 0})
		return switchTo(MainMenu), nil
	}
	return stay(), nil
}

func (s *winScene) OnFinish(bool) error {
	log.Debug("finished", "scene", Win)
	s.enteredAt = time.Time{}
	return nil
}
