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
	all.Register(HowToPlay, func() Scene { return &howToPlayScene{} })
}

var instructions = []string{
	">> SPACE to jump",
	">> X or SHIFT+RIGHT to dash",
	">> ESC or P to pause",
	">> Touch a wall and you are done",
	">> The red stuff is worse",
	">> Not every platform is real",
}

type howToPlayScene struct{}

func (s *howToPlayScene) OnRegister() error {
	log.Debug("registered", "scene", HowToPlay)
	return nil
}

func (s *howToPlayScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", HowToPlay)
	ctx.Presence.Send(ctx.Activity("learning how to play"))
	return nil
}

func (s *howToPlayScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	drawFrame(scr, core.ColorDefault)
	drawTitle(scr, "How to Play")
	drawLines(scr, 8, 6, instructions, core.ColorDefault)
	scr.DrawTextColored(3, scr.Height()-3, ">> BACK TO MENU", core.ColorSelected)

	if ctx.Input.Has(core.ActionBack) || ctx.Input.Has(core.ActionConfirm) {
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
		return switchTo(MainMenu), nil
	}
	return stay(), nil
}

func (s *howToPlayScene) OnFinish(bool) error {
	log.Debug("finished", "scene", HowToPlay)
	return nil
}
