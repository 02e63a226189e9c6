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
	all.Register(NextLevel, func() Scene { return &nextLevelScene{} })
}

// nextLevelScene shows the time for the level just finished. By the time it
// runs the host has already switched to the next level, so the finished
// level is the previous one.
type nextLevelScene struct {
	attempt time.Duration
}

func (s *nextLevelScene) OnRegister() error {
	log.Debug("registered", "scene", NextLevel)
	return nil
}

func (s *nextLevelScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", NextLevel)
	s.attempt = ctx.Elapsed()
	ctx.Presence.Send(ctx.Activity("accepting fate"))
	return nil
}

func (s *nextLevelScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	finished := max(ctx.CurrentLevel-1, 0)
	best, ok := ctx.Progress.BestTime(finished)
	if !ok {
		best = s.attempt
	}

	drawFrame(scr, core.ColorGoal)
	drawTitle(scr, "LEVEL COMPLETE")
	scr.DrawTextCentered(scr.Height()/2-1, "YOUR TIME: "+formatClock(s.attempt), core.ColorDefault)
	scr.DrawTextCentered(scr.Height()/2+1, "BEST TIME: "+formatClock(best), core.ColorGoal)
	scr.DrawTextCentered(scr.Height()-3, ">> Next Level", core.ColorSelected)

	if ctx.Input.Has(core.ActionConfirm) || ctx.Input.Has(core.ActionJump) {
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
		ctx.Flags.Send(engine.UpdateLevelStart{At: ctx.Now})
		return switchTo(InGame), nil
	}
	return stay(), nil
}

func (s *nextLevelScene) OnFinish(bool) error {
	log.Debug("finished", "scene", NextLevel)
	s.attempt = 0
	return nil
}
