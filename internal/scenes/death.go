package scenes

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
	"github.com/vovakirdan/dataloss/internal/sound"
)

func init() {
	all.Register(Death, func() Scene { return &deathScene{} })
}

const deathReport = `ERR: Corrupted Player Data Detected

The program has detected lowering player integrity,
and has halted as a safety precaution.

If this is the first time you've seen this error screen,
restart the level. If problems continue, simply get good.

The timer has not been reset. You are wasting time
reading this message. GLHF ;)

--------   Technical information   --------
*** CALL STACK:
*** GO [dataloss+0x48f] character.(*Character).Step()
*** ---------------------------------------
*** PROGRAM_HALT (TIMER: %s)
*** ---------------------------------------`

type deathScene struct{}

func (s *deathScene) OnRegister() error {
	log.Debug("registered", "scene", Death)
	return nil
}

func (s *deathScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", Death)
	ctx.Presence.Send(ctx.Activity("dead... again"))
	return nil
}

func (s *deathScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	report := fmt.Sprintf(deathReport, formatClock(ctx.Elapsed()))
	drawLines(scr, 2, 1, strings.Split(report, "\n"), core.ColorHazard)
	scr.DrawTextColored(2, scr.Height()-2, ">> PRESS SPACE TO RETRY", core.ColorSelected)

	if ctx.Input.Has(core.ActionJump) || ctx.Input.Has(core.ActionConfirm) {
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
		return switchTo(InGame), nil
	}
	return stay(), nil
}

func (s *deathScene) OnFinish(bool) error {
	log.Debug("finished", "scene", Death)
	return nil
}
