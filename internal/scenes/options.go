package scenes

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
	"github.com/vovakirdan/dataloss/internal/sound"
)

func init() {
	all.Register(Options, func() Scene { return &optionsScene{} })
}

const volumeStep = 0.1

type optionsScene struct{}

func (s *optionsScene) OnRegister() error {
	log.Debug("registered", "scene", Options)
	return nil
}

func (s *optionsScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", Options)
	ctx.Presence.Send(ctx.Activity("tweaking options"))
	return nil
}

func (s *optionsScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	drawFrame(scr, core.ColorDefault)
	drawTitle(scr, "Options")
	scr.DrawTextColored(8, 6, ">> The game controls YOU", core.ColorMuted)
	scr.DrawTextColored(8, 9, "VOLUME  "+volumeBar(ctx.Volume), core.ColorDefault)
	scr.DrawTextColored(3, scr.Height()-3, ">> BACK TO MENU", core.ColorSelected)
	drawHint(scr, "←/→ volume • esc back")

	switch {
	case ctx.Input.Has(core.ActionLeft):
		ctx.Flags.Send(engine.SetVolume{Volume: stepVolume(ctx.Volume, -volumeStep)})
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
	case ctx.Input.Has(core.ActionRight):
		ctx.Flags.Send(engine.SetVolume{Volume: stepVolume(ctx.Volume, volumeStep)})
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
	case ctx.Input.Has(core.ActionBack), ctx.Input.Has(core.ActionConfirm):
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
		return switchTo(MainMenu), nil
	}
	return stay(), nil
}

func (s *optionsScene) OnFinish(bool) error {
	log.Debug("finished", "scene", Options)
	return nil
}

// stepVolume moves v by delta, rounded to a tenth and clamped to [0, 1].
func stepVolume(v, delta float64) float64 {
	v = math.Round((v+delta)*10) / 10
	return core.Clamp(v, 0, 1)
}

func volumeBar(v float64) string {
	n := int(math.Round(v * 10))
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("■", n), strings.Repeat(" ", 10-n), n*10)
}
