package scenes

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
	"github.com/vovakirdan/dataloss/internal/sound"
)

func init() {
	all.Register(LevelSelect, func() Scene { return &levelSelectScene{} })
}

// levelSelectScene lists the unlocked levels: every completed one plus the
// next.
type levelSelectScene struct {
	menu    menu
	visible int
}

func (s *levelSelectScene) OnRegister() error {
	log.Debug("registered", "scene", LevelSelect)
	return nil
}

func (s *levelSelectScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", LevelSelect)
	ctx.Presence.Send(ctx.Activity("choosing a level"))

	s.visible = visibleLevels(ctx.Progress.Completed(), len(ctx.Levels))
	s.menu = menu{items: make([]string, 0, s.visible+1)}
	for i := 0; i < s.visible; i++ {
		entry := fmt.Sprintf("LEVEL %d  %-14s", i, ctx.Levels[i].Name)
		if best, ok := ctx.Progress.BestTime(i); ok {
			entry += " " + formatClock(best)
		} else {
			entry += " --:--"
		}
		s.menu.items = append(s.menu.items, entry)
	}
	s.menu.items = append(s.menu.items, "BACK TO MENU")
	return nil
}

func (s *levelSelectScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	drawFrame(scr, core.ColorDefault)
	drawTitle(scr, "Level Select")
	s.menu.draw(scr, 8, 5)
	if locked := len(ctx.Levels) - s.visible; locked > 0 {
		scr.DrawTextColored(8, 6+len(s.menu.items), fmt.Sprintf("(%d locked)", locked), core.ColorMuted)
	}
	drawHint(scr, "↑/↓ choose • enter play • esc back")

	if ctx.Input.Has(core.ActionBack) {
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
		return switchTo(MainMenu), nil
	}

	choice, chosen := s.menu.update(ctx.Input)
	if !chosen {
		return stay(), nil
	}
	ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
	if choice >= s.visible {
		return switchTo(MainMenu), nil
	}
	ctx.Flags.Send(engine.SwitchLevel{Index: choice})
	ctx.Flags.Send(engine.UpdateLevelStart{At: ctx.Now})
	return switchTo(InGame), nil
}

func (s *levelSelectScene) OnFinish(bool) error {
	log.Debug("finished", "scene", LevelSelect)
	s.menu = menu{}
	s.visible = 0
	return nil
}

// visibleLevels returns how many levels can be picked.
func visibleLevels(completed, total int) int {
	return min(completed+1, total)
}
