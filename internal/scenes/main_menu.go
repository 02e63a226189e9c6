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
	all.Register(MainMenu, func() Scene { return newMainMenuScene() })
}

const (
	mainMenuStart = iota
	mainMenuLevelSelect
	mainMenuHowToPlay
	mainMenuOptions
	mainMenuQuit
)

type mainMenuScene struct {
	menu menu
}

func newMainMenuScene() *mainMenuScene {
	return &mainMenuScene{
		menu: menu{items: []string{"START GAME", "LEVEL SELECT", "HOW TO PLAY", "OPTIONS", "QUIT"}},
	}
}

func (s *mainMenuScene) OnRegister() error {
	log.Debug("registered", "scene", MainMenu)
	return nil
}

func (s *mainMenuScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", MainMenu)
	ctx.Presence.Send(ctx.Activity("main menu"))
	return nil
}

func (s *mainMenuScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	scr := ctx.Screen
	top := scr.Height()/2 - len(logo) - 3
	for i, line := range logo {
		scr.DrawTextCentered(top+i, line, core.ColorTitle)
	}
	s.menu.draw(scr, scr.Width()/2-7, top+len(logo)+3)
	drawHint(scr, "↑/↓ choose • enter select")

	choice, chosen := s.menu.update(ctx.Input)
	if !chosen {
		return stay(), nil
	}

	ctx.Flags.Send(engine.SoundTrigger{Name: sound.ButtonPress})
	switch choice {
	case mainMenuStart:
		ctx.Flags.Send(engine.UpdateLevelStart{At: ctx.Now})
		return switchTo(InGame), nil
	case mainMenuLevelSelect:
		return switchTo(LevelSelect), nil
	case mainMenuHowToPlay:
		return switchTo(HowToPlay), nil
	case mainMenuOptions:
		return switchTo(Options), nil
	default:
		ctx.Flags.Send(engine.Quit{})
		return stay(), nil
	}
}

func (s *mainMenuScene) OnFinish(bool) error {
	log.Debug("finished", "scene", MainMenu)
	s.menu.cursor = 0
	return nil
}
