// Package scenes implements every screen of the game as a state of an
// fsm.Machine. Each scene registers a factory in init(); Build constructs
// one instance of each and wires them into a machine.
package scenes

import (
	"fmt"

	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
	"github.com/vovakirdan/dataloss/internal/registry"
)

// ID identifies a scene.
type ID int

const (
	Loading ID = iota
	MainMenu
	InGame
	Pause
	HowToPlay
	Options
	Death
	Win
	NextLevel
	LevelSelect
	FsmError
)

// String returns the scene name.
func (id ID) String() string {
	switch id {
	case Loading:
		return "loading"
	case MainMenu:
		return "main-menu"
	case InGame:
		return "in-game"
	case Pause:
		return "pause"
	case HowToPlay:
		return "how-to-play"
	case Options:
		return "options"
	case Death:
		return "death"
	case Win:
		return "win"
	case NextLevel:
		return "next-level"
	case LevelSelect:
		return "level-select"
	case FsmError:
		return "fsm-error"
	default:
		return fmt.Sprintf("scene(%d)", int(id))
	}
}

// Scene is a screen driven by the machine.
type Scene = fsm.Scene[ID, *engine.Context]

// Machine sequences the scenes.
type Machine = fsm.Machine[ID, *engine.Context]

var all = registry.New[ID, Scene]("scene")

// Build creates one instance of every registered scene and returns a machine
// that starts in initial.
func Build(initial ID) (*Machine, error) {
	m := fsm.New[ID, *engine.Context](initial)
	for _, id := range all.IDs() {
		scene, err := all.Create(id)
		if err != nil {
			return nil, err
		}
		if err := m.Add(id, scene); err != nil {
			return nil, err
		}
	}
	if !m.Has(initial) {
		return nil, fmt.Errorf("scenes: initial scene %v: %w", initial, fsm.ErrUnknownState)
	}
	return m, nil
}

// BuildFallback returns a machine whose only scene reports cause.
// It is used when Build fails.
func BuildFallback(cause error) *Machine {
	m := fsm.New[ID, *engine.Context](FsmError)
	// fsmErrorScene.OnRegister cannot fail
	_ = m.Add(FsmError, &fsmErrorScene{cause: cause})
	return m
}

func stay() fsm.Flag[ID] {
	return fsm.Continue[ID]()
}

func switchTo(id ID) fsm.Flag[ID] {
	return fsm.SwitchTo(id)
}
