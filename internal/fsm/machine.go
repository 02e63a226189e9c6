// Package fsm provides a frame-driven finite state machine over scenes.
//
// Exactly one scene is active at a time. Each frame the machine runs the
// active scene's Execute hook, which either stays or asks to switch to any
// other registered scene. There is no transition table.
package fsm

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDuplicateState is returned when a state id is registered twice.
	ErrDuplicateState = errors.New("fsm: state already registered")

	// ErrUnknownState is returned when switching to an unregistered state.
	ErrUnknownState = errors.New("fsm: unknown state")
)

// Flag is the transition decision returned by Execute.
type Flag[S comparable] struct {
	target    S
	switching bool
}

// Continue keeps the current scene active.
func Continue[S comparable]() Flag[S] {
	return Flag[S]{}
}

// SwitchTo requests a transition to target.
func SwitchTo[S comparable](target S) Flag[S] {
	return Flag[S]{target: target, switching: true}
}

// Target returns the requested state and whether a switch was requested.
func (f Flag[S]) Target() (S, bool) {
	return f.target, f.switching
}

// Scene is one state of the machine. C is the per-frame context the host
// lends to the active scene; scenes must not keep it between calls.
type Scene[S comparable, C any] interface {
	// OnRegister runs once when the scene is added to the machine.
	OnRegister() error

	// OnFirstRun runs once each time the state is entered.
	OnFirstRun(ctx C) error

	// Execute runs every frame while the state is active.
	Execute(delta time.Duration, ctx C) (Flag[S], error)

	// OnFinish runs once each time the state is left. interrupted is true
	// when the exit was forced by the host rather than requested by Execute.
	OnFinish(interrupted bool) error
}

// Machine drives one active scene at a time.
type Machine[S comparable, C any] struct {
	scenes  map[S]Scene[S, C]
	current S
	entered bool // OnFirstRun has run for current
	stopped bool
}

// New creates a machine whose first active state is initial.
func New[S comparable, C any](initial S) *Machine[S, C] {
	return &Machine[S, C]{
		scenes:  make(map[S]Scene[S, C]),
		current: initial,
	}
}

// Add registers a scene under id and runs its OnRegister hook.
func (m *Machine[S, C]) Add(id S, scene Scene[S, C]) error {
	if _, exists := m.scenes[id]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateState, id)
	}
	if err := scene.OnRegister(); err != nil {
		return fmt.Errorf("fsm: registering %v: %w", id, err)
	}
	m.scenes[id] = scene
	return nil
}

// Current returns the active state.
func (m *Machine[S, C]) Current() S {
	return m.current
}

// Has reports whether id is registered.
func (m *Machine[S, C]) Has(id S) bool {
	_, ok := m.scenes[id]
	return ok
}

// Run executes one frame of the active scene and applies its transition.
func (m *Machine[S, C]) Run(delta time.Duration, ctx C) error {
	if m.stopped {
		return nil
	}

	scene, ok := m.scenes[m.current]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownState, m.current)
	}

	if !m.entered {
		if err := scene.OnFirstRun(ctx); err != nil {
			return fmt.Errorf("fsm: entering %v: %w", m.current, err)
		}
		m.entered = true
	}

	flag, err := scene.Execute(delta, ctx)
	if err != nil {
		return fmt.Errorf("fsm: executing %v: %w", m.current, err)
	}

	target, switching := flag.Target()
	if !switching {
		return nil
	}
	return m.leave(target, false)
}

// Interrupt forces the active scene to finish and makes target active.
func (m *Machine[S, C]) Interrupt(target S) error {
	return m.leave(target, true)
}

// Stop finishes the active scene and halts the machine.
func (m *Machine[S, C]) Stop() error {
	if m.stopped {
		return nil
	}
	m.stopped = true
	if !m.entered {
		return nil
	}
	m.entered = false
	scene, ok := m.scenes[m.current]
	if !ok {
		return nil
	}
	if err := scene.OnFinish(true); err != nil {
		return fmt.Errorf("fsm: finishing %v: %w", m.current, err)
	}
	return nil
}

func (m *Machine[S, C]) leave(target S, interrupted bool) error {
	if _, ok := m.scenes[target]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownState, target)
	}

	if m.entered {
		if scene, ok := m.scenes[m.current]; ok {
			if err := scene.OnFinish(interrupted); err != nil {
				return fmt.Errorf("fsm: finishing %v: %w", m.current, err)
			}
		}
	}

	m.current = target
	m.entered = false
	return nil
}
