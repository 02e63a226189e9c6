package fsm

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

type state int

const (
	stateA state = iota
	stateB
	stateC
)

// recordingScene logs every hook call into a shared journal.
type recordingScene struct {
	name    string
	journal *[]string
	next    Flag[state]
	failOn  string
}

func (s *recordingScene) hook(name string) error {
	*s.journal = append(*s.journal, s.name+"."+name)
	if s.failOn == name {
		return errors.New("boom")
	}
	return nil
}

func (s *recordingScene) OnRegister() error { return s.hook("register") }

func (s *recordingScene) OnFirstRun(ctx *int) error { return s.hook("first") }

func (s *recordingScene) Execute(_ time.Duration, ctx *int) (Flag[state], error) {
	*ctx++
	if err := s.hook("execute"); err != nil {
		return Continue[state](), err
	}
	flag := s.next
	s.next = Continue[state]()
	return flag, nil
}

func (s *recordingScene) OnFinish(interrupted bool) error {
	if interrupted {
		return s.hook("finish(interrupted)")
	}
	return s.hook("finish")
}

func newMachine(t *testing.T, journal *[]string) (*Machine[state, *int], map[state]*recordingScene) {
	t.Helper()
	m := New[state, *int](stateA)
	scenes := map[state]*recordingScene{
		stateA: {name: "a", journal: journal},
		stateB: {name: "b", journal: journal},
	}
	for _, id := range []state{stateA, stateB} {
		if err := m.Add(id, scenes[id]); err != nil {
			t.Fatalf("Add(%v) failed: %v", id, err)
		}
	}
	return m, scenes
}

func TestMachineLifecycleOrder(t *testing.T) {
	var journal []string
	m, scenes := newMachine(t, &journal)
	frames := 0

	scenes[stateA].next = SwitchTo(stateB)
	for i := 0; i < 3; i++ {
		if err := m.Run(time.Millisecond, &frames); err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
	}

	expected := []string{
		"a.register", "b.register",
		"a.first", "a.execute", "a.finish",
		"b.first", "b.execute",
		"b.execute",
	}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("journal = %v\nexpected  %v", journal, expected)
	}
	if m.Current() != stateB {
		t.Errorf("Current() = %v, expected stateB", m.Current())
	}
	if frames != 3 {
		t.Errorf("context was passed %d times, expected 3", frames)
	}
}

func TestMachineReentryRunsFirstRunAgain(t *testing.T) {
	var journal []string
	m, scenes := newMachine(t, &journal)
	frames := 0

	scenes[stateA].next = SwitchTo(stateB)
	m.Run(0, &frames)
	scenes[stateB].next = SwitchTo(stateA)
	m.Run(0, &frames)
	m.Run(0, &frames)

	count := 0
	for _, entry := range journal {
		if entry == "a.first" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("a.first ran %d times, expected 2", count)
	}
}

func TestMachineDuplicateState(t *testing.T) {
	var journal []string
	m, _ := newMachine(t, &journal)

	err := m.Add(stateA, &recordingScene{name: "dup", journal: &journal})
	if !errors.Is(err, ErrDuplicateState) {
		t.Errorf("Add() error = %v, expected ErrDuplicateState", err)
	}
}

func TestMachineUnknownTarget(t *testing.T) {
	var journal []string
	m, scenes := newMachine(t, &journal)
	frames := 0

	scenes[stateA].next = SwitchTo(stateC)
	err := m.Run(0, &frames)
	if !errors.Is(err, ErrUnknownState) {
		t.Errorf("Run() error = %v, expected ErrUnknownState", err)
	}
}

func TestMachineUnknownInitialState(t *testing.T) {
	m := New[state, *int](stateC)
	frames := 0

	if err := m.Run(0, &frames); !errors.Is(err, ErrUnknownState) {
		t.Errorf("Run() error = %v, expected ErrUnknownState", err)
	}
}

func TestMachineHookErrorsAreReturned(t *testing.T) {
	hooks := []string{"first", "execute"}
	for _, hook := range hooks {
		t.Run(hook, func(t *testing.T) {
			var journal []string
			m, scenes := newMachine(t, &journal)
			scenes[stateA].failOn = hook
			frames := 0

			if err := m.Run(0, &frames); err == nil {
				t.Errorf("Run() should fail when %s fails", hook)
			}
		})
	}

	t.Run("register", func(t *testing.T) {
		var journal []string
		m := New[state, *int](stateA)
		err := m.Add(stateA, &recordingScene{name: "a", journal: &journal, failOn: "register"})
		if err == nil {
			t.Error("Add() should fail when OnRegister fails")
		}
		if m.Has(stateA) {
			t.Error("failed registration should not add the scene")
		}
	})
}

func TestMachineInterruptAndStop(t *testing.T) {
	var journal []string
	m, _ := newMachine(t, &journal)
	frames := 0

	m.Run(0, &frames)
	if err := m.Interrupt(stateB); err != nil {
		t.Fatalf("Interrupt() failed: %v", err)
	}
	m.Run(0, &frames)
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	m.Run(0, &frames)

	expected := []string{
		"a.register", "b.register",
		"a.first", "a.execute", "a.finish(interrupted)",
		"b.first", "b.execute", "b.finish(interrupted)",
	}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("journal = %v\nexpected  %v", journal, expected)
	}
}
