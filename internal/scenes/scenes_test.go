package scenes

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
	"github.com/vovakirdan/dataloss/internal/geom"
	"github.com/vovakirdan/dataloss/internal/level"
	"github.com/vovakirdan/dataloss/internal/presence"
	"github.com/vovakirdan/dataloss/internal/progress"
)

const frameDelta = time.Second / 60

type recordingPresence struct {
	activities []presence.Activity
}

func (r *recordingPresence) Send(a presence.Activity) {
	r.activities = append(r.activities, a)
}

// flatLevel is a long floor with the win line at winX.
func flatLevel(name string, winX float64) *level.Level {
	return &level.Level{
		Name:      name,
		Colliders: []geom.Rect{{X: -1000, Y: 365, Width: 100000, Height: 35}},
		Zones:     level.Zones{Win: geom.Rect{X: winX, Y: 0, Width: 10, Height: 400}},
	}
}

// pitLevel has nothing to stand on.
func pitLevel() *level.Level {
	return &level.Level{
		Name:  "pit",
		Zones: level.Zones{Win: geom.Rect{X: 100000, Y: 0, Width: 10, Height: 400}},
	}
}

// harness drives a machine the way the host does, applying the flags that
// change the context.
type harness struct {
	t        *testing.T
	m        *Machine
	ctx      *engine.Context
	presence *recordingPresence
	flags    []engine.ControlFlag
}

func newHarness(t *testing.T, m *Machine, levels ...*level.Level) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Timing.Splash = 100 * time.Millisecond
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := &recordingPresence{}
	return &harness{
		t: t,
		m: m,
		ctx: &engine.Context{
			Screen:     core.NewScreen(80, 24),
			Input:      core.NewInputFrame(),
			Now:        now,
			Config:     &cfg,
			Levels:     levels,
			LevelStart: now,
			Progress:   progress.New(),
			Volume:     0.5,
			Flags:      &engine.Outbox{},
			Presence:   rec,
		},
		presence: rec,
	}
}

// frame runs one machine iteration with the given actions pressed.
func (h *harness) frame(actions ...core.Action) {
	h.t.Helper()
	h.ctx.Input = core.NewInputFrame()
	for _, a := range actions {
		h.ctx.Input.Set(a)
	}
	if len(actions) > 0 {
		h.ctx.Input.Set(core.ActionAnyKey)
	}
	h.ctx.Screen.Clear()

	if err := h.m.Run(frameDelta, h.ctx); err != nil {
		h.t.Fatalf("Run() failed in %v: %v", h.m.Current(), err)
	}

	h.flags = h.ctx.Flags.Drain()
	for _, f := range h.flags {
		switch f := f.(type) {
		case engine.SwitchLevel:
			h.ctx.CurrentLevel = f.Index
		case engine.UpdateLevelStart:
			h.ctx.LevelStart = f.At
		case engine.SetVolume:
			h.ctx.Volume = f.Volume
		}
	}
	h.ctx.Now = h.ctx.Now.Add(frameDelta)
}

func (h *harness) expectScene(id ID) {
	h.t.Helper()
	if h.m.Current() != id {
		h.t.Fatalf("current scene = %v, expected %v", h.m.Current(), id)
	}
}

func (h *harness) sent(match func(engine.ControlFlag) bool) bool {
	for _, f := range h.flags {
		if match(f) {
			return true
		}
	}
	return false
}

func build(t *testing.T, initial ID) *Machine {
	t.Helper()
	m, err := Build(initial)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return m
}

func TestBuildRegistersEveryScene(t *testing.T) {
	m := build(t, Loading)
	for _, id := range []ID{Loading, MainMenu, InGame, Pause, HowToPlay, Options, Death, Win, NextLevel, LevelSelect} {
		if !m.Has(id) {
			t.Errorf("scene %v is not registered", id)
		}
	}
	if m.Has(FsmError) {
		t.Error("the error scene belongs to the fallback machine only")
	}
}

func TestBuildUnknownInitial(t *testing.T) {
	if _, err := Build(FsmError); err == nil {
		t.Error("Build() should fail for an unregistered initial scene")
	}
}

func TestFallbackMachine(t *testing.T) {
	h := newHarness(t, BuildFallback(errors.New("texture missing")), flatLevel("a", 1000))

	h.frame()
	h.expectScene(FsmError)
	if h.sent(func(f engine.ControlFlag) bool { _, ok := f.(engine.Quit); return ok }) {
		t.Fatal("fallback should wait for a key")
	}

	found := false
	for y := 0; y < h.ctx.Screen.Height(); y++ {
		if strings.Contains(h.ctx.Screen.Row(y), "texture missing") {
			found = true
		}
	}
	if !found {
		t.Error("fallback screen should show the error")
	}

	h.frame(core.ActionConfirm)
	if !h.sent(func(f engine.ControlFlag) bool { _, ok := f.(engine.Quit); return ok }) {
		t.Error("any key should emit Quit")
	}
}

func TestLoadingTimesOut(t *testing.T) {
	h := newHarness(t, build(t, Loading), flatLevel("a", 1000))

	h.frame()
	h.expectScene(Loading)
	for i := 0; i < 10; i++ {
		h.frame()
	}
	h.expectScene(MainMenu)
	if len(h.presence.activities) == 0 || h.presence.activities[0].Details != "booting" {
		t.Errorf("presence = %+v", h.presence.activities)
	}
}

func TestLoadingSkipsOnKey(t *testing.T) {
	h := newHarness(t, build(t, Loading), flatLevel("a", 1000))
	h.frame(core.ActionJump)
	h.expectScene(MainMenu)
}

func TestMainMenuStartsGame(t *testing.T) {
	h := newHarness(t, build(t, MainMenu), flatLevel("a", 1000))

	h.frame(core.ActionConfirm)
	h.expectScene(InGame)
	if !h.sent(func(f engine.ControlFlag) bool { _, ok := f.(engine.UpdateLevelStart); return ok }) {
		t.Error("starting a game should reset the level timer")
	}
}

func TestMainMenuNavigation(t *testing.T) {
	tests := []struct {
		downs  int
		target ID
	}{
		{1, LevelSelect},
		{2, HowToPlay},
		{3, Options},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			h := newHarness(t, build(t, MainMenu), flatLevel("a", 1000))
			for i := 0; i < tt.downs; i++ {
				h.frame(core.ActionDown)
			}
			h.frame(core.ActionConfirm)
			h.expectScene(tt.target)

			h.frame(core.ActionBack)
			h.expectScene(MainMenu)
		})
	}
}

func TestMainMenuQuit(t *testing.T) {
	h := newHarness(t, build(t, MainMenu), flatLevel("a", 1000))
	h.frame(core.ActionUp) // wraps to QUIT
	h.frame(core.ActionConfirm)
	if !h.sent(func(f engine.ControlFlag) bool { _, ok := f.(engine.Quit); return ok }) {
		t.Error("QUIT should emit Quit")
	}
}

func TestInGamePauseResumeKeepsCharacter(t *testing.T) {
	scene := &inGameScene{levelIdx: -1}
	h := newHarness(t, machineWith(t, InGame, map[ID]Scene{InGame: scene, Pause: &pauseScene{menu: menu{items: []string{"RESUME", "MAIN MENU"}}}}), flatLevel("a", 100000))

	for i := 0; i < 10; i++ {
		h.frame()
	}
	before := scene.player.Position.X()
	if before <= 0 {
		t.Fatalf("player did not run: x=%v", before)
	}

	h.frame(core.ActionPause)
	h.expectScene(Pause)
	h.frame()
	h.frame(core.ActionPause)
	h.expectScene(InGame)

	h.frame()
	if x := scene.player.Position.X(); x <= before {
		t.Errorf("resume restarted the run: x=%v, before pause x=%v", x, before)
	}
}

func TestInGameDeathAndRetry(t *testing.T) {
	scene := &inGameScene{levelIdx: -1}
	h := newHarness(t, machineWith(t, InGame, map[ID]Scene{InGame: scene, Death: &deathScene{}}), pitLevel())
	start := h.ctx.LevelStart

	for i := 0; i < 100 && h.m.Current() == InGame; i++ {
		h.frame()
	}
	h.expectScene(Death)
	if !h.sent(func(f engine.ControlFlag) bool {
		s, ok := f.(engine.SoundTrigger)
		return ok && s.Name == "death"
	}) {
		t.Error("dying should trigger the death sound")
	}
	if scene.player.Position != scene.player.StartPosition {
		t.Error("leaving after a death should reset the character")
	}

	h.frame(core.ActionJump)
	h.expectScene(InGame)
	if !h.sent(func(f engine.ControlFlag) bool {
		s, ok := f.(engine.SoundTrigger)
		return ok && s.Name == "button-press"
	}) {
		t.Error("retry should trigger the button sound")
	}
	if !h.ctx.LevelStart.Equal(start) {
		t.Error("retry must not reset the level timer")
	}
}

func TestInGameWinAdvancesLevel(t *testing.T) {
	h := newHarness(t, build(t, InGame), flatLevel("a", 50), flatLevel("b", 50))
	h.ctx.Now = h.ctx.Now.Add(42 * time.Second)

	for i := 0; i < 20 && h.m.Current() == InGame; i++ {
		h.frame()
	}
	h.expectScene(NextLevel)

	var order []string
	for _, f := range h.flags {
		switch f := f.(type) {
		case engine.MaybeUpdateHighScore:
			if f.Level != 0 || f.Time < 42*time.Second {
				t.Errorf("high score flag = %v", f)
			}
			order = append(order, "score")
		case engine.SaveProgress:
			order = append(order, "save")
		case engine.SwitchLevel:
			if f.Index != 1 {
				t.Errorf("SwitchLevel(%d), expected 1", f.Index)
			}
			order = append(order, "switch")
		}
	}
	if len(order) != 3 || order[0] != "score" || order[1] != "save" || order[2] != "switch" {
		t.Errorf("flag order = %v", order)
	}
	if h.ctx.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, expected 1", h.ctx.CurrentLevel)
	}

	h.frame(core.ActionConfirm)
	h.expectScene(InGame)
	if !h.sent(func(f engine.ControlFlag) bool { _, ok := f.(engine.UpdateLevelStart); return ok }) {
		t.Error("next level should reset the level timer")
	}
}

func TestInGameWinOnLastLevel(t *testing.T) {
	h := newHarness(t, build(t, InGame), flatLevel("only", 50))

	for i := 0; i < 20 && h.m.Current() == InGame; i++ {
		h.frame()
	}
	h.expectScene(Win)
	if h.sent(func(f engine.ControlFlag) bool { _, ok := f.(engine.SwitchLevel); return ok }) {
		t.Error("the last level has no next level to switch to")
	}

	h.frame(core.ActionConfirm)
	h.expectScene(MainMenu)
	if !h.sent(func(f engine.ControlFlag) bool { s, ok := f.(engine.SwitchLevel); return ok && s.Index == 0 }) {
		t.Error("leaving the win screen should switch back to level 0")
	}
}

func TestInGameRejectsBadLevel(t *testing.T) {
	h := newHarness(t, build(t, InGame))
	if err := h.m.Run(frameDelta, h.ctx); err == nil {
		t.Error("entering the game without levels should fail")
	}
}

func TestLevelSelect(t *testing.T) {
	levels := []*level.Level{flatLevel("a", 1000), flatLevel("b", 1000), flatLevel("c", 1000)}
	h := newHarness(t, build(t, LevelSelect), levels...)
	p := progress.New()
	p.MaybeWriteNewTime(0, 30*time.Second)
	h.ctx.Progress = p

	h.frame()

	// Levels 0 and 1 are visible, then BACK TO MENU.
	h.frame(core.ActionDown)
	h.frame(core.ActionConfirm)
	h.expectScene(InGame)

	var sawSound, sawSwitch, sawStart bool
	for _, f := range h.flags {
		switch f := f.(type) {
		case engine.SoundTrigger:
			sawSound = true
		case engine.SwitchLevel:
			sawSwitch = f.Index == 1
		case engine.UpdateLevelStart:
			sawStart = true
		}
	}
	if !sawSound || !sawSwitch || !sawStart {
		t.Errorf("flags = %v", h.flags)
	}
}

func TestVisibleLevels(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 3, 1},
		{1, 3, 2},
		{3, 3, 3},
		{5, 3, 3},
	}
	for _, tt := range tests {
		if got := visibleLevels(tt.completed, tt.total); got != tt.want {
			t.Errorf("visibleLevels(%d, %d) = %d, expected %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestOptionsVolume(t *testing.T) {
	h := newHarness(t, build(t, Options), flatLevel("a", 1000))
	h.ctx.Volume = 0.9

	h.frame(core.ActionRight)
	h.frame(core.ActionRight)
	if h.ctx.Volume != 1 {
		t.Errorf("Volume = %v, expected clamp at 1", h.ctx.Volume)
	}

	for i := 0; i < 15; i++ {
		h.frame(core.ActionLeft)
	}
	if h.ctx.Volume != 0 {
		t.Errorf("Volume = %v, expected clamp at 0", h.ctx.Volume)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}

func machineWith(t *testing.T, initial ID, scenes map[ID]Scene) *Machine {
	t.Helper()
	m := fsm.New[ID, *engine.Context](initial)
	for id, s := range scenes {
		if err := m.Add(id, s); err != nil {
			t.Fatalf("Add(%v) failed: %v", id, err)
		}
	}
	return m
}
