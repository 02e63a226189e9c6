package scenes

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/dataloss/internal/character"
	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/fsm"
	"github.com/vovakirdan/dataloss/internal/sound"
)

func init() {
	all.Register(InGame, func() Scene { return &inGameScene{levelIdx: -1} })
}

// inGameScene runs the platformer.
//
// A run is identified by the current level and its start time. Entering the
// scene with the same pair as before (coming back from the pause screen)
// resumes the character where it was; anything else starts over.
type inGameScene struct {
	player     *character.Character
	now        time.Time
	levelIdx   int
	levelStart time.Time
	playerDead bool
	lastReport character.Report
}

func (s *inGameScene) OnRegister() error {
	log.Debug("registered", "scene", InGame)
	return nil
}

func (s *inGameScene) OnFirstRun(ctx *engine.Context) error {
	log.Debug("entering", "scene", InGame, "level", ctx.CurrentLevel)
	s.now = ctx.Now

	if ctx.CurrentLevel < 0 || ctx.CurrentLevel >= len(ctx.Levels) {
		return fmt.Errorf("scenes: level %d out of range (%d levels)", ctx.CurrentLevel, len(ctx.Levels))
	}

	if s.player == nil {
		s.player = character.New(characterConfig(ctx.Config.Physics))
		s.player.SetClock(func() time.Time { return s.now })
	}

	resuming := s.levelIdx == ctx.CurrentLevel && s.levelStart.Equal(ctx.LevelStart)
	if !resuming {
		s.levelIdx = ctx.CurrentLevel
		s.levelStart = ctx.LevelStart
		s.player.Reset()
		s.player.RequestState(character.Running)
	}
	s.playerDead = false

	a := ctx.Activity(fmt.Sprintf("LVL %d", ctx.CurrentLevel))
	a.Start = ctx.LevelStart
	ctx.Presence.Send(a)
	return nil
}

func (s *inGameScene) Execute(_ time.Duration, ctx *engine.Context) (fsm.Flag[ID], error) {
	s.now = ctx.Now
	in := ctx.Input

	if in.Has(core.ActionPause) {
		return switchTo(Pause), nil
	}

	switch {
	case in.Has(core.ActionDash) && s.player.State() != character.Dashing:
		s.player.RequestState(character.Dashing)
	case in.Has(core.ActionJump) && s.player.State() == character.Running:
		s.player.RequestState(character.Jumping)
	}

	lvl := ctx.Level()
	xOffset := ctx.Config.World.XOffset
	s.lastReport = s.player.Step(lvl.Geometry(xOffset, ctx.Config.Physics.FallLimit))
	if s.lastReport.Dead() {
		log.Debug("player died", "level", ctx.CurrentLevel, "cause", s.lastReport.Cause, "x", s.player.Position.X())
		s.playerDead = true
	}

	s.render(ctx)

	if s.playerDead {
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.Death})
		return switchTo(Death), nil
	}

	if lvl.Won(s.player.Position.X(), xOffset) {
		log.Info("level complete", "level", ctx.CurrentLevel, "time", ctx.Elapsed())
		ctx.Flags.Send(engine.SoundTrigger{Name: sound.LevelComplete})
		ctx.Flags.Send(engine.MaybeUpdateHighScore{Level: ctx.CurrentLevel, Time: ctx.Elapsed()})
		ctx.Flags.Send(engine.SaveProgress{})
		if ctx.LastLevel() {
			return switchTo(Win), nil
		}
		ctx.Flags.Send(engine.SwitchLevel{Index: ctx.CurrentLevel + 1})
		return switchTo(NextLevel), nil
	}

	return stay(), nil
}

func (s *inGameScene) OnFinish(bool) error {
	log.Debug("finished", "scene", InGame)
	if s.playerDead {
		s.playerDead = false
		s.player.Reset()
		s.player.RequestState(character.Running)
	}
	return nil
}

func (s *inGameScene) render(ctx *engine.Context) {
	scr := ctx.Screen
	lvl := ctx.Level()
	cfg := ctx.Config

	cam := newCamera(cfg.Render, scr, s.player.Position.X())
	drawWorld(scr, cam, lvl, lvl.Offset(cfg.World.XOffset), s.player, cfg.Render.AnimationFPS)

	hud := fmt.Sprintf(" LVL %d %s   TIME %s", ctx.CurrentLevel, lvl.Name, formatClock(ctx.Elapsed()))
	if best, ok := ctx.Progress.BestTime(ctx.CurrentLevel); ok {
		hud += "   BEST " + formatClock(best)
	}
	scr.DrawTextColored(0, 0, hud, core.ColorTitle)

	status := s.player.State().String()
	if s.lastReport.Blocked {
		status = "blocked"
	}
	scr.DrawTextColored(scr.Width()-len(status)-1, 0, status, core.ColorMuted)
}

// characterConfig converts the physics settings to a character body.
func characterConfig(p config.PhysicsConfig) character.Config {
	return character.Config{
		StartPosition: mgl64.Vec2{p.StartX, p.StartY},
		Size:          mgl64.Vec2{p.Width, p.Height},
		BaseVelocity:  mgl64.Vec2{0, p.Gravity},
	}
}
