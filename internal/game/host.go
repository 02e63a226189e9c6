// Package game hosts the scene machine: it owns the levels, save data, run
// history, presence and sound, lends them to the active scene once per frame
// and applies the control flags the scene sends back.
package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/engine"
	"github.com/vovakirdan/dataloss/internal/level"
	"github.com/vovakirdan/dataloss/internal/presence"
	"github.com/vovakirdan/dataloss/internal/progress"
	"github.com/vovakirdan/dataloss/internal/scenes"
	"github.com/vovakirdan/dataloss/internal/sound"
)

// RunRecorder stores completed runs. *storage.Store implements it.
type RunRecorder interface {
	RecordRun(level int, player string, d time.Duration) (int64, error)
}

// Options configures a Host.
type Options struct {
	Config   *config.Config
	Levels   []*level.Level
	Initial  scenes.ID
	SavePath string          // Save file location; empty disables saving
	Player   string          // Recorded with each run
	Runs     RunRecorder     // Optional
	Presence presence.Sender // Optional, closed by Host.Close if it is a *presence.Publisher
	Sound    sound.Sink      // Optional
	Now      time.Time       // Start of the first level timer
}

// Host runs one game session.
type Host struct {
	machine *scenes.Machine
	cfg     *config.Config
	levels  []*level.Level

	savePath string
	player   string
	progress *progress.Data
	runs     RunRecorder
	presence presence.Sender
	sound    sound.Sink
	outbox   engine.Outbox

	currentLevel int
	levelStart   time.Time
	volume       float64
	lastFrame    time.Time
	quitting     bool
	logger       *log.Logger
}

// New creates a host. If the scene machine cannot be built, the host runs
// the error fallback machine instead.
func New(opts Options) *Host {
	h := &Host{
		cfg:        opts.Config,
		levels:     opts.Levels,
		savePath:   opts.SavePath,
		player:     opts.Player,
		runs:       opts.Runs,
		presence:   opts.Presence,
		sound:      opts.Sound,
		levelStart: opts.Now,
		volume:     opts.Config.Audio.Volume,
		logger:     log.Default().WithPrefix("host"),
	}
	if h.presence == nil {
		h.presence = presence.Nop{}
	}
	if h.sound == nil {
		h.sound = sound.Silent{}
	}

	if h.savePath != "" {
		h.progress = progress.Load(h.savePath)
	} else {
		h.progress = progress.New()
	}

	m, err := scenes.Build(opts.Initial)
	if err != nil {
		h.logger.Error("cannot build scene machine", "err", err)
		m = scenes.BuildFallback(err)
	}
	h.machine = m
	return h
}

// Frame runs one iteration of the active scene into scr and applies the
// flags it sent. An error is fatal for the session.
func (h *Host) Frame(scr *core.Screen, in core.InputFrame, now time.Time) error {
	var delta time.Duration
	if !h.lastFrame.IsZero() {
		delta = now.Sub(h.lastFrame)
	}
	h.lastFrame = now

	ctx := &engine.Context{
		Screen:       scr,
		Input:        in,
		Now:          now,
		Config:       h.cfg,
		Levels:       h.levels,
		CurrentLevel: h.currentLevel,
		LevelStart:   h.levelStart,
		Progress:     h.progress,
		Volume:       h.volume,
		Flags:        &h.outbox,
		Presence:     h.presence,
	}

	scr.Clear()
	err := h.machine.Run(delta, ctx)

	// Flags sent before a failure are still applied.
	for _, f := range h.outbox.Drain() {
		h.apply(f)
	}
	return err
}

func (h *Host) apply(f engine.ControlFlag) {
	h.logger.Debug("control flag", "flag", f)

	switch f := f.(type) {
	case engine.Quit:
		h.quitting = true

	case engine.SwitchLevel:
		if f.Index < 0 || f.Index >= len(h.levels) {
			h.logger.Warn("ignoring switch to unknown level", "index", f.Index, "levels", len(h.levels))
			return
		}
		h.currentLevel = f.Index

	case engine.UpdateLevelStart:
		h.levelStart = f.At

	case engine.SaveProgress:
		if h.savePath == "" {
			return
		}
		if err := h.progress.Save(h.savePath); err != nil {
			h.logger.Error("cannot save progress", "path", h.savePath, "err", err)
		}

	case engine.MaybeUpdateHighScore:
		if h.progress.MaybeWriteNewTime(f.Level, f.Time) {
			h.logger.Info("new best time", "level", f.Level, "time", f.Time)
		}
		if h.runs != nil {
			if _, err := h.runs.RecordRun(f.Level, h.player, f.Time); err != nil {
				h.logger.Warn("cannot record run", "err", err)
			}
		}

	case engine.SoundTrigger:
		h.sound.Play(f.Name, h.volume)

	case engine.SetVolume:
		h.volume = core.Clamp(f.Volume, 0, 1)
	}
}

// Quitting reports whether a scene asked to exit.
func (h *Host) Quitting() bool {
	return h.quitting
}

// Scene returns the active scene.
func (h *Host) Scene() scenes.ID {
	return h.machine.Current()
}

// CurrentLevel returns the index of the level being played.
func (h *Host) CurrentLevel() int {
	return h.currentLevel
}

// Volume returns the master volume.
func (h *Host) Volume() float64 {
	return h.volume
}

// Close finishes the active scene and shuts presence down.
func (h *Host) Close() error {
	err := h.machine.Stop()
	if c, ok := h.presence.(interface{ Close() }); ok {
		c.Close()
	}
	return err
}
