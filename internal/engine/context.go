package engine

import (
	"time"

	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/level"
	"github.com/vovakirdan/dataloss/internal/presence"
)

// Progress is the read-only view of the save data scenes may consult.
type Progress interface {
	BestTime(level int) (time.Duration, bool)
	Completed() int
}

// Context is lent to the active scene for one frame. Scenes must not keep
// it, or anything reachable from it, after the call returns.
type Context struct {
	Screen *core.Screen
	Input  core.InputFrame
	Now    time.Time

	Config *config.Config
	Levels []*level.Level

	CurrentLevel int
	LevelStart   time.Time
	Progress     Progress
	Volume       float64

	Flags    *Outbox
	Presence presence.Sender
}

// Level returns the current level.
func (c *Context) Level() *level.Level {
	return c.Levels[c.CurrentLevel]
}

// LastLevel reports whether the current level is the final one.
func (c *Context) LastLevel() bool {
	return c.CurrentLevel >= len(c.Levels)-1
}

// Elapsed returns the time spent on the current level.
func (c *Context) Elapsed() time.Duration {
	return c.Now.Sub(c.LevelStart)
}

// Activity builds a presence update carrying the game's branding.
func (c *Context) Activity(details string) presence.Activity {
	return presence.Activity{
		Details:    details,
		LargeImage: c.Config.Presence.LargeImage,
		LargeText:  c.Config.Game.Name,
	}
}
