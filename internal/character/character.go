// Package character implements the player character and the per-frame
// physics/collision resolver that advances it against static level geometry.
package character

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/dataloss/internal/geom"
)

// State is the discrete movement state of the character.
type State int

const (
	Running State = iota
	Jumping
	Dashing
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Jumping:
		return "jumping"
	case Dashing:
		return "dashing"
	default:
		return "unknown"
	}
}

// MovementForce returns the constant force applied while in the given state.
func MovementForce(s State) mgl64.Vec2 {
	switch s {
	case Jumping:
		return mgl64.Vec2{10, -40}
	case Dashing:
		return mgl64.Vec2{30, -20}
	default:
		return mgl64.Vec2{10, 0}
	}
}

// Config holds the physical parameters of a character.
type Config struct {
	StartPosition mgl64.Vec2 // Spawn point in world units
	Size          mgl64.Vec2 // Bounding box width and height
	BaseVelocity  mgl64.Vec2 // Gravity added every tick
}

// DefaultConfig returns the stock character parameters.
func DefaultConfig() Config {
	return Config{
		StartPosition: mgl64.Vec2{0, -85},
		Size:          mgl64.Vec2{85, 100},
		BaseVelocity:  mgl64.Vec2{0, 2},
	}
}

// Character is the player-controlled runner.
// Position is the center of the bounding box.
type Character struct {
	StartPosition mgl64.Vec2
	Position      mgl64.Vec2
	Velocity      mgl64.Vec2
	MovementForce mgl64.Vec2
	BaseVelocity  mgl64.Vec2
	FallVelocity  mgl64.Vec2 // Gravity accumulated since the last ground contact
	Size          mgl64.Vec2

	state      State
	stateSince time.Time
	clock      func() time.Time
}

// New creates a character at its start position.
func New(cfg Config) *Character {
	c := &Character{
		StartPosition: cfg.StartPosition,
		BaseVelocity:  cfg.BaseVelocity,
		Size:          cfg.Size,
		clock:         time.Now,
	}
	c.Reset()
	return c
}

// SetClock replaces the time source used for state timestamps.
func (c *Character) SetClock(clock func() time.Time) {
	c.clock = clock
}

// State returns the current movement state.
func (c *Character) State() State {
	return c.state
}

// StateSince returns when the current state was entered.
func (c *Character) StateSince() time.Time {
	return c.stateSince
}

// RequestState applies an explicit state change and its movement force.
func (c *Character) RequestState(s State) {
	c.MovementForce = MovementForce(s)
	c.overrideState(s)
}

// overrideState changes the state tag without touching forces.
// Setting the current state again keeps the original timestamp.
func (c *Character) overrideState(s State) {
	if s == c.state {
		return
	}
	c.state = s
	c.stateSince = c.clock()
}

// Reset puts the character back at its start position, at rest and running.
func (c *Character) Reset() {
	c.Position = c.StartPosition
	c.Velocity = mgl64.Vec2{}
	c.MovementForce = mgl64.Vec2{}
	c.FallVelocity = mgl64.Vec2{}
	c.state = Running
	c.stateSince = c.clock()
}

// Bounds returns the bounding rectangle at the current position.
func (c *Character) Bounds() geom.Rect {
	return geom.CenteredRect(c.Position, c.Size)
}

// AnimationFrame picks a sprite frame from the time spent in the current state.
func (c *Character) AnimationFrame(fps float64, frames int) int {
	if frames <= 0 {
		return 0
	}
	elapsed := c.clock().Sub(c.stateSince).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed*fps) % frames
}
