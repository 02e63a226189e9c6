// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the complete game configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Physics  PhysicsConfig  `yaml:"physics"`
	World    WorldConfig    `yaml:"world"`
	Render   RenderConfig   `yaml:"render"`
	Timing   TimingConfig   `yaml:"timing"`
	Audio    AudioConfig    `yaml:"audio"`
	Presence PresenceConfig `yaml:"presence"`
	Paths    PathsConfig    `yaml:"paths"`
}

// GameConfig holds general settings.
type GameConfig struct {
	Name string `yaml:"name"`
	FPS  int    `yaml:"fps"`
}

// PhysicsConfig defines the character body and gravity.
type PhysicsConfig struct {
	StartX    float64 `yaml:"start_x"`
	StartY    float64 `yaml:"start_y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Gravity   float64 `yaml:"gravity"`    // Added to the fall velocity every tick
	FallLimit float64 `yaml:"fall_limit"` // World Y below which the character dies; 0 disables
}

// WorldConfig positions level geometry in world space.
type WorldConfig struct {
	XOffset float64 `yaml:"x_offset"`
}

// RenderConfig maps world units to terminal cells.
type RenderConfig struct {
	UnitsPerCol  float64 `yaml:"units_per_col"`
	UnitsPerRow  float64 `yaml:"units_per_row"`
	CameraLead   float64 `yaml:"camera_lead"` // Fraction of the screen width left of the player
	AnimationFPS float64 `yaml:"animation_fps"`
}

// TimingConfig holds scene durations.
type TimingConfig struct {
	Splash time.Duration `yaml:"splash"`
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Volume float64 `yaml:"volume"` // 0.0 - 1.0
}

// PresenceConfig controls the rich presence publisher.
type PresenceConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Client         string        `yaml:"client"` // "status" or "log"
	StatusFile     string        `yaml:"status_file"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	LargeImage     string        `yaml:"large_image"`
}

// PathsConfig holds file locations. A leading ~ expands to the home directory.
type PathsConfig struct {
	Save   string `yaml:"save"`
	DB     string `yaml:"db"`
	Log    string `yaml:"log"`
	Levels string `yaml:"levels"` // Directory replacing the embedded levels
}

// Presence client names.
const (
	PresenceStatusFile = "status"
	PresenceLog        = "log"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("config: invalid")

// Validate checks that values are usable.
func (c Config) Validate() error {
	switch {
	case c.Game.FPS <= 0:
		return fmt.Errorf("%w: game.fps must be positive, got %d", ErrInvalid, c.Game.FPS)
	case c.Physics.Width <= 0 || c.Physics.Height <= 0:
		return fmt.Errorf("%w: physics.width and physics.height must be positive", ErrInvalid)
	case c.Render.UnitsPerCol <= 0 || c.Render.UnitsPerRow <= 0:
		return fmt.Errorf("%w: render units per cell must be positive", ErrInvalid)
	case c.Render.CameraLead < 0 || c.Render.CameraLead > 1:
		return fmt.Errorf("%w: render.camera_lead must be within [0, 1]", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0, 1]", ErrInvalid)
	}

	if c.Presence.Enabled {
		switch c.Presence.Client {
		case PresenceStatusFile, PresenceLog:
		default:
			return fmt.Errorf("%w: unknown presence client %q", ErrInvalid, c.Presence.Client)
		}
	}
	return nil
}
