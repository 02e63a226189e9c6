package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the built-in configuration.
// It matches defaults/config.yaml.
func Default() Config {
	return Config{
		Game: GameConfig{
			Name: "Data Loss",
			FPS:  60,
		},
		Physics: PhysicsConfig{
			StartX:    0,
			StartY:    -85,
			Width:     85,
			Height:    100,
			Gravity:   2,
			FallLimit: 600,
		},
		World: WorldConfig{
			XOffset: 0,
		},
		Render: RenderConfig{
			UnitsPerCol:  20,
			UnitsPerRow:  40,
			CameraLead:   0.25,
			AnimationFPS: 8,
		},
		Timing: TimingConfig{
			Splash: 2 * time.Second,
		},
		Audio: AudioConfig{
			Volume: 0.5,
		},
		Presence: PresenceConfig{
			Enabled:        true,
			Client:         PresenceStatusFile,
			StatusFile:     "~/.dataloss/presence.json",
			ConnectTimeout: 2 * time.Second,
			LargeImage:     "game-logo-small",
		},
		Paths: PathsConfig{
			Save: "~/.dataloss/savegame.json",
			DB:   "~/.dataloss/runs.db",
			Log:  "~/.dataloss/dataloss.log",
		},
	}
}
