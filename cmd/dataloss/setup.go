package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/level"
)

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagFPS > 0 {
		cfg.Game.FPS = flagFPS
	}
	if flagSave != "" {
		cfg.Paths.Save = flagSave
	}
	if flagDB != "" {
		cfg.Paths.DB = flagDB
	}
	if flagLevels != "" {
		cfg.Paths.Levels = flagLevels
	}

	cfg.Paths.Save = config.ExpandPath(cfg.Paths.Save)
	cfg.Paths.DB = config.ExpandPath(cfg.Paths.DB)
	cfg.Paths.Log = config.ExpandPath(cfg.Paths.Log)
	cfg.Paths.Levels = config.ExpandPath(cfg.Paths.Levels)
	return &cfg, nil
}

// loadLevels loads the configured level set.
func loadLevels(cfg *config.Config) ([]*level.Level, error) {
	levels, err := level.Open(cfg.Paths.Levels).LoadAll()
	if err != nil {
		return nil, err
	}
	log.Debug("levels loaded", "count", len(levels), "dir", cfg.Paths.Levels)
	return levels, nil
}

// setupLogger installs the default logger writing to w.
func setupLogger(w io.Writer) error {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetDefault(log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dataloss",
		Level:           lvl,
	}))
	return nil
}

// openLogFile opens the log file for appending, creating its directory.
// The alternate screen owns stdout while playing locally.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
