package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dataloss/internal/game"
	"github.com/vovakirdan/dataloss/internal/platform/tui"
	"github.com/vovakirdan/dataloss/internal/scenes"
	"github.com/vovakirdan/dataloss/internal/sound"
	"github.com/vovakirdan/dataloss/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in the current terminal.

Controls:
  Space        - Jump
  X/Shift+→    - Dash
  P/Esc        - Pause
  ↑↓/Enter     - Menus
  Ctrl+C       - Quit

Progress is saved to ~/.dataloss/savegame.json and every finished level is
recorded in the run history (see 'dataloss scores').

Examples:
  dataloss play
  dataloss play --fps 30 --mute
  dataloss play --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Do not ring the terminal bell")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Do not ring the terminal bell")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if cfg.Paths.Log != "" {
		logFile, err := openLogFile(cfg.Paths.Log)
		if err != nil {
			return err
		}
		defer logFile.Close()
		logOut = logFile
	}
	if err := setupLogger(logOut); err != nil {
		return err
	}

	levels, err := loadLevels(cfg)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	opts := game.Options{
		Config:   cfg,
		Levels:   levels,
		Initial:  scenes.Loading,
		SavePath: cfg.Paths.Save,
		Player:   playerName(),
		Presence: game.StartPresence(cfg.Presence),
		Sound:    sound.NewBell(os.Stdout),
		Now:      time.Now(),
	}
	if flagMute {
		opts.Sound = sound.Silent{}
	}

	// The game runs without history if the database is unavailable.
	store, err := storage.Open(cfg.Paths.DB)
	if err != nil {
		log.Warn("could not open run history", "path", cfg.Paths.DB, "err", err)
	} else {
		defer store.Close()
		opts.Runs = store
	}

	log.Info("starting", "levels", len(levels), "fps", cfg.Game.FPS, "size", [2]int{width, height})
	return tui.Run(game.New(opts), tui.Options{
		Width:  width,
		Height: height,
		FPS:    cfg.Game.FPS,
	})
}

// playerName names the local player in the run history.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
