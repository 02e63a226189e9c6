// dataloss is a terminal platformer: a data packet runs right on its own and
// has to jump and dash its way across a corrupted disk.
//
// Usage:
//
//	dataloss [play]          - Play in this terminal (default)
//	dataloss levels          - List levels and best times
//	dataloss scores [level]  - Show the fastest recorded runs
//	dataloss serve           - Start SSH server for remote play
//	dataloss config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.dataloss/config.yaml)
//	--fps <rate>        - Frames per second
//	--save <path>       - Save file location
//	--db <path>         - Run history database
//	--levels <dir>      - Load levels from a directory instead of the built-in set
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSave     string
	flagDB       string
	flagLevels   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dataloss",
	Short: "Data Loss - a terminal platformer",
	Long: `Data Loss is a platformer for the terminal. Your packet runs on its
own; jump and dash over broken sectors and reach the end of every level.

Available commands:
  play     - Play in this terminal (default)
  levels   - List levels and best times
  scores   - Show the fastest recorded runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  dataloss
  dataloss play --fps 30
  dataloss scores 1
  dataloss serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frames per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagSave, "save", "", "Path to save file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with levels.json (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
