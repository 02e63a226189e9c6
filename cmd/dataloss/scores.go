package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dataloss/internal/platform/tui"
	"github.com/vovakirdan/dataloss/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the fastest recorded runs",
	Long: `Display the fastest runs from the history database.

In a terminal this opens an interactive board; tab switches levels.
With --plain, or when output is not a terminal, the top runs of one level
are printed instead.

Examples:
  dataloss scores
  dataloss scores 2 --plain
  dataloss scores 0 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print instead of opening the board")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs of the level")
}

func runScores(cmd *cobra.Command, args []string) error {
	if err := setupLogger(cmd.ErrOrStderr()); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	levels, err := loadLevels(cfg)
	if err != nil {
		return err
	}

	lvl := 0
	if len(args) == 1 {
		lvl, err = strconv.Atoi(args[0])
		if err != nil || lvl < 0 || lvl >= len(levels) {
			return fmt.Errorf("unknown level %q (run 'dataloss levels' to list them)", args[0])
		}
	}

	store, err := storage.Open(cfg.Paths.DB)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(lvl); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared runs of level %d %s.\n", lvl, levels[lvl].Name)
		return nil
	}

	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		return tui.ShowRuns(store, names, lvl, width, height)
	}

	runs, err := store.TopRuns(lvl, flagScoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fastest runs - %d %s\n\n", lvl, names[lvl])
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Finish the level in 'dataloss play' to set the first time!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-12s  %s\n", "Rank", "Time", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-12s  %s\n", "----", "----", "------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-10s  %-12s  %s\n", i+1, tui.FormatDuration(r.Duration), r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
