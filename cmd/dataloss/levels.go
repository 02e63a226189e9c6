package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dataloss/internal/platform/tui"
	"github.com/vovakirdan/dataloss/internal/progress"
	"github.com/vovakirdan/dataloss/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and best times",
	Long: `Shows every level in play order with your saved best time and the
number of runs in the history database.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
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
	save := progress.Load(cfg.Paths.Save)

	runs := make(map[int]int)
	if store, err := storage.Open(cfg.Paths.DB); err != nil {
		log.Warn("could not open run history", "err", err)
	} else {
		stats, err := store.Stats()
		store.Close()
		if err != nil {
			return err
		}
		for _, s := range stats {
			runs[s.Level] = s.Runs
		}
	}

	maxName := len("Name")
	for _, l := range levels {
		maxName = max(maxName, len(l.Name))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-3s  %-*s  %-10s  %s\n", "#", maxName, "Name", "Best", "Runs")
	fmt.Fprintf(out, "  %-3s  %-*s  %-10s  %s\n", "-", maxName, "----", "----", "----")
	for i, l := range levels {
		best := "-"
		if d, ok := save.BestTime(i); ok {
			best = tui.FormatDuration(d)
		}
		fmt.Fprintf(out, "  %-3d  %-*s  %-10s  %d\n", i, maxName, l.Name, best, runs[i])
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d of %d levels completed.\n", min(save.Completed(), len(levels)), len(levels))
	return nil
}
