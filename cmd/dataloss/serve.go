package main

import (
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dataloss/internal/platform/tui"
	"github.com/vovakirdan/dataloss/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSaveDir     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game and a save file named after the SSH
user. Runs from every session go to the same history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dataloss/host_key

Examples:
  dataloss serve                           # Listen on :23234 with auto-generated key
  dataloss serve --ssh :2222               # Listen on port 2222
  dataloss serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSaveDir, "save-dir", def.SaveDir, "Directory for per-user save files")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
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

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		SaveDir:     flagSaveDir,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        cfg,
		Levels:      levels,
	}

	store, err := storage.Open(cfg.Paths.DB)
	if err != nil {
		log.Warn("could not open run history", "path", cfg.Paths.DB, "err", err)
	} else {
		defer store.Close()
		srvCfg.Store = store
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		return err
	}

	if _, port, err := net.SplitHostPort(srvCfg.Address); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Connect with: ssh -t localhost -p %s\n", port)
	}
	return server.ListenAndServe()
}
