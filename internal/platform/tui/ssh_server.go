package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/game"
	"github.com/vovakirdan/dataloss/internal/level"
	"github.com/vovakirdan/dataloss/internal/presence"
	"github.com/vovakirdan/dataloss/internal/scenes"
	"github.com/vovakirdan/dataloss/internal/sound"
	"github.com/vovakirdan/dataloss/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.dataloss/host_key.
	HostKeyPath string

	// SaveDir holds one save file per SSH user.
	SaveDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game and Levels are shared by every session.
	Game   *config.Config
	Levels []*level.Level

	// Store records runs from every session. Optional.
	Store *storage.Store
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		SaveDir:     "~/.dataloss/players",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the game over SSH with Wish.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger

	// Hosts of live sessions by session ID.
	hosts sync.Map
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Game == nil {
		def := config.Default()
		cfg.Game = &def
	}
	if len(cfg.Levels) == 0 {
		return nil, level.ErrNoLevels
	}

	srv := &SSHServer{
		config: cfg,
		logger: log.Default().WithPrefix("ssh"),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".dataloss", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game host and Bubble Tea model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	user := sess.User()
	logger := s.logger.With("user", user)

	// Presence goes to the server log. Status files belong to local play.
	var sender presence.Sender = presence.Nop{}
	if s.config.Game.Presence.Enabled {
		sender = presence.Start(&presence.LogClient{Logger: logger}, s.config.Game.Presence.ConnectTimeout)
	}

	opts := game.Options{
		Config:   s.config.Game,
		Levels:   s.config.Levels,
		Initial:  scenes.Loading,
		SavePath: s.savePath(user),
		Player:   user,
		Presence: sender,
		Sound:    sound.NewBell(sess),
		Now:      time.Now(),
	}
	if s.config.Store != nil {
		opts.Runs = s.config.Store
	}
	host := game.New(opts)
	s.hosts.Store(sess.Context().SessionID(), host)

	model := NewModel(host, Options{
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
		FPS:    s.config.Game.Game.FPS,
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// savePath returns the save file of an SSH user.
func (s *SSHServer) savePath(user string) string {
	name := unsafeNameChars.ReplaceAllString(user, "_")
	if name == "" {
		name = "anonymous"
	}
	return filepath.Join(config.ExpandPath(s.config.SaveDir), name+".json")
}

// sessionMiddleware logs session events and closes the session's host once
// its program has exited.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		if h, ok := s.hosts.LoadAndDelete(sess.Context().SessionID()); ok {
			if err := h.(*game.Host).Close(); err != nil {
				s.logger.Warn("closing session game", "user", sess.User(), "err", err)
			}
		}
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "levels", len(s.config.Levels))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
