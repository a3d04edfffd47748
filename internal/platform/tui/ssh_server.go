package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the SSH front end.
type SSHServerConfig struct {
	Address     string        // host:port to listen on
	HostKeyPath string        // Generated under the data directory when empty
	DBPath      string        // Shared scores database
	IdleTimeout time.Duration // Idle connections are closed after this
	TickRate    int           // Simulation rate of every session
	Logger      *log.Logger   // Nil logs to stderr
}

// DefaultSSHServerConfig returns the settings used by "shmup serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      config.DefaultDBPath,
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer hosts one shooter session per SSH connection. Sessions share
// the loaded stages and the score database.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  *storage.Store
	stages []*stage.Stage
	logger *log.Logger
}

// NewSSHServer loads the stages, opens the score database and prepares the
// listener. A database that cannot be opened is logged and play continues
// without scores.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "shmup-ssh"})
	}

	stages, err := shmup.LoadStages(shmup.StagesDir(), logger)
	if err != nil {
		return nil, fmt.Errorf("load stages: %w", err)
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{cfg: cfg, stages: stages, logger: logger}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
		s.store = nil
	}

	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.logSessions,
		),
	)
	if err != nil {
		if s.store != nil {
			s.store.Close()
		}
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return s, nil
}

// hostKeyPath resolves the host key location and makes sure its directory
// exists.
func hostKeyPath(p string) (string, error) {
	if p == "" {
		dir := config.DataDir()
		if dir == "" {
			return "", errors.New("no home directory for the host key")
		}
		p = filepath.Join(dir, "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("create host key directory: %w", err)
	}
	return p, nil
}

// newSession builds the Bubble Tea program of one connection. Connections
// without a PTY are turned away.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s.stages, s.store, cfg, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", remote,
			"duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down. A listener
// failure ends it early with that error.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address, "stages", len(s.stages))

	errc := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		s.closeStore()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits briefly for sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.closeStore()
	return s.srv.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string { return s.cfg.Address }
