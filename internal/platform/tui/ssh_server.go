package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/source"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.bubbles/host_key.
	HostKeyPath string

	// DBPath is the path to the session history database.
	DBPath string

	// Picture is revealed when the client does not name one,
	// as in "ssh -t host rings".
	Picture string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Bubbles is the reveal configuration shared by every session.
	Bubbles config.BubblesConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.bubbles/history.db",
		Picture:     "gradient",
		IdleTimeout: 30 * time.Minute,
		Bubbles:     config.DefaultBubblesConfig(),
	}
}

// modelKey stores the session's Model in its ssh.Context.
type modelKey struct{}

// SSHServer wraps a Wish SSH server that serves reveals of built-in
// pictures. Remote users cannot reach the host filesystem.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger writes to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "bubbles-ssh",
		})
	}

	if !registry.Exists(cfg.Picture) {
		return nil, fmt.Errorf("unknown default picture %q", cfg.Picture)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".bubbles", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// pictureFor picks the picture named by the session command, falling back
// to the configured default.
func (s *SSHServer) pictureFor(args []string) (source.Source, error) {
	id := s.config.Picture
	if len(args) > 0 && args[0] != "" {
		id = args[0]
	}
	pic, err := registry.Create(id)
	if err != nil {
		return source.Source{}, err
	}
	return source.FromPicture(pic), nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "bubbles needs a terminal, try ssh -t")
		return nil, nil
	}

	src, err := s.pictureFor(sshSession.Command())
	if err != nil {
		s.logger.Warn("unknown picture", "user", sshSession.User(), "error", err)
		wish.Fatalln(sshSession, err.Error())
		return nil, nil
	}

	model := NewModel(src, Options{
		Config:   s.config.Bubbles,
		Store:    s.store,
		Logger:   s.logger.With("user", sshSession.User()),
		Renderer: bubbletea.MakeRenderer(sshSession),
		Origin:   "ssh:" + sshSession.User(),
	}, pty.Window.Width, pty.Window.Height)
	sshSession.Context().SetValue(modelKey{}, model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events. It wraps the Bubble Tea
// middleware, so by the time next returns the program has stopped and the
// reveal can be finished even when the client disconnected without quitting.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"command", sshSession.Command(),
		)
		next(sshSession)
		finishSession(sshSession.Context())
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// finishSession records the reveal stored in ctx, if any.
func finishSession(ctx ssh.Context) {
	if model, ok := ctx.Value(modelKey{}).(Model); ok {
		model.Finish()
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or the
// process receives an interrupt.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "picture", s.config.Picture)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.Shutdown()
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
