// Package server serves the capture screen over SSH. Every connection gets a
// capture session of its own, mapping in a private data directory.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"rgbdslam/internal/config"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const shutdownTimeout = 30 * time.Second

// Options configures the SSH server
type Options struct {
	// AuthorizedKeysPath lists the keys allowed to connect
	AuthorizedKeysPath string
	// DataDir is the parent of the per-connection data directories
	DataDir    string
	Host       string
	Permission ports.PermissionStatus
	Port       string
	Settings   *config.Store
	SSHDir     string
}

// Server is the SSH server of rgbdslam
type Server struct {
	opts       Options
	wishServer *ssh.Server
}

// NewServer creates a new SSH server instance
func NewServer(opts Options) (*Server, error) {
	s := &Server{opts: opts}

	if err := os.MkdirAll(opts.SSHDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}
	hostKeyPath := filepath.Join(opts.SSHDir, "id_ed25519")

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(opts.Host, opts.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithPublicKeyAuth(s.authorize),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Start starts the SSH server and blocks until an interrupt, then waits for
// open sessions to close
func (s *Server) Start() error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	address := net.JoinHostPort(s.opts.Host, s.opts.Port)
	logging.Logger.Info("Starting SSH server", "address", address)
	fmt.Printf("SSH server listening on %s\n", address)

	go func() {
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logging.Logger.Error("SSH server error", "error", err)
		}
	}()

	<-done
	logging.Logger.Info("Shutting down SSH server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.wishServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}
