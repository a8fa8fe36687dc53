package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"rgbdslam/internal/adapters/ar"
	"rgbdslam/internal/config"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/server"
)

// ServeCmd starts the SSH server
type ServeCmd struct {
	AuthorizedKeys   string `help:"File listing the public keys allowed to connect" default:"~/.ssh/authorized_keys"`
	CameraPermission string `help:"Simulated camera authorization of every session" default:"authorized" enum:"authorized,denied,prompt"`
	Host             string `help:"Host to bind to" default:"localhost"`
	Port             string `help:"Port to listen on" default:"23234"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	permission, err := ar.ParsePermission(s.CameraPermission)
	if err != nil {
		return err
	}

	dataDir := filepath.Join(config.GetHome(), "remote")
	logging.Logger.Info("Starting rgbdslam SSH server",
		"host", s.Host,
		"port", s.Port,
		"data_dir", dataDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// Sessions read the store whenever they apply settings
		if err := config.Watch(ctx, cli.Container.Settings, func(config.Settings) {}); err != nil {
			logging.Logger.Warn("Settings watcher stopped", "error", err)
		}
	}()

	srv, err := server.NewServer(server.Options{
		AuthorizedKeysPath: config.ExpandPath(s.AuthorizedKeys),
		DataDir:            dataDir,
		Host:               s.Host,
		Permission:         permission,
		Port:               s.Port,
		Settings:           cli.Container.Settings,
		SSHDir:             config.GetSSHDir(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Blocks until shutdown
	return srv.Start()
}
