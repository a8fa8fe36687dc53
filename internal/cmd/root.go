package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"rgbdslam/internal/adapters/ar"
	"rgbdslam/internal/application"
	"rgbdslam/internal/config"
	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ui"
)

const closeTimeout = 10 * time.Second

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	DataDir     string           `help:"Directory holding scan databases (overrides $RGBDSLAM_DATA_DIR and data_dir)"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run      RunCmd        `cmd:"" help:"Start the capture screen (default)" default:"1"`
	Serve    ServeCmd      `cmd:"serve" help:"Serve the capture screen over SSH"`
	Scans    ScansCmd      `cmd:"scans" help:"Manage saved scans (list, delete, verify)"`
	Settings SettingsCmd   `cmd:"settings" help:"Show settings and their location"`
	Info     VersionCmd    `cmd:"version" help:"Print version information"`

	// Internal fields (not flags)
	Container   *Container       `kong:"-"`
	settings    *config.Settings `kong:"-"`
	versionInfo string           `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// SetVersionInfo sets the line printed by the version command
func (c *CLI) SetVersionInfo(info string) {
	c.versionInfo = info
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults
	if c.MaxLogFiles == 1000 {
		if value, hasEnv := os.LookupEnv("RGBDSLAM_MAX_LOG_FILES"); hasEnv {
			if n, err := strconv.Atoi(value); err == nil {
				c.MaxLogFiles = n
			}
		} else if c.settings != nil && c.settings.MaxLogFiles != nil {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}

	if !c.Debug {
		if value, hasEnv := os.LookupEnv("RGBDSLAM_DEBUG"); hasEnv {
			c.Debug = value == "1" || value == "true"
		} else if c.settings != nil {
			c.Debug = c.settings.GetDebug()
		}
	}

	if _, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	if c.settings != nil && c.settings.Keys != nil {
		if err := c.settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
			return fmt.Errorf("invalid key bindings in settings.json: %w", err)
		}
	}

	// Created after logging: GORM logs through logging.Logger
	container, err := NewContainer(c.settings, c.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// RunCmd starts the capture screen
type RunCmd struct {
	CameraPermission string `help:"Simulated camera authorization" default:"authorized" enum:"authorized,denied,prompt"`
	Dev              bool   `help:"Enable development mode (shows version info in dialogs)"`
	FrameRate        int    `help:"Frames per second of the simulated camera" default:"30"`
	NoDepth          bool   `help:"Simulate a device without a depth sensor"`
}

// Run executes the capture screen until the user quits
func (r *RunCmd) Run(cli *CLI) error {
	permission, err := ar.ParsePermission(r.CameraPermission)
	if err != nil {
		return err
	}

	container := cli.Container
	logging.Logger.Info("Starting capture screen", "data_dir", container.ScansDir)

	capture, err := application.NewCapture(application.Options{
		CatalogPath: container.CatalogPath,
		DataDir:     container.ScansDir,
		DevMode:     r.Dev,
		Depth:       !r.NoDepth,
		FrameRate:   r.FrameRate,
		Permission:  permission,
		Settings:    container.Settings,
	})
	if errors.Is(err, domain.ErrWorkspaceLocked) {
		return fmt.Errorf("another capture session is using %s", container.ScansDir)
	}
	if err != nil {
		return fmt.Errorf("failed to start capture session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := config.Watch(ctx, container.Settings, func(config.Settings) {
			capture.Session.ReloadSettings()
		})
		if err != nil {
			logging.Logger.Warn("Settings watcher stopped", "error", err)
		}
	}()

	p := tea.NewProgram(
		capture.Model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drives touch gestures
		tea.WithReportFocus(),     // Focus drives the app lifecycle
	)
	capture.Start(p)

	logging.Logger.Info("Starting TUI program")
	_, runErr := p.Run()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), closeTimeout)
	defer closeCancel()
	closeErr := capture.Close(closeCtx)

	if runErr != nil {
		logging.Logger.Error("TUI program error", "error", runErr)
		return fmt.Errorf("error running program: %w", runErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close capture session: %w", closeErr)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}

// VersionCmd prints version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(cli *CLI) error {
	fmt.Println(cli.versionInfo)
	return nil
}
