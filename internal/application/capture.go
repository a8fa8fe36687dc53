// Package application assembles a capture session with the adapters it owns.
// The local TUI and every SSH session build one Capture each.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"rgbdslam/internal/adapters/ar"
	"rgbdslam/internal/adapters/archive"
	"rgbdslam/internal/adapters/engine"
	"rgbdslam/internal/adapters/storage"
	"rgbdslam/internal/adapters/workspace"
	"rgbdslam/internal/config"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
	"rgbdslam/internal/services"
	"rgbdslam/internal/ui"
)

// Options configures a Capture
type Options struct {
	// CatalogPath is the scan index database
	CatalogPath string
	// DataDir holds the scratch database, saved scans and exports
	DataDir    string
	DevMode    bool
	Depth      bool
	FrameRate  int
	Permission ports.PermissionStatus
	Settings   *config.Store
	// StepDelay paces long engine operations, zero for the default
	StepDelay time.Duration
}

// Capture is one capture session together with its screen
type Capture struct {
	Library   *services.LibraryService
	Model     *ui.Model
	Presenter *ui.Presenter
	Session   *services.CaptureSession

	catalog *storage.SQLiteRepository
	lock    *workspace.Lock
	loop    *services.EventLoop
}

// NewCapture takes the data directory and wires a session in the Welcome
// state. It fails with domain.ErrWorkspaceLocked when another process maps
// in the same directory.
func NewCapture(opts Options) (*Capture, error) {
	ws, err := workspace.New(opts.DataDir)
	if err != nil {
		return nil, err
	}
	lock, err := ws.Lock()
	if err != nil {
		return nil, err
	}

	catalog, err := storage.NewSQLiteRepository(opts.CatalogPath)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to open scan catalog: %w", err), lock.Release())
	}

	clk := clock.New()
	library := services.NewLibraryService(catalog, ws, engine.Inspector{}, ws, clk)

	engineOpts := []engine.Option{engine.WithClock(clk)}
	if opts.StepDelay > 0 {
		engineOpts = append(engineOpts, engine.WithStepDelay(opts.StepDelay))
	}
	arOpts := []ar.Option{ar.WithClock(clk), ar.WithDepth(opts.Depth)}
	if opts.FrameRate > 0 {
		arOpts = append(arOpts, ar.WithFrameRate(opts.FrameRate))
	}

	loop := services.NewEventLoop()
	presenter := ui.NewPresenter()
	session := services.NewCaptureSession(services.CaptureSessionDeps{
		AR:         ar.NewSession(arOpts...),
		Archiver:   archive.NewZipArchiver(),
		Clock:      clk,
		Engine:     engine.New(engineOpts...),
		Library:    library,
		Main:       loop,
		Permission: ar.NewPermission(opts.Permission, true),
		Presenter:  presenter,
		Settings:   opts.Settings,
		Workspace:  ws,
	})

	model := ui.NewModel(ui.ModelDeps{
		Controller: session,
		DevMode:    opts.DevMode,
		Keys:       opts.Settings.Settings().Keys,
		Scans:      library,
		Settings:   opts.Settings,
		Touch:      session.Touch(),
	})

	logging.Logger.Info("Capture session created", "data_dir", ws.Root())
	return &Capture{
		Library:   library,
		Model:     model,
		Presenter: presenter,
		Session:   session,
		catalog:   catalog,
		lock:      lock,
		loop:      loop,
	}, nil
}

// Start connects the presenter to the program showing Model and publishes the
// first snapshot
func (c *Capture) Start(sender ui.Sender) {
	c.Presenter.Attach(sender)
	c.Session.AddListener(c.Presenter)
	c.Session.Start()
}

// Close stops the session, then releases the catalog and the data directory
func (c *Capture) Close(ctx context.Context) error {
	err := c.Session.Close(ctx)
	c.loop.Close()
	return multierr.Combine(err, c.catalog.Close(), c.lock.Release())
}
