package cmd

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"rgbdslam/internal/adapters/engine"
	adapterstorage "rgbdslam/internal/adapters/storage"
	"rgbdslam/internal/adapters/workspace"
	"rgbdslam/internal/config"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/services"
)

// Container holds the dependencies shared by the commands. Adapters that
// hold files open are created on first use.
type Container struct {
	CatalogPath string
	ScansDir    string
	Settings    *config.Store

	// Internal - for cleanup only
	catalog   *adapterstorage.SQLiteRepository
	library   *services.LibraryService
	workspace *workspace.Workspace
}

// NewContainer resolves the paths of this run. dataDir overrides the
// environment and the data_dir setting.
func NewContainer(settings *config.Settings, dataDir string) (*Container, error) {
	store, err := config.NewStore(config.GetSettingsPath())
	if err != nil {
		logging.Logger.Warn("Failed to load settings, using defaults", "error", err)
		store = config.NewStaticStore(config.Settings{})
	}

	scansDir := config.ExpandPath(dataDir)
	if scansDir == "" {
		scansDir = config.GetScansDir(settings)
	}

	logging.Logger.Debug("Container created",
		"settings", store.Path(),
		"scans_dir", scansDir)

	return &Container{
		CatalogPath: config.GetCatalogPath(),
		ScansDir:    scansDir,
		Settings:    store,
	}, nil
}

// Workspace returns the data directory
func (c *Container) Workspace() (*workspace.Workspace, error) {
	if c.workspace == nil {
		ws, err := workspace.New(c.ScansDir)
		if err != nil {
			return nil, err
		}
		c.workspace = ws
	}
	return c.workspace, nil
}

// Library returns the scan library over the data directory and the catalog
func (c *Container) Library() (*services.LibraryService, error) {
	if c.library != nil {
		return c.library, nil
	}

	ws, err := c.Workspace()
	if err != nil {
		return nil, err
	}
	catalog, err := adapterstorage.NewSQLiteRepository(c.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan catalog: %w", err)
	}

	c.catalog = catalog
	c.library = services.NewLibraryService(catalog, ws, engine.Inspector{}, ws, clock.New())
	return c.library, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var err error
	if c.catalog != nil {
		err = multierr.Append(err, c.catalog.Close())
	}
	return err
}
