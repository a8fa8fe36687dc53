package ports

import "rgbdslam/internal/config"

// MainThread runs closures on the single UI-affinity context, in order
type MainThread interface {
	Post(fn func())
}

// RenderControl drives the render loop
type RenderControl interface {
	Invalidate()
	SetPaused(paused bool)
}

// SettingsSource gives access to the current settings. Each call may re-read
// the settings file.
type SettingsSource interface {
	Settings() config.Settings
}

// Workspace is the file-system area owned by one capture session
type Workspace interface {
	ExportArchivePath(name string) string
	ExportDir() string
	Move(from, to string) error
	RecoveryPath() string
	Remove(path string) error
	ResetExportDir() error
	ScanPath(name string) string
	ScratchPath() string
	// Stat returns the size of a file and whether it exists
	Stat(path string) (int64, bool)
}
