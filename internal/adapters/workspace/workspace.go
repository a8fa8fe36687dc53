package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const lockFileName = ".lock"

var _ ports.Workspace = (*Workspace)(nil)

// Workspace is the data directory holding the scratch database, saved scans
// and the export area
type Workspace struct {
	root string
}

// New creates the data directory if needed
func New(root string) (*Workspace, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the data directory
func (w *Workspace) Root() string {
	return w.root
}

// ScanPath returns the database path of a scan
func (w *Workspace) ScanPath(name string) string {
	return filepath.Join(w.root, name+domain.DatabaseExt)
}

// ScratchPath returns the temporary database written while mapping
func (w *Workspace) ScratchPath() string {
	return filepath.Join(w.root, domain.ScratchDatabaseName)
}

// RecoveryPath returns the staging file used while recovering
func (w *Workspace) RecoveryPath() string {
	return filepath.Join(w.root, domain.RecoveryDatabaseName)
}

// ExportDir returns the directory the engine writes meshes to
func (w *Workspace) ExportDir() string {
	return filepath.Join(w.root, domain.ExportDirName)
}

// ExportArchivePath returns where the archive of an exported mesh goes
func (w *Workspace) ExportArchivePath(name string) string {
	return filepath.Join(w.root, name+".zip")
}

// ResetExportDir empties the export directory
func (w *Workspace) ResetExportDir() error {
	dir := w.ExportDir()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear export directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

// Remove deletes a file. A missing file is not an error.
func (w *Workspace) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
	}
	if err == nil {
		logging.Logger.Debug("Removed file", "path", path)
	}
	return nil
}

// Move renames a file, replacing the destination
func (w *Workspace) Move(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", filepath.Base(from), filepath.Base(to), err)
	}
	return nil
}

// Stat returns the size of a regular file and whether it exists
func (w *Workspace) Stat(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}
	return info.Size(), true
}

// Lock is an exclusive hold on the data directory
type Lock struct {
	file *os.File
}

// Lock takes the data directory for this process. It fails with
// domain.ErrWorkspaceLocked when another process holds it.
func (w *Workspace) Lock() (*Lock, error) {
	path := filepath.Join(w.root, lockFileName)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(file); err != nil {
		file.Close()
		if errors.Is(err, errLockHeld) {
			return nil, fmt.Errorf("%s: %w", w.root, domain.ErrWorkspaceLocked)
		}
		return nil, fmt.Errorf("failed to lock data directory: %w", err)
	}

	logging.Logger.Debug("Data directory locked", "path", w.root)
	return &Lock{file: file}, nil
}

// Release gives the data directory back
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("failed to unlock data directory: %w", err)
	}
	return closeErr
}
