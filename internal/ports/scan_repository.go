package ports

import (
	"context"
	"time"

	"rgbdslam/internal/domain"
)

// ScanReader reads the scan catalog
type ScanReader interface {
	Get(ctx context.Context, name string) (*domain.Scan, error)
	List(ctx context.Context) ([]domain.Scan, error)
}

// ScanWriter records and removes scans in the catalog
type ScanWriter interface {
	Delete(ctx context.Context, name string) error
	MarkOpened(ctx context.Context, name string, at time.Time) error
	Upsert(ctx context.Context, scan domain.Scan) error
}

// ScanRepository is the composite interface
type ScanRepository interface {
	ScanReader
	ScanWriter
	Close() error
}

// ScanFileLister lists scan databases on disk, reserved scratch files excluded
type ScanFileLister interface {
	ListFiles(ctx context.Context) ([]domain.Scan, error)
}

// ScanInspector reads summary information from a scan database
type ScanInspector interface {
	Inspect(ctx context.Context, path string) (nodes int, err error)
}

// ScanLibrary is what the capture session needs from the library
type ScanLibrary interface {
	// Register records a saved or recovered database
	Register(ctx context.Context, path string) error
	// Opened records that a database was opened
	Opened(ctx context.Context, path string) error
}

// Archiver packs an export directory into a single archive
type Archiver interface {
	Zip(ctx context.Context, srcDir, dest string) error
}
