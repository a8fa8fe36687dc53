package domain

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// DatabaseExt is the extension of every scan database
	DatabaseExt = ".db"
	// ScratchDatabaseName holds the map while scanning, before it is saved
	ScratchDatabaseName = "rtabmap.tmp.db"
	// RecoveryDatabaseName is the scratch space used while recovering
	RecoveryDatabaseName = "rtabmap.tmp.recovery.db"
	// ExportDirName holds the files written by the last mesh export
	ExportDirName = "Export"
	// AbandonedScratchThreshold is the scratch size above which a previous
	// session is considered worth recovering
	AbandonedScratchThreshold int64 = 1 << 20
	// RecoveredNameLayout names recovered databases after the recovery time
	RecoveredNameLayout = "060102-150405"
)

// Scan is one saved database in the library
type Scan struct {
	CreatedAt    time.Time
	LastOpenedAt *time.Time
	Name         string
	Nodes        int
	Path         string
	SizeBytes    int64
	UpdatedAt    time.Time
}

// IsReservedDatabase reports whether a file name is scratch space that must
// never be listed in the library
func IsReservedDatabase(fileName string) bool {
	base := filepath.Base(fileName)
	return base == ScratchDatabaseName ||
		base == RecoveryDatabaseName ||
		strings.HasSuffix(base, ".tmp"+DatabaseExt) ||
		strings.HasSuffix(base, ".tmp.recovery"+DatabaseExt)
}

// ScanNameFromPath returns the scan name for a database path
func ScanNameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), DatabaseExt)
}

// ValidateScanName checks a user supplied scan name and returns the
// sanitized form
func ValidateScanName(name string) (string, error) {
	sanitized := SanitizeScanName(name)
	if sanitized == "" {
		return "", ErrInvalidScanName
	}
	if IsReservedDatabase(sanitized + DatabaseExt) {
		return "", ErrReservedScanName
	}
	return sanitized, nil
}

// RecoveredScanName names a database recovered at the given time
func RecoveredScanName(at time.Time) string {
	return at.Format(RecoveredNameLayout)
}

// ScanCheck is the outcome of inspecting one scan database
type ScanCheck struct {
	Err   error
	Name  string
	Nodes int
	Path  string
}

// OK reports whether the database could be read
func (c ScanCheck) OK() bool {
	return c.Err == nil
}
