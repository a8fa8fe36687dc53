package config

import (
	"os"
	"path/filepath"

	"rgbdslam/internal/domain"
)

// GetHome returns RGBDSLAM_HOME or ~/.rgbdslam default
func GetHome() string {
	home := os.Getenv("RGBDSLAM_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".rgbdslam"
		}
		return filepath.Join(homeDir, ".rgbdslam")
	}
	return ExpandPath(home)
}

// GetSettingsPath returns $RGBDSLAM_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetCatalogPath returns $RGBDSLAM_HOME/catalog.db
func GetCatalogPath() string {
	return filepath.Join(GetHome(), "catalog.db")
}

// GetScansDir returns the data directory holding scan databases.
// RGBDSLAM_DATA_DIR and the data_dir setting override $RGBDSLAM_HOME/scans.
func GetScansDir(settings *Settings) string {
	if dir := os.Getenv("RGBDSLAM_DATA_DIR"); dir != "" {
		return ExpandPath(dir)
	}
	if settings != nil && settings.DataDir != "" {
		return ExpandPath(settings.DataDir)
	}
	return filepath.Join(GetHome(), "scans")
}

// GetExportDir returns the export directory inside a data directory
func GetExportDir(scansDir string) string {
	return filepath.Join(scansDir, domain.ExportDirName)
}

// GetSSHDir returns $RGBDSLAM_HOME/ssh
func GetSSHDir() string {
	return filepath.Join(GetHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
