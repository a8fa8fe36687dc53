package config

import (
	"sync"

	"rgbdslam/internal/logging"
)

// Store holds the settings of one process and re-reads the file on demand.
// It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	path     string
	settings Settings
}

// NewStore creates a Store backed by the settings file at path. A missing
// file yields default settings.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore creates a Store that never touches the file system
func NewStaticStore(settings Settings) *Store {
	return &Store{settings: settings}
}

// Path returns the settings file path, empty for static stores
func (s *Store) Path() string {
	return s.path
}

// Settings returns a copy of the current settings
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Set replaces the in-memory settings without writing the file
func (s *Store) Set(settings Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// Reload re-reads the settings file
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	loaded, err := LoadSettingsFrom(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = *loaded
	s.mu.Unlock()

	logging.Logger.Debug("Settings loaded", "path", s.path)
	return nil
}
