package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"rgbdslam/internal/logging"
)

// reloadDelay coalesces the burst of events editors produce on save
const reloadDelay = 250 * time.Millisecond

// Watch reloads the store whenever its settings file changes and calls
// onChange with the new settings. It blocks until ctx is done.
func Watch(ctx context.Context, store *Store, onChange func(Settings)) error {
	path := store.Path()
	if path == "" {
		<-ctx.Done()
		return nil
	}

	// Watch the directory: editors often replace the file instead of writing it
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	debounced := debounce.New(reloadDelay)
	reload := func() {
		if err := store.Reload(); err != nil {
			logging.Logger.Warn("Failed to reload settings", "error", err, "path", path)
			return
		}
		logging.Logger.Info("Settings reloaded", "path", path)
		onChange(store.Settings())
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounced(reload)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Logger.Warn("Settings watcher error", "error", err)
		}
	}
}
