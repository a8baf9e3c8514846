package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay coalesces the burst of events editors emit on save
const settleDelay = 100 * time.Millisecond

// WatchSettings reloads the settings file whenever it is written or
// recreated and passes the result to onChange. It blocks until ctx is done.
// The parent directory is watched so atomic-rename saves are seen.
func WatchSettings(ctx context.Context, path string, logger *log.Logger, onChange func(Settings)) error {
	if logger == nil {
		logger = log.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(settleDelay)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Printf("settings watcher error: %v", err)

		case <-pending:
			pending = nil
			s, err := LoadSettings(path)
			if err != nil {
				logger.Printf("settings reload failed: %v", err)
				continue
			}
			onChange(s)
		}
	}
}
