package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/giantswarm/replkit/pkg/logging"
)

// DefaultDebounceInterval is the quiet period after the last change before
// the file is reloaded.
const DefaultDebounceInterval = 250 * time.Millisecond

// Watcher reloads a FileStore when its file changes.
type Watcher struct {
	store    *FileStore
	onChange func(map[string]any)
	debounce time.Duration
}

// NewWatcher creates a watcher calling onChange with every successfully
// reloaded settings map.
func NewWatcher(store *FileStore, onChange func(map[string]any)) *Watcher {
	return &Watcher{store: store, onChange: onChange, debounce: DefaultDebounceInterval}
}

// SetDebounce changes the debounce interval.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is done. The directory of the file is watched
// rather than the file itself so that editors replacing the file are
// noticed too.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.store.Path())
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	logging.Debug("Settings", "watching %s for changes", target)

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			reload = time.After(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Error("Settings", err, "settings watcher error")

		case <-reload:
			reload = nil
			values, err := w.store.Load()
			if err != nil {
				logging.Warn("Settings", "keeping previous settings: %v", err)
				continue
			}
			logging.Debug("Settings", "reloaded %s", target)
			if w.onChange != nil {
				w.onChange(values)
			}
		}
	}
}
