// Package watcher re-runs validation when files in a plugin directory change.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a single plugin directory.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	debounce time.Duration
}

// New starts watching dir. debounce <= 0 selects DefaultDebounce.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{fsw: fsw, dir: dir, debounce: debounce}, nil
}

// Run calls onChange once per burst of relevant events until ctx is done.
// onChange runs on the Run goroutine, so validations never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if Ignored(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", w.dir, err)
		case <-timer.C:
			onChange()
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Ignored reports whether an event on name is one of the validator's own
// writes: the checksum sidecar, its lock file, or a temp file.
func Ignored(name string) bool {
	base := filepath.Base(name)
	return base == domain.ChecksumFile ||
		strings.HasSuffix(base, ".lock") ||
		strings.HasPrefix(base, ".")
}
