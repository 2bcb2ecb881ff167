// Package watch provides the fsnotify-backed input watcher. It flags
// the uploaded CSV files when they change on disk after an analysis so
// displayed results can be marked stale.
package watch

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driven"
	"github.com/zipsight-labs/zipsight-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.InputWatcher = (*Watcher)(nil)

// Watcher observes input files via fsnotify.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string

	mu      sync.Mutex
	watched []string
	closed  bool
}

// NewWatcher creates an input watcher. Close must be called to release
// the underlying notifier.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:     fsw,
		events: make(chan string, 8),
	}
	go w.loop()
	return w, nil
}

// Watch replaces the watched set with the given file paths.
func (w *Watcher) Watch(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, old := range w.watched {
		// Removal failures are harmless; the path may be gone already.
		_ = w.fs.Remove(old)
	}
	w.watched = w.watched[:0]

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := w.fs.Add(path); err != nil {
			return err
		}
		w.watched = append(w.watched, path)
		logger.Debug("Watching input file %s", path)
	}
	return nil
}

// Events emits the path of a watched file whenever it changes.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fs.Close()
}

// loop forwards relevant fsnotify events until the notifier closes.
func (w *Watcher) loop() {
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case w.events <- ev.Name:
			default:
				// A pending event already marks the results stale;
				// dropping duplicates is fine.
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("Input watcher: %v", err)
		}
	}
}
