package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called once per path after its changes settle
type Handler func(path string, op fsnotify.Op)

// Watcher reports changes to .ply files under the watched directories.
// Bursts of events on one file (editors often write, chmod and rename in
// quick succession) are collapsed into one Handler call after debounce.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	handler  Handler

	mu      sync.Mutex
	pending map[string]*pendingEvent
	files   map[string]bool // explicitly watched files; empty means every .ply
}

type pendingEvent struct {
	timer *time.Timer
	op    fsnotify.Op
}

// New creates a watcher. Call Add, then Run.
func New(debounce time.Duration, handler Handler) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &Watcher{
		fs:       fs,
		debounce: debounce,
		handler:  handler,
		pending:  make(map[string]*pendingEvent),
		files:    make(map[string]bool),
	}, nil
}

// Add watches a directory, or a single file through its parent directory
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
		w.mu.Lock()
		w.files[filepath.Clean(path)] = true
		w.mu.Unlock()
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Info("watching", slog.String("path", path))
	return nil
}

// Run dispatches events until ctx is cancelled or the watcher is closed
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.schedule(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.files) > 0 {
		return w.files[filepath.Clean(path)]
	}
	return strings.EqualFold(filepath.Ext(path), ".ply")
}

func (w *Watcher) schedule(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod || !w.relevant(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.pending[event.Name]; ok {
		p.op |= event.Op
		p.timer.Reset(w.debounce)
		return
	}

	name := event.Name
	p := &pendingEvent{op: event.Op}
	p.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		op := p.op
		delete(w.pending, name)
		w.mu.Unlock()

		slog.Debug("file changed", slog.String("path", name), slog.String("op", op.String()))
		w.handler(name, op)
	})
	w.pending[name] = p
}

// Close stops the watcher and drops pending notifications
func (w *Watcher) Close() error {
	w.mu.Lock()
	for name, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()
	return w.fs.Close()
}
