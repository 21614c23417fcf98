package manager

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Extension of the files List reports
const Extension = ".ply"

// LoadFunc loads the value stored under path
type LoadFunc[T any] func(path string) (T, error)

// Registry caches loaded values by file name in a thread-safe way.
// Names are resolved against basePath unless they are absolute.
type Registry[T any] struct {
	mu       sync.RWMutex
	loaded   map[string]T
	basePath string
	load     LoadFunc[T]
}

// NewRegistry creates a registry that loads missing entries with load
func NewRegistry[T any](basePath string, load LoadFunc[T]) *Registry[T] {
	return &Registry[T]{
		loaded:   make(map[string]T),
		basePath: basePath,
		load:     load,
	}
}

// Path resolves name to the file it is loaded from
func (r *Registry[T]) Path(name string) string {
	if filepath.IsAbs(name) || r.basePath == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(r.basePath, name)
}

// Get returns the cached value for name, loading it on first use
func (r *Registry[T]) Get(name string) (T, error) {
	path := r.Path(name)

	r.mu.RLock()
	v, ok := r.loaded[path]
	r.mu.RUnlock()
	if ok {
		return v, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another caller may have loaded it meanwhile
	if v, ok := r.loaded[path]; ok {
		return v, nil
	}

	v, err := r.load(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load '%s': %w", path, err)
	}
	r.loaded[path] = v
	slog.Debug("registry cached", slog.String("path", path))
	return v, nil
}

// Put stores v under name, replacing any cached value
func (r *Registry[T]) Put(name string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded[r.Path(name)] = v
}

// Invalidate drops the cached value for name and reports whether one existed
func (r *Registry[T]) Invalidate(name string) bool {
	path := r.Path(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.loaded[path]
	delete(r.loaded, path)
	return ok
}

// Reload discards the cached value and loads name again
func (r *Registry[T]) Reload(name string) (T, error) {
	r.Invalidate(name)
	return r.Get(name)
}

// Cached reports whether name is loaded
func (r *Registry[T]) Cached(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loaded[r.Path(name)]
	return ok
}

// Loaded returns the sorted paths of all cached values
func (r *Registry[T]) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.loaded))
	for p := range r.loaded {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// List returns the .ply files available under the base path
func (r *Registry[T]) List() ([]string, error) {
	dir := r.basePath
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
