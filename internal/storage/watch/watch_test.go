package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls map[string]int
	ch    chan string
}

func newRecorder() *recorder {
	return &recorder{calls: map[string]int{}, ch: make(chan string, 16)}
}

func (r *recorder) handle(path string, op fsnotify.Op) {
	r.mu.Lock()
	r.calls[filepath.Base(path)]++
	r.mu.Unlock()
	r.ch <- filepath.Base(path)
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func startWatcher(t *testing.T, path string, rec *recorder) {
	t.Helper()
	w, err := New(50*time.Millisecond, rec.handle)
	require.NoError(t, err)
	require.NoError(t, w.Add(path))

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(func() {
		cancel()
		w.Close()
	})
}

func waitFor(t *testing.T, rec *recorder, name string) {
	t.Helper()
	select {
	case got := <-rec.ch:
		assert.Equal(t, name, got)
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported for %s", name)
	}
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec)

	path := filepath.Join(dir, "cube.ply")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("ply\n"), 0644))
	}
	waitFor(t, rec, "cube.ply")

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, rec.count("cube.ply"))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ply"), []byte("ply\n"), 0644))
	waitFor(t, rec, "a.ply")
	assert.Zero(t, rec.count("notes.txt"))
}

func TestWatcherSingleFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.ply")
	require.NoError(t, os.WriteFile(target, []byte("ply\n"), 0644))

	rec := newRecorder()
	startWatcher(t, target, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.ply"), []byte("ply\n"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("ply\nformat ascii 1.0\n"), 0644))
	waitFor(t, rec, "target.ply")
	assert.Zero(t, rec.count("other.ply"))
}

func TestWatcherAddMissing(t *testing.T) {
	w, err := New(time.Millisecond, func(string, fsnotify.Op) {})
	require.NoError(t, err)
	defer w.Close()
	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing")))
}
