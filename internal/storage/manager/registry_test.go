package manager

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *counter) load(path string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if filepath.Base(path) == "broken.ply" {
		return "", errors.New("boom")
	}
	c.calls[path]++
	return "loaded:" + filepath.Base(path), nil
}

func TestRegistryCachesLoads(t *testing.T) {
	c := &counter{calls: map[string]int{}}
	r := NewRegistry[string]("/models", c.load)

	v, err := r.Get("cube.ply")
	require.NoError(t, err)
	assert.Equal(t, "loaded:cube.ply", v)

	_, err = r.Get("cube.ply")
	require.NoError(t, err)
	assert.Equal(t, 1, c.calls["/models/cube.ply"])
	assert.True(t, r.Cached("cube.ply"))
	assert.Equal(t, []string{"/models/cube.ply"}, r.Loaded())
}

func TestRegistryAbsolutePath(t *testing.T) {
	r := NewRegistry[string]("/models", (&counter{calls: map[string]int{}}).load)
	assert.Equal(t, "/tmp/x.ply", r.Path("/tmp/x.ply"))
	assert.Equal(t, "/models/x.ply", r.Path("x.ply"))

	r = NewRegistry[string]("", (&counter{calls: map[string]int{}}).load)
	assert.Equal(t, "x.ply", r.Path("./x.ply"))
}

func TestRegistryInvalidateAndReload(t *testing.T) {
	c := &counter{calls: map[string]int{}}
	r := NewRegistry[string]("/models", c.load)

	_, err := r.Get("cube.ply")
	require.NoError(t, err)

	assert.True(t, r.Invalidate("cube.ply"))
	assert.False(t, r.Invalidate("cube.ply"))
	assert.False(t, r.Cached("cube.ply"))

	_, err = r.Reload("cube.ply")
	require.NoError(t, err)
	assert.Equal(t, 2, c.calls["/models/cube.ply"])
}

func TestRegistryLoadError(t *testing.T) {
	r := NewRegistry[string]("/models", (&counter{calls: map[string]int{}}).load)

	_, err := r.Get("broken.ply")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, r.Cached("broken.ply"))
}

func TestRegistryPut(t *testing.T) {
	r := NewRegistry[string]("/models", (&counter{calls: map[string]int{}}).load)
	r.Put("mem.ply", "manual")

	v, err := r.Get("mem.ply")
	require.NoError(t, err)
	assert.Equal(t, "manual", v)
}

func TestRegistryConcurrentGet(t *testing.T) {
	c := &counter{calls: map[string]int{}}
	r := NewRegistry[string]("/models", c.load)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Get("cube.ply")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.calls["/models/cube.ply"])
}

func TestRegistryList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ply", "B.PLY", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ply\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ply"), 0755))

	r := NewRegistry[string](dir, (&counter{calls: map[string]int{}}).load)
	names, err := r.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.ply", "B.PLY"}, names)
}
