package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "solid.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{file}, func(path string) {
		calls.Add(1)
		changed <- path
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte{byte('b' + i)}, 0o644))
	}
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	select {
	case path := <-changed:
		abs, _ := filepath.Abs(file)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "missing", "file.yaml")}, func(string) {})
	assert.Error(t, err)
}
