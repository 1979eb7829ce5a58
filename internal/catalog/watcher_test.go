package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for watcher event")
		return Event{}
	}
}

func TestWatcherAddRemove(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	// Give fsnotify a moment to establish the watch.
	time.Sleep(100 * time.Millisecond)

	imgPath := filepath.Join(dir, "new.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte("x"), 0644))

	ev := waitEvent(t, w.Events())
	assert.Equal(t, Added, ev.Op)
	assert.Equal(t, imgPath, ev.Path)

	require.NoError(t, os.Remove(imgPath))
	ev = waitEvent(t, w.Events())
	assert.Equal(t, Removed, ev.Op)
	assert.Equal(t, imgPath, ev.Path)
}

func TestWatcherIgnoresNonImages(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for non-image: %+v", ev)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherDoubleStart(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Error(t, w.Start())
}
