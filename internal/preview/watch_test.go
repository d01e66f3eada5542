package preview

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("github.com/fsnotify/fsnotify.(*Watcher).readEvents"),
		// regexp2's match-timeout clock is a package-global goroutine started
		// by chroma's regex engine; it is not owned by the Watcher under test.
		goleak.IgnoreAnyFunction("github.com/dlclark/regexp2.runClock"),
	)

	dir := t.TempDir()
	target := filepath.Join(dir, "x.chaff")
	require.NoError(t, os.WriteFile(target, []byte("v1\n"), 0o644))

	changed := make(chan string, 8)
	w, err := NewWatcher([]string{target}, 50*time.Millisecond, nil, func(path string) {
		changed <- path
	})
	require.NoError(t, err)

	w.Start(context.Background())
	defer w.Stop()

	// Give the watch a moment to be registered before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("v2\n"), 0o644))

	select {
	case path := <-changed:
		abs, _ := filepath.Abs(target)
		require.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reported the write")
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "watched.chaff")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(target, []byte("v1\n"), 0o644))

	changed := make(chan string, 8)
	w, err := NewWatcher([]string{target}, 50*time.Millisecond, nil, func(path string) {
		changed <- path
	})
	require.NoError(t, err)

	w.Start(context.Background())
	defer w.Stop()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("noise\n"), 0o644))

	select {
	case path := <-changed:
		t.Fatalf("unexpected change notification for %s", path)
	case <-time.After(1 * time.Second):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "x.chaff")
	require.NoError(t, os.WriteFile(target, []byte("v1\n"), 0o644))

	w, err := NewWatcher([]string{target}, 50*time.Millisecond, nil, func(string) {})
	require.NoError(t, err)

	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
