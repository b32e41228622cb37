package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// pathRecorder collects watcher callbacks.
type pathRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *pathRecorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *pathRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

func (r *pathRecorder) waitForCount(t *testing.T, n int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(r.snapshot()) >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d callbacks, got %d", n, len(r.snapshot()))
}

func TestWatcher_ImportsDroppedImage(t *testing.T) {
	dir := t.TempDir()
	rec := &pathRecorder{}

	w := NewWatcher(dir, rec.record)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	dropped := filepath.Join(dir, "vacation.png")
	if err := os.WriteFile(dropped, []byte("png bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	rec.waitForCount(t, 1, 2*time.Second)

	if got := rec.snapshot()[0]; got != dropped {
		t.Errorf("callback path = %q, want %q", got, dropped)
	}
}

func TestWatcher_IgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	rec := &pathRecorder{}

	w := NewWatcher(dir, rec.record)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	// An image after the text file proves the watcher is alive
	img := filepath.Join(dir, "after.jpg")
	if err := os.WriteFile(img, []byte("jpg bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	rec.waitForCount(t, 1, 2*time.Second)

	for _, p := range rec.snapshot() {
		if p != img {
			t.Errorf("unexpected callback for %q", p)
		}
	}
}

func TestWatcher_ImportsEachPathOnce(t *testing.T) {
	dir := t.TempDir()
	rec := &pathRecorder{}

	w := NewWatcher(dir, rec.record)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	dropped := filepath.Join(dir, "repeat.png")
	if err := os.WriteFile(dropped, []byte("v1"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	rec.waitForCount(t, 1, 2*time.Second)

	// Rewriting the same path fires more events but must not re-import
	if err := os.WriteFile(dropped, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	if got := len(rec.snapshot()); got != 1 {
		t.Errorf("got %d callbacks, want 1", got)
	}
}

func TestWatcher_StartOnMissingDirFails(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), func(string) {})

	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("Start() on a missing directory succeeded, want error")
	}
}
