package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) (*Watcher, chan string) {
	t.Helper()
	changed := make(chan string, 8)
	w, err := New(func(path string) { changed <- path })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.delay = 20 * time.Millisecond
	t.Cleanup(func() { w.Close() })
	return w, changed
}

func TestWatchReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, changed := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.png"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("c"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != w.Target() {
			t.Errorf("changed %q, want %q", got, w.Target())
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, changed := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(""); err != nil {
		t.Fatal(err)
	}
	if w.Target() != "" {
		t.Fatalf("target after stop: %q", w.Target())
	}
	if err := os.WriteFile(path, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-changed:
		t.Errorf("unexpected change for %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDir(t *testing.T) {
	w, _ := newTestWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "photo.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}
