package stage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatcherReportsStageFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()
	sub := w.Subscribe()

	// Only stage files are reported
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "03_sky.yaml")
	if err := os.WriteFile(want, []byte("id: sky\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-sub.Events:
		if got != want {
			t.Errorf("event for %q, expected %q", got, want)
		}
	case err := <-sub.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the written stage file")
	}
}

func TestWatcherClosedSubscriptionMissesChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	first := w.Subscribe()
	first.Close()
	first.Close()
	if _, ok := <-first.Events; ok {
		t.Fatal("closed subscription should have closed Events")
	}

	second := w.Subscribe()
	want := filepath.Join(dir, "04_deep.yaml")
	if err := os.WriteFile(want, []byte("id: deep\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-second.Events:
		if got != want {
			t.Errorf("event for %q, expected %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("later subscription got no event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	sub := w.Subscribe()
	if err := w.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v, expected nil", err)
	}

	// Close shuts every subscription
	if _, ok := <-sub.Events; ok {
		t.Error("Events should be closed")
	}
	sub.Close()

	late := w.Subscribe()
	if _, ok := <-late.Events; ok {
		t.Error("subscribing to a closed watcher should yield closed channels")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := NewWatcher(missing)
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if want := "stage: watch " + missing + ":"; !strings.HasPrefix(err.Error(), want) {
		t.Errorf("error = %q, expected prefix %q", err, want)
	}
}
