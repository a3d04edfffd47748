package stage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeStage(t *testing.T, dir, name, id string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	data := []byte("id: \"" + id + "\"\nname: Tiny\nlayers:\n  block: |\n    ##\n")
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoaderBuiltin(t *testing.T) {
	ids, err := NewLoader("", nil).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	if len(ids) < 2 || ids[0] != "01" || ids[1] != "02" {
		t.Errorf("built-in IDs = %v, expected [01 02 ...]", ids)
	}
}

func TestLoaderDirectory(t *testing.T) {
	dir := t.TempDir()
	writeStage(t, dir, "b.yaml", "20")
	writeStage(t, dir, "a.yml", "10")
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir, nil)
	stages, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(stages) != 2 || stages[0].ID != "10" || stages[1].ID != "20" {
		t.Fatalf("stages = %d, expected IDs 10 and 20 in order", len(stages))
	}
	if stages[0].FilePath != filepath.Join(dir, "a.yml") {
		t.Errorf("FilePath = %q", stages[0].FilePath)
	}
	if stages[0].TileSize != DefaultTileSize {
		t.Errorf("TileSize = %v, expected default %d", stages[0].TileSize, DefaultTileSize)
	}

	if _, err := l.LoadByID("20"); err != nil {
		t.Errorf("LoadByID(20) error = %v", err)
	}
	if _, err := l.LoadByID("99"); err == nil {
		t.Error("LoadByID(99) should fail")
	}
	if _, err := l.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

func TestWatcherReportsStageWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()
	sub := w.Subscribe()

	p := writeStage(t, dir, "hot.yaml", "30")

	select {
	case got := <-sub.Events:
		if got != p {
			t.Errorf("event path = %q, expected %q", got, p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for a written stage file")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
