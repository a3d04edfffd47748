package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
)

func newTestModel(inMenu bool) Model {
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	m := NewModel(cfg, Options{InMenu: inMenu})
	m.Init()
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelTicksTheGame(t *testing.T) {
	m := send(newTestModel(false), TickMsg{}, TickMsg{})

	if m.gameState.Stage != 1 {
		t.Errorf("Stage = %d, expected 1", m.gameState.Stage)
	}
	if m.game.Play().Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", m.game.Play().Ticks())
	}
}

func TestModelPauseAndBackToMenu(t *testing.T) {
	m := send(newTestModel(true), runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("B while playing should not leave the game")
	}

	m = send(m, runeKey('p'), TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("P should pause")
	}

	m = send(m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("B while paused should go back to the menu")
	}
	if m.View() != "" {
		t.Error("view should be empty once leaving")
	}
}

func TestModelBackIgnoredOutsideMenu(t *testing.T) {
	m := send(newTestModel(false), runeKey('p'), TickMsg{}, runeKey('b'))
	if m.BackToMenu() {
		t.Error("B should do nothing when started without the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(false)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m := send(newTestModel(false), TickMsg{}, TickMsg{}, TickMsg{})
	play := m.game.Play()

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.game.Play() != play {
		t.Error("resize should not restart the session")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestSequentialModelsShareWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := stage.NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	cfg := core.DefaultConfig()
	cfg.Seed = 7

	// A finished session leaves its watch command behind
	first := NewModel(cfg, Options{Watcher: w, InMenu: true})
	firstWatch := watchCmd(first.changes)
	firstDone := make(chan tea.Msg, 1)
	go func() { firstDone <- firstWatch() }()
	first.Close()

	select {
	case msg := <-firstDone:
		if msg != nil {
			t.Errorf("closed session's watch returned %#v, expected nil", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("closed session's watch command never returned")
	}

	second := NewModel(cfg, Options{Watcher: w, InMenu: true})
	defer second.Close()
	secondDone := make(chan tea.Msg, 1)
	go func() { secondDone <- watchCmd(second.changes)() }()

	want := filepath.Join(dir, "02_cave.yaml")
	if err := os.WriteFile(want, []byte("id: cave\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-secondDone:
		changed, ok := msg.(StageChangedMsg)
		if !ok || changed.Path != want {
			t.Errorf("second session got %#v, expected StageChangedMsg for %q", msg, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second session never saw the stage write")
	}
}
