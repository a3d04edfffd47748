package shmup

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical sessions
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		switch {
		case i%40 < 10:
			inputSequence[i].Set(core.ActionUp)
		case i%40 >= 20 && i%40 < 30:
			inputSequence[i].Set(core.ActionDown)
		}
		if i == 300 {
			inputSequence[i].Set(core.ActionShield)
		}
	}

	run := func() Snapshot {
		g := New(Options{})
		g.Reset(testRuntime())
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Play().Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
}

func TestGameDirectionHold(t *testing.T) {
	g := New(Options{})
	g.Reset(testRuntime())
	startY := g.Play().Player().Y

	up := core.NewInputFrame()
	up.Set(core.ActionUp)
	g.Step(up)
	for range holdTicks * 2 {
		g.Step(core.NewInputFrame())
	}

	cfg := g.Play().Config()
	want := startY + cfg.Player.Speed*testRuntime().FrameSeconds()*holdTicks
	if got := g.Play().Player().Y; got < want-1e-6 || got > want+1e-6 {
		t.Errorf("Y = %v after one key press, expected %v", got, want)
	}
}

func TestGamePauseToggle(t *testing.T) {
	g := New(Options{})
	g.Reset(testRuntime())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	if !g.Step(pause).State.Paused {
		t.Fatal("first pause should pause")
	}
	ticks := g.Play().Ticks()
	g.Step(core.NewInputFrame())
	if g.Play().Ticks() != ticks {
		t.Error("paused game advanced")
	}
	if g.Step(pause).State.Paused {
		t.Error("second pause should resume")
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := New(Options{})
	g.Reset(testRuntime())
	p := g.Play()
	for p.Lives() > 0 {
		p.player.spawn(&p.cfg, 0)
		p.Miss()
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	state := g.Step(restart).State
	if state.GameOver || g.Play() == p {
		t.Error("restart should start a new session")
	}
}

func TestGameRender(t *testing.T) {
	g := New(Options{})
	g.Reset(testRuntime())
	for range 30 {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score:") {
		t.Errorf("HUD row = %q, expected the score", screen.Row(0))
	}

	pl := g.Play().Player()
	cfg := g.Play().Config()
	col, row, ok := NewScreenPresenter(screen, cfg.Field.Width, cfg.Field.Height).Cell(pl.X, pl.Y)
	if !ok {
		t.Fatal("player should be inside the field")
	}
	if r := screen.Get(col, row); r != '>' && r != '≥' {
		t.Errorf("cell under the player = %q, expected the ship", r)
	}
}

func TestGameScreenTooSmall(t *testing.T) {
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 20, 8
	g := New(Options{})
	g.Reset(rt)

	before := g.Play().Ticks()
	g.Step(core.NewInputFrame())
	if g.Play().Ticks() != before {
		t.Error("game should not advance on a small screen")
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected a size warning")
	}
}

func TestGameBadStagesDir(t *testing.T) {
	SetStagesDir(t.TempDir())
	defer SetStagesDir("")

	g := New(Options{})
	g.Reset(testRuntime())
	if g.Err() == nil || g.Play() != nil {
		t.Fatal("empty stage directory should fail to start")
	}
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start") {
		t.Error("expected a load error message")
	}
}

func TestScreenPresenterCell(t *testing.T) {
	sp := NewScreenPresenter(core.NewScreen(80, 24), 480, 320)

	tests := []struct {
		name       string
		x, y       float64
		wantCol    int
		wantRow    int
		wantInside bool
	}{
		{"bottom left", 0, 0, 0, 23, true},
		{"top right", 479, 319, 79, HUDRows, true},
		{"center", 240, 160, 40, 12, true},
		{"left of field", -1, 100, 0, 0, false},
		{"above field", 100, 320, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row, ok := sp.Cell(tc.x, tc.y)
			if ok != tc.wantInside {
				t.Fatalf("inside = %v, expected %v", ok, tc.wantInside)
			}
			if ok && (col != tc.wantCol || row != tc.wantRow) {
				t.Errorf("Cell() = (%d, %d), expected (%d, %d)", col, row, tc.wantCol, tc.wantRow)
			}
		})
	}
}
