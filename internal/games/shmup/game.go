package shmup

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
)

// Minimum terminal size for a playable field.
const (
	MinScreenW = 40
	MinScreenH = 14
)

// holdTicks is how long a direction key keeps the ship moving. Terminals
// report key presses and repeats but never releases.
const holdTicks = 6

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// stagesDir stores the stage directory set via CLI; empty uses the built-in stages
var stagesDir string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStagesDir sets the directory stage files are read from.
func SetStagesDir(dir string) {
	stagesDir = dir
}

// StagesDir returns the directory set with SetStagesDir.
func StagesDir() string {
	return stagesDir
}

// Game adapts a play session to the terminal platform: fixed ticks, discrete
// key actions and a character screen.
type Game struct {
	opts    Options
	runtime core.RuntimeConfig
	play    *PlayData

	holdX, holdY int
	hold         int

	loadErr        error
	screenTooSmall bool
}

// New creates a game. opts.Seed and opts.Stage are taken from the runtime
// config at each Reset.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{opts: opts}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string { return "shmup" }

// Title returns the display name.
func (g *Game) Title() string { return "Chicken Shooter" }

// Play returns the running session; nil when Reset failed.
func (g *Game) Play() *PlayData { return g.play }

// Err returns the error that kept the last Reset from starting a session.
func (g *Game) Err() error { return g.loadErr }

// Reset loads configuration and stages and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.hold = 0
	g.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH

	cfg, err := config.LoadShmup(configPath)
	if err != nil {
		g.opts.Logger.Warn("config load failed, using defaults", "err", err)
		cfg = config.DefaultShmupConfig()
	}
	preset := difficultyPreset
	if g.opts.Difficulty != "" {
		preset = g.opts.Difficulty
	}
	if preset != "" {
		config.ApplyShmupPreset(&cfg, preset)
	}

	stages, err := LoadStages(stagesDir, g.opts.Logger)
	if err != nil {
		g.loadErr = err
		g.play = nil
		return
	}
	g.loadErr = nil

	opts := g.opts
	opts.Seed = uint64(runtime.Seed) //#nosec G115 -- seed bits are reused as is
	opts.Stage = runtime.Stage
	g.play = NewPlayData(cfg, stages, opts)
}

// LoadStages reads every stage in dir, or the built-in stages when dir is
// empty. It fails when no stage could be loaded.
func LoadStages(dir string, logger *log.Logger) ([]*stage.Stage, error) {
	stages, err := stage.NewLoader(dir, logger).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("shmup: no stages found in %q", dir)
	}
	return stages, nil
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.play == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}
	p := g.play

	if in.Has(core.ActionRestart) && p.Ended() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !p.Ended() {
		if p.Paused() {
			p.Resume()
		} else {
			p.Pause()
		}
	}
	if p.Paused() || p.Ended() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionShield) {
		p.SetShield(!p.Player().Shield())
	}

	// A direction key starts or renews a short hold
	if dx, dy := in.Axis(); dx != 0 || dy != 0 {
		g.holdX, g.holdY = dx, dy
		g.hold = holdTicks
	}
	dt := g.runtime.FrameSeconds()
	if g.hold > 0 {
		g.hold--
		step := p.Config().Player.Speed * dt
		p.MovePlayer(float64(g.holdX)*step, float64(g.holdY)*step)
	}

	p.Update(dt)
	return core.StepResult{State: g.State()}
}

// Resize records a new terminal size. The field scales to fit, so the
// session keeps running; only the minimum size check is redone.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.screenTooSmall = w < MinScreenW || h < MinScreenH
}

// ReloadStage swaps in a changed stage file.
func (g *Game) ReloadStage(st *stage.Stage) bool {
	if g.play == nil {
		return false
	}
	return g.play.ReloadStage(st)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.play == nil {
		return core.GameState{}
	}
	return g.play.State()
}
