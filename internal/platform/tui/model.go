package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

// StageChangedMsg reports a stage file that changed on disk.
type StageChangedMsg struct{ Path string }

// WatchErrMsg reports a failure of the stage watcher.
type WatchErrMsg struct{ Err error }

// Options configures a play session in the terminal.
type Options struct {
	Store      *storage.Store
	Logger     *log.Logger
	Watcher    *stage.Watcher // Optional stage hot reload
	Difficulty string

	// InMenu lets B return to the stage picker when paused or after the game.
	InMenu bool
}

// Model is the Bubble Tea model for running the shooter.
type Model struct {
	game       *shmup.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	changes    *stage.Subscription
	config     core.RuntimeConfig
	keys       *KeyMapper
	inMenu     bool
	inputFrame core.InputFrame
	gameState  core.GameState
	difficulty string
	started    time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for a play session.
func NewModel(cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	gameOpts := shmup.Options{
		Logger:     logger,
		Difficulty: config.ParsePreset(opts.Difficulty),
	}
	if opts.Store != nil {
		gameOpts.HiScores = storage.NewHiScores(opts.Store, "shmup")
	}

	var changes *stage.Subscription
	if opts.Watcher != nil {
		changes = opts.Watcher.Subscribe()
	}

	return Model{
		game:       shmup.New(gameOpts),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		changes:    changes,
		config:     cfg,
		keys:       NewKeyMapper(),
		inMenu:     opts.InMenu,
		inputFrame: core.NewInputFrame(),
		difficulty: opts.Difficulty,
	}
}

// Init starts the game, the tick loop and the stage watcher.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if err := m.game.Err(); err != nil {
		m.logger.Error("cannot start game", "err", err)
	}
	return tea.Batch(tickCmd(m.config.TickRate), watchCmd(m.changes))
}

// watchCmd waits for the next stage change. It returns nil once the
// subscription is closed.
func watchCmd(sub *stage.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case p, ok := <-sub.Events:
			if !ok {
				return nil
			}
			return StageChangedMsg{Path: p}
		case err, ok := <-sub.Errors:
			if !ok {
				return nil
			}
			return WatchErrMsg{Err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case StageChangedMsg:
		m.reloadStage(msg.Path)
		return m, watchCmd(m.changes)

	case WatchErrMsg:
		m.logger.Warn("stage watcher", "err", msg.Err)
		return m, watchCmd(m.changes)
	}

	return m, nil
}

// reloadStage parses a changed stage file and swaps it into the session.
func (m *Model) reloadStage(p string) {
	st, err := stage.NewLoader(shmup.StagesDir(), m.logger).LoadFile(p)
	if err != nil {
		m.logger.Warn("stage reload failed", "path", p, "err", err)
		return
	}
	if !m.game.ReloadStage(st) {
		m.logger.Info("changed stage is not part of this session", "stage", st.ID)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if quit := m.keys.MapKeyToFrame(msg, &m.inputFrame); quit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inMenu && msg.String() == "b" && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	m.game.Resize(msg.Width, msg.Height)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = time.Now()
	}

	// Each restart gets a fresh seed
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.started = time.Now()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished game. Storage failures are logged and the
// game continues.
func (m *Model) saveRun() {
	if m.store == nil || m.game.Play() == nil {
		return
	}
	p := m.game.Play()
	st := m.gameState

	if st.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), st.Score, st.Stage); err != nil {
			m.logger.Warn("cannot save score", "err", err)
		}
	}

	difficulty := m.difficulty
	if difficulty == "" {
		difficulty = "default"
	}
	dropped := 0
	for _, n := range p.Diagnostics().Dropped {
		dropped += n
	}
	run := storage.Run{
		GameID:     m.game.ID(),
		Seed:       m.config.Seed,
		Difficulty: difficulty,
		Score:      st.Score,
		Stage:      st.Stage,
		Cleared:    st.Cleared,
		Ticks:      p.Ticks(),
		Dropped:    dropped,
		Duration:   int(time.Since(m.started).Seconds()),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("cannot save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the stage picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Close releases the session's stage subscription so its pending watch
// command returns.
func (m Model) Close() {
	if m.changes != nil {
		m.changes.Close()
	}
}

// Run starts the Bubble Tea program for a play session. It reports whether
// the player asked to go back to the stage picker.
func Run(cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(cfg, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	return ok && fm.BackToMenu(), nil
}
