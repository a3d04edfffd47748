package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

// SessionModel is the whole program of one SSH connection: it switches
// between the stage picker and a game, and back again.
type SessionModel struct {
	stages []*stage.Stage
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig

	menu MenuModel
	game *Model // Nil while the picker is up
	done bool
}

// NewSessionModel starts a session on the stage picker.
func NewSessionModel(stages []*stage.Stage, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		stages: stages,
		store:  store,
		logger: logger,
		config: cfg,
		menu:   NewMenuModel(stages, store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd { return m.menu.Init() }

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}
	if m.game != nil {
		return m.playing(msg)
	}
	return m.picking(msg)
}

func (m SessionModel) picking(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch sel := m.menu.Selected(); {
	case m.menu.IsQuitting():
		m.done = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		// Remote players have no scoreboard program; the picker stays up
		m.menu = NewMenuModel(m.stages, m.store, m.config)
		return m, nil

	case sel != nil:
		m.config = m.menu.Config()
		m.config.Stage = sel.Index
		m.config.Seed = time.Now().UnixNano()

		game := NewModel(m.config, Options{
			Store:      m.store,
			Logger:     m.logger,
			Difficulty: string(m.menu.Difficulty()),
			InMenu:     true,
		})
		m.game = &game
		m.logger.Info("game started", "stage", sel.ID, "difficulty", m.menu.Difficulty())
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) playing(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	game := next.(Model)
	m.game = &game

	switch {
	case game.BackToMenu():
		m.logger.Info("game left", "score", game.gameState.Score, "stage", game.gameState.Stage)
		m.game = nil
		m.menu = NewMenuModel(m.stages, m.store, m.config)
		return m, m.menu.Init()
	case game.IsQuitting():
		m.done = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) View() string {
	switch {
	case m.done:
		return ""
	case m.game != nil:
		return m.game.View()
	default:
		return m.menu.View()
	}
}
