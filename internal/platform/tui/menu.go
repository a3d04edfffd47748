package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

// difficulties lists the presets the menu cycles through.
var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuItem represents a stage the player can start from.
type MenuItem struct {
	Index int
	ID    string
	Title string
}

// MenuModel is the Bubble Tea model for the stage picker.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int // Index into difficulties
	hiScore    int

	width, height int
	config        core.RuntimeConfig
	keys          *KeyMapper

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel creates a stage picker for the given stages.
func NewMenuModel(stages []*stage.Stage, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(stages))
	for i, st := range stages {
		title := st.Name
		if title == "" {
			title = st.ID
		}
		items = append(items, MenuItem{Index: i, ID: st.ID, Title: title})
	}

	hi := 0
	if store != nil {
		hi, _ = store.HighScore("shmup")
	}

	return MenuModel{
		items:      items,
		difficulty: 1,
		hiScore:    hi,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keys:       NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)

	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % len(difficulties)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScores:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

const menuHelp = "↑/↓ stage  ←/→ difficulty  enter play  tab scores  q quit"

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := make([]string, 0, len(m.items))
	for i, item := range m.items {
		line := fmt.Sprintf("%d. %s", item.Index+1, item.Title)
		if i == m.cursor {
			lines = append(lines, pickStyle.Render("> "+line+" "))
		} else {
			lines = append(lines, "  "+line+" ")
		}
	}
	list := lipgloss.JoinVertical(lipgloss.Left, lines...)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(m.width, titleStyle.Render("C H I C K E N   S H O O T E R")))
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, fmt.Sprintf("Hi-Score %d", m.hiScore)))
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, panelStyle.Render(list)))
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, fmt.Sprintf("< Difficulty: %s >", m.Difficulty())))
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, dimStyle.Render(menuHelp)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the stage the player picked, or nil.
func (m MenuModel) Selected() *MenuItem { return m.selected }

// Difficulty returns the preset currently shown.
func (m MenuModel) Difficulty() config.DifficultyPreset { return difficulties[m.difficulty] }

func (m MenuModel) IsQuitting() bool      { return m.quitting }
func (m MenuModel) WantsScoreboard() bool { return m.openScoreboard }

// Config returns the runtime config, resized to the last window size seen.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Stage           int
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the stage picker and returns what the player chose.
func RunMenu(stages []*stage.Stage, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(stages, store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{
		Config:          m.Config(),
		Difficulty:      m.Difficulty(),
		WantsScoreboard: m.WantsScoreboard(),
	}
	switch sel := m.Selected(); {
	case res.WantsScoreboard:
	case m.IsQuitting() || sel == nil:
		res.Quit = true
	default:
		res.Stage = sel.Index
		res.Config.Stage = sel.Index
	}
	return res, nil
}
