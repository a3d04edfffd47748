package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shmup/internal/storage"
)

// scoreLimit caps how many rows a scoreboard tab loads.
const scoreLimit = 100

// scoreKeys are the scoreboard bindings; they also feed the help bar.
type scoreKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev tab")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreTab is one list the scoreboard can show.
type scoreTab struct {
	title   string
	columns []table.Column
	rows    func(store *storage.Store, gameID string) []table.Row
}

var scoreTabs = []scoreTab{
	{
		title: "Top Scores",
		columns: []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Stage", Width: 6},
			{Title: "Date", Width: 14},
		},
		rows: topScoreRows,
	},
	{
		title: "Recent Runs",
		columns: []table.Column{
			{Title: "Score", Width: 10},
			{Title: "Stage", Width: 6},
			{Title: "Level", Width: 8},
			{Title: "Time", Width: 6},
			{Title: "Date", Width: 14},
		},
		rows: recentRunRows,
	},
}

const dateLayout = "Jan 02 15:04"

func topScoreRows(store *storage.Store, gameID string) []table.Row {
	scores, _ := store.TopScores(gameID, scoreLimit)
	rows := make([]table.Row, 0, len(scores))
	for i, s := range scores {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Stage),
			s.CreatedAt.Format(dateLayout),
		})
	}
	return rows
}

func recentRunRows(store *storage.Store, gameID string) []table.Row {
	runs, _ := store.RecentRuns(gameID, scoreLimit)
	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		stage := strconv.Itoa(r.Stage)
		if r.Cleared {
			stage = "ALL"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(r.Score),
			stage,
			r.Difficulty,
			fmt.Sprintf("%d:%02d", r.Duration/60, r.Duration%60),
			r.CreatedAt.Format(dateLayout),
		})
	}
	return rows
}

// ScoreboardModel shows stored scores and runs in tabs.
type ScoreboardModel struct {
	store  *storage.Store
	gameID string
	tab    int
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	keys   scoreKeys
	width  int
	height int

	quitting bool
	back     bool
}

// NewScoreboardModel opens the scoreboard on its first tab. A nil store
// shows empty tabs.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		gameID: gameID,
		help:   help.New(),
		keys:   newScoreKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// reload rebuilds the table for the current tab from storage. Storage
// errors leave the tab empty.
func (m *ScoreboardModel) reload() {
	tab := scoreTabs[m.tab]

	var rows []table.Row
	m.stats = nil
	if m.store != nil {
		rows = tab.rows(m.store, m.gameID)
		m.stats, _ = m.store.GetGameStats(m.gameID)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	m.table = table.New(
		table.WithColumns(tab.columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

// Tab returns the title of the tab on screen.
func (m ScoreboardModel) Tab() string { return scoreTabs[m.tab].title }

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % len(scoreTabs)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab + len(scoreTabs) - 1) % len(scoreTabs)
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	tabs := make([]string, len(scoreTabs))
	for i, tab := range scoreTabs {
		if i == m.tab {
			tabs[i] = pickStyle.Padding(0, 1).Render(tab.title)
		} else {
			tabs[i] = dimStyle.Padding(0, 1).Render(tab.title)
		}
	}

	body := dimStyle.Italic(true).Padding(2, 4).Render("Nothing recorded yet.\nFinish a game to set a score!")
	if len(m.table.Rows()) > 0 {
		body = m.table.View()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(m.width, titleStyle.Render("HIGH SCORES")))
	b.WriteString("\n")
	b.WriteString(centered(m.width, m.summary()))
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n")
	b.WriteString(centered(m.width, panelStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(centered(m.width, dimStyle.Render(m.help.View(m.keys))))
	return b.String()
}

// summary is the totals line under the title.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games played"
	}
	return fmt.Sprintf("Games %d  |  Best %d  |  Avg %.0f  |  Best stage %d  |  Clears %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.BestStage, m.stats.Clears)
}

// GoingBack reports whether the player left for the menu rather than quitting.
func (m ScoreboardModel) GoingBack() bool { return m.back }

// RunScoreboard shows the scoreboard until the player leaves. goBack is
// true when the player asked for the menu.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, gameID, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.GoingBack(), nil
}
