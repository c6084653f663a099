package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

const (
	minWidthForPanel = 80  // Below this the progress panel is hidden
	panelWidth       = 22
	maxScores        = 100
	maxAchievements  = 5 // Shown in the panel, newest last
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	boardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardModeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// playerProgress is what the side panel shows. It does not depend on the
// selected mode.
type playerProgress struct {
	coins        int
	achievements []storage.Achievement
	stars        int
	cleared      int
}

// ScoreboardModel shows the top runs per mode next to the player's
// progress.
type ScoreboardModel struct {
	modes    []registry.ModeInfo
	cursor   int
	store    *storage.Store
	scores   []storage.ScoreEntry
	stats    *storage.ModeStats
	progress playerProgress
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.loadProgress()
	if len(m.modes) > 0 {
		m.selectMode(0)
	}
	return m
}

func (m ScoreboardModel) showPanel() bool {
	return m.width >= minWidthForPanel
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 11},
		{Title: "Result", Width: 7},
		{Title: "Date", Width: 12},
	}

	room := m.width - 6
	if m.showPanel() {
		room -= panelWidth + 4
	}
	if extra := room - 51; extra > 0 {
		columns[2].Width += min(extra, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) loadProgress() {
	m.progress = playerProgress{}
	if m.store == nil {
		return
	}
	ctx := context.Background()
	if coins, err := m.store.Coins(ctx); err == nil {
		m.progress.coins = coins
	}
	if list, err := m.store.Achievements(ctx); err == nil {
		m.progress.achievements = list
	}
	if results, err := m.store.LevelResults(ctx); err == nil {
		for _, r := range results {
			m.progress.stars += r.Stars
			m.progress.cleared++
		}
	}
}

// selectMode moves the cursor to i, wrapping around, and loads its runs.
func (m *ScoreboardModel) selectMode(i int) {
	n := len(m.modes)
	m.cursor = ((i % n) + n) % n
	m.scores, m.stats = nil, nil

	if m.store != nil {
		ctx := context.Background()
		id := m.modes[m.cursor].ID
		if scores, err := m.store.TopScores(ctx, id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.Stats(ctx, id); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		level := s.LevelID
		if level == "" {
			level = "-"
		}
		result := s.Outcome
		if s.Stars > 0 {
			result = strings.Repeat("★", s.Stars)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(s.Score),
			level,
			result,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.selectMode(m.cursor + 1)
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.selectMode(m.cursor - 1)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillTable()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.modes) > 0 {
		title += " - " + m.modes[m.cursor].Title
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	scores := boardBoxStyle.Render(m.tableView())
	if m.showPanel() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.panelView(), "  ", scores))
	} else {
		b.WriteString(centerText(m.modeSwitcher(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(scores, m.width))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No runs yet"
	}
	line := fmt.Sprintf("Runs %d  |  Wins %d  |  Best %d  |  Avg %.0f",
		m.stats.GamesCount, m.stats.Wins, m.stats.HighScore, m.stats.AvgScore)
	if !m.stats.LastPlayed.IsZero() {
		line += "  |  Last " + m.stats.LastPlayed.Format("Jan 02")
	}
	return line
}

// panelView lists the modes and the player's progress.
func (m ScoreboardModel) panelView() string {
	var p strings.Builder
	for i, mode := range m.modes {
		if i == m.cursor {
			p.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + mode.Title))
		} else {
			p.WriteString("  " + mode.Title)
		}
		p.WriteString("\n")
	}

	p.WriteString("\n")
	fmt.Fprintf(&p, "Coins   %d\n", m.progress.coins)
	fmt.Fprintf(&p, "Stars   %d\n", m.progress.stars)
	fmt.Fprintf(&p, "Cleared %d\n", m.progress.cleared)

	if list := m.progress.achievements; len(list) > 0 {
		p.WriteString("\nAchievements\n")
		for _, a := range list[max(len(list)-maxAchievements, 0):] {
			p.WriteString(boardDimStyle.Render("· "+a.ID) + "\n")
		}
	}

	return boardBoxStyle.Width(panelWidth).Render(strings.TrimRight(p.String(), "\n"))
}

// modeSwitcher is the narrow-screen replacement for the panel.
func (m ScoreboardModel) modeSwitcher() string {
	if len(m.modes) == 0 {
		return ""
	}
	return boardDimStyle.Render("< ") + boardModeStyle.Render(m.modes[m.cursor].Title) + boardDimStyle.Render(" >")
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).Render("No scores recorded yet.\nFinish a run to set a high score!")
	}
	return m.table.View()
}

// Scores returns the loaded score entries.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
