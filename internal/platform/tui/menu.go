package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	ModeID      string
	Title       string
	Description string
	NeedsLevel  bool
}

// LevelItem represents a selectable adventure level.
type LevelItem struct {
	ID        string
	Name      string
	Zone      string
	Stars     int
	BestScore int
}

// Progress is the player data shown in the menu.
type Progress struct {
	Coins  int
	Levels map[string]storage.LevelResult
}

// LoadProgress reads menu progress from store. A nil store yields empty progress.
func LoadProgress(ctx context.Context, store *storage.Store) Progress {
	p := Progress{Levels: map[string]storage.LevelResult{}}
	if store == nil {
		return p
	}
	if coins, err := store.Coins(ctx); err == nil {
		p.Coins = coins
	}
	if results, err := store.LevelResults(ctx); err == nil {
		p.Levels = results
	}
	return p
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	items          []MenuItem
	levels         []LevelItem
	cursor         int
	levelCursor    int
	pickingLevel   bool
	coins          int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem  // Set when user selects a mode
	selectedLevel  *LevelItem // Set with selected when the mode needs a level
	openScoreboard bool       // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(catalog *levels.Catalog, progress Progress, cfg core.RuntimeConfig) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, 0, len(modes))
	for _, m := range modes {
		items = append(items, MenuItem{
			ModeID:      m.ID,
			Title:       m.Title,
			Description: m.Description,
			NeedsLevel:  m.NeedsLevel,
		})
	}

	var lvls []LevelItem
	if catalog != nil {
		for _, l := range catalog.Levels() {
			res := progress.Levels[l.ID]
			lvls = append(lvls, LevelItem{
				ID:        l.ID,
				Name:      l.Name,
				Zone:      l.Zone,
				Stars:     res.Stars,
				BestScore: res.BestScore,
			})
		}
	}

	return MenuModel{
		items:     items,
		levels:    lvls,
		coins:     progress.Coins,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.pickingLevel {
		return m.handleLevelKey(action)
	}

	switch action {
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

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		selected := m.items[m.cursor]
		if selected.NeedsLevel {
			if len(m.levels) > 0 {
				m.pickingLevel = true
				m.levelCursor = 0
			}
			return m, nil
		}
		m.selected = &selected
		return m, tea.Quit // Exit menu to start game

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.pickingLevel = false

	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}

	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		level := m.levels[m.levelCursor]
		m.selected = &selected
		m.selectedLevel = &level
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  B U B B L E S  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Coins: %d", m.coins), m.width))
	b.WriteString("\n\n")

	if m.pickingLevel {
		m.writeLevels(&b)
	} else {
		m.writeModes(&b)
	}

	return b.String()
}

func (m MenuModel) writeModes(b *strings.Builder) {
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.items[m.cursor].Description, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")
}

func (m MenuModel) writeLevels(b *strings.Builder) {
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	zone := ""
	for i, l := range m.levels {
		if l.Zone != zone {
			zone = l.Zone
			b.WriteString(centerText("~ "+strings.ToUpper(zone)+" ~", m.width))
			b.WriteString("\n")
		}
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		stars := strings.Repeat("★", l.Stars) + strings.Repeat("☆", 3-l.Stars)
		line := fmt.Sprintf("%s%-16s %s", cursor, l.Name, stars)
		if l.BestScore > 0 {
			line += fmt.Sprintf("  best %d", l.BestScore)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	b.WriteString("\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// SelectedLevel returns the selected level, or nil.
func (m MenuModel) SelectedLevel() *LevelItem {
	return m.selectedLevel
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	ModeID          string
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(catalog *levels.Catalog, progress Progress, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(catalog, progress, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result summarizes the final menu state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.ModeID = m.Selected().ModeID
		if l := m.SelectedLevel(); l != nil {
			result.LevelID = l.ID
		}
	}
	return result
}
