package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Config   core.RuntimeConfig
	Painter  *Painter
	Username string
}

// SessionModel manages the full flow: menu -> run -> menu, with the
// scoreboard one key away. It is the top-level model for SSH sessions and
// the local menu.
type SessionModel struct {
	ctx      context.Context
	launcher Launcher
	painter  *Painter
	config   core.RuntimeConfig
	username string
	menu     MenuModel
	play     *Model
	board    *ScoreboardModel
	lastErr  string
	quitting bool
}

// NewSessionModel creates a new session model. Runs live until ctx ends.
func NewSessionModel(ctx context.Context, launcher Launcher, opts SessionOptions) SessionModel {
	if opts.Painter == nil {
		opts.Painter = NewPainter(nil)
	}
	m := SessionModel{
		ctx:      ctx,
		launcher: launcher,
		painter:  opts.Painter,
		config:   opts.Config,
		username: opts.Username,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.launcher.Levels, LoadProgress(m.ctx, m.launcher.Store), m.config)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.play != nil:
		return m.updatePlay(msg)
	case m.board != nil:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.lastErr = ""
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	res := m.menu.Result()
	switch {
	case res.WantsScoreboard:
		board := NewScoreboardModel(m.launcher.Store, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		m.menu = m.newMenu()
		return m, board.Init()

	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case res.ModeID != "":
		m.menu = m.newMenu()
		s, err := m.launcher.Start(m.ctx, res.ModeID, res.LevelID)
		if err != nil {
			m.lastErr = describe(err)
			return m, nil
		}
		play := NewModel(s, PlayOptions{
			Painter:   m.painter,
			NextLevel: m.launcher.NextLevel(),
			Width:     m.config.ScreenW,
			Height:    m.config.ScreenH,
		})
		m.play = &play
		return m, play.Init()
	}

	return m, cmd
}

// updatePlay handles updates while a run is on screen.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if play, ok := newModel.(Model); ok {
		m.play = &play
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.BackToMenu() {
		m.play = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateBoard handles updates while the scoreboard is open.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.board = nil
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.play != nil:
		return m.play.View()
	case m.board != nil:
		return m.board.View()
	}

	view := m.menu.View()
	if m.username != "" {
		view += "\n" + centerText("Playing as "+m.username, m.config.ScreenW)
	}
	if m.lastErr != "" {
		view += "\n" + centerText(m.lastErr, m.config.ScreenW)
	}
	return view
}

// RunSession runs the menu flow in the local terminal.
func RunSession(ctx context.Context, launcher Launcher, cfg core.RuntimeConfig) error {
	model := NewSessionModel(ctx, launcher, SessionOptions{Config: cfg})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
