package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	bcore "github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
)

// commandTimeout bounds how long a key press waits for the session loop.
const commandTimeout = time.Second

// NextLevelFunc returns the level after id, or "" when there is none.
type NextLevelFunc func(id string) string

// PlayOptions configures the play screen.
type PlayOptions struct {
	Painter   *Painter
	NextLevel NextLevelFunc // Adventure "next level"; nil disables it
	AimStep   float64       // Degrees per key press, default 3
	Width     int
	Height    int

	// ExitOnBack ends the program when the player leaves the run instead of
	// handing control back to an enclosing model.
	ExitOnBack bool
}

// Model is the Bubble Tea model for playing one session. The session loop
// must be started by the caller; Model only sends commands and reads frames.
type Model struct {
	session  *engine.Session
	sub      *engine.Subscription
	keys     *KeyMapper
	help     help.Model
	painter  *Painter
	screen   *core.Screen
	next     NextLevelFunc
	aimStep  float64
	exitBack bool
	frame    engine.Frame
	hasFrame bool
	status   string
	statusID int
	width    int
	height   int

	quitting   bool
	backToMenu bool
	ended      bool
}

// NewModel subscribes to session and creates the play screen.
func NewModel(session *engine.Session, opts PlayOptions) Model {
	if opts.Painter == nil {
		opts.Painter = NewPainter(nil)
	}
	if opts.AimStep <= 0 {
		opts.AimStep = 3
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		session:  session,
		sub:      session.Subscribe(engine.DefaultBuffer),
		keys:     NewKeyMapper(),
		help:     h,
		painter:  opts.Painter,
		screen:   core.NewScreen(1, 1),
		next:     opts.NextLevel,
		aimStep:  opts.AimStep,
		exitBack: opts.ExitOnBack,
		width:    opts.Width,
		height:   opts.Height,
	}
}

// Init starts waiting for frames.
func (m Model) Init() tea.Cmd {
	return waitFrame(m.sub)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = engine.Frame(msg)
		m.hasFrame = true
		var cmd tea.Cmd
		if msg.Err != nil {
			m, cmd = m.setStatus(describe(msg.Err))
		}
		return m, tea.Batch(cmd, waitFrame(m.sub))

	case SessionEndedMsg:
		m.ended = true
		return m, nil

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		return m.setStatus(m.saveScreenshot())
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}

	snap := m.frame.Snapshot
	switch action {
	case core.ActionLeft:
		return m.exec(func(ctx context.Context) error { return m.session.Nudge(ctx, -m.aimStep) })
	case core.ActionRight:
		return m.exec(func(ctx context.Context) error { return m.session.Nudge(ctx, m.aimStep) })
	case core.ActionFire:
		return m.exec(m.session.Fire)
	case core.ActionSwap:
		return m.exec(m.session.Swap)
	case core.ActionPause:
		return m.exec(m.session.TogglePause)
	case core.ActionRestart:
		return m.exec(m.session.Restart)
	case core.ActionConfirm:
		return m.advance(snap)
	case core.ActionBack:
		if snap.Outcome != bcore.OutcomePlaying || snap.Paused || m.ended {
			m.backToMenu = true
			m.Close()
			if m.exitBack {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// advance moves to the next adventure level after a win, or retries a lost run.
func (m Model) advance(snap bcore.Snapshot) (tea.Model, tea.Cmd) {
	switch snap.Outcome {
	case bcore.OutcomeLost:
		return m.exec(m.session.Restart)
	case bcore.OutcomeWon:
		if m.next == nil || snap.LevelID == "" {
			return m, nil
		}
		id := m.next(snap.LevelID)
		if id == "" {
			return m.setStatus("That was the last level")
		}
		return m.exec(func(ctx context.Context) error { return m.session.LoadLevel(ctx, id) })
	}
	return m, nil
}

// handleMouse aims at the pointer and fires on click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.hasFrame || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	snap := m.frame.Snapshot
	frame := bubbles.BoardRect(snap)
	if !frame.Contains(msg.X, msg.Y) {
		return m, nil
	}

	px, py := bubbles.ScreenToBoard(snap, msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		return m.exec(func(ctx context.Context) error { return m.session.AimAt(ctx, px, py) })
	case tea.MouseActionPress:
		return m.exec(func(ctx context.Context) error {
			if err := m.session.AimAt(ctx, px, py); err != nil {
				return err
			}
			return m.session.Fire(ctx)
		})
	}
	return m, nil
}

// exec runs a session command and reports failures on the status line.
func (m Model) exec(fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		if errors.Is(err, engine.ErrClosed) {
			m.ended = true
		}
		return m.setStatus(describe(err))
	}
	return m, nil
}

func (m Model) setStatus(text string) (Model, tea.Cmd) {
	m.statusID++
	m.status = text
	return m, clearStatusCmd(m.statusID)
}

// describe turns engine errors into short status messages.
func describe(err error) string {
	switch {
	case errors.Is(err, bcore.ErrCapacityExceeded):
		return "No room for that bubble"
	case errors.Is(err, bcore.ErrConfigNotFound):
		return "Level not found"
	case errors.Is(err, engine.ErrClosed):
		return "Session closed"
	case errors.Is(err, bcore.ErrInvalidState):
		return "Not now"
	default:
		return err.Error()
	}
}

// saveScreenshot saves the current screen to a text file.
func (m Model) saveScreenshot() string {
	if !m.hasFrame {
		return "Nothing to save yet"
	}
	m.draw()

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "Screenshot failed"
	}

	snap := m.frame.Snapshot
	filename := fmt.Sprintf("%s_%s.txt", snap.Mode, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "Screenshot failed"
	}
	return "Saved " + filename
}

// draw renders the latest frame into the screen buffer.
func (m Model) draw() {
	snap := m.frame.Snapshot
	w, h := bubbles.Size(snap)
	m.screen.Resize(w, h)
	bubbles.Render(snap, m.screen)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if !m.hasFrame {
		return "Loading..."
	}

	m.draw()
	body := m.painter.Paint(m.screen) + "\n" + m.footer()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) footer() string {
	snap := m.frame.Snapshot
	hint := ""
	switch {
	case m.ended:
		hint = "Session ended, esc for menu"
	case snap.Outcome == bcore.OutcomeWon && snap.Mode == bcore.ModeAdventure && m.next != nil:
		hint = "n: next level  r: replay  esc: menu"
	case snap.Outcome != bcore.OutcomePlaying:
		hint = "r: play again  esc: menu"
	case snap.Paused:
		hint = "p: resume  esc: menu"
	}
	if m.status != "" {
		hint = m.status
	}
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return statusStyle.Render(hint) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Frame returns the latest frame received.
func (m Model) Frame() (engine.Frame, bool) {
	return m.frame, m.hasFrame
}

// Status returns the status line message.
func (m Model) Status() string {
	return m.status
}

// Close releases the subscription and stops the session.
func (m Model) Close() {
	m.sub.Close()
	m.session.Stop()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a started session in the terminal until the user quits or
// goes back. The session is stopped on return.
func Run(ctx context.Context, session *engine.Session, opts PlayOptions) (backToMenu bool, err error) {
	opts.ExitOnBack = true
	model := NewModel(session, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	model.Close()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
