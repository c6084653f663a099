package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	bcore "github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels"
)

type playHarness struct {
	t      *testing.T
	frames chan time.Time
	model  Model
}

func newPlayHarness(t *testing.T, mode bcore.Mode, level *bcore.Level, opts PlayOptions) *playHarness {
	t.Helper()
	cfg := config.DefaultBubblesConfig()
	cfg.Difficulty.Enabled = false
	cfg.Specials.Every = 0

	frames := make(chan time.Time)
	catalog, _, err := levels.NewCatalog(levels.Builtin())
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	s, err := engine.NewSession(engine.Config{
		Game:      cfg,
		Mode:      mode,
		Level:     level,
		Seed:      3,
		Levels:    catalog,
		FrameTick: frames,
		TimerTick: make(chan time.Time),
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.Run(ctx)

	return &playHarness{t: t, frames: frames, model: NewModel(s, opts)}
}

// tick advances the session one frame and feeds it to the model.
func (h *playHarness) tick() {
	h.t.Helper()
	h.frames <- time.Now()
	msg := waitFrame(h.model.sub)()
	h.update(msg)
}

func (h *playHarness) update(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update() returned %T", next)
	}
	h.model = m
	return cmd
}

func (h *playHarness) snapshot() bcore.Snapshot {
	h.t.Helper()
	f, ok := h.model.Frame()
	if !ok {
		h.t.Fatal("no frame received")
	}
	return f.Snapshot
}

func TestModelReceivesFrames(t *testing.T) {
	h := newPlayHarness(t, bcore.ModeClassic, nil, PlayOptions{})

	if h.model.View() != "Loading..." {
		t.Errorf("View() before the first frame = %q", h.model.View())
	}
	h.tick()
	h.tick()

	f, _ := h.model.Frame()
	if f.Seq != 2 {
		t.Errorf("Seq = %d, expected 2", f.Seq)
	}
	if !strings.Contains(h.model.View(), "CLASSIC") {
		t.Error("View() should contain the mode title")
	}
}

func TestModelAimAndPause(t *testing.T) {
	h := newPlayHarness(t, bcore.ModeClassic, nil, PlayOptions{AimStep: 5})
	h.tick()

	h.update(tea.KeyMsg{Type: tea.KeyRight})
	h.update(tea.KeyMsg{Type: tea.KeyRight})
	h.update(tea.KeyMsg{Type: tea.KeyLeft})
	h.tick()
	if got := h.snapshot().Angle; got != 5 {
		t.Errorf("Angle = %v, expected 5", got)
	}

	h.update(runeKey('p'))
	h.tick()
	if !h.snapshot().Paused {
		t.Fatal("expected paused snapshot")
	}

	h.update(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.model.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}
	if h.model.View() != "" {
		t.Error("View() should be empty after leaving")
	}
}

func TestModelBackIgnoredWhilePlaying(t *testing.T) {
	h := newPlayHarness(t, bcore.ModeClassic, nil, PlayOptions{})
	h.tick()

	h.update(tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.BackToMenu() {
		t.Error("esc during play should be ignored")
	}
}

func TestModelExitOnBack(t *testing.T) {
	h := newPlayHarness(t, bcore.ModeClassic, nil, PlayOptions{ExitOnBack: true})
	h.tick()
	h.update(runeKey('p'))
	h.tick()

	cmd := h.update(runeKey('b'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("leaving with ExitOnBack should quit the program")
	}
}

func TestModelQuit(t *testing.T) {
	h := newPlayHarness(t, bcore.ModeClassic, nil, PlayOptions{})
	h.tick()

	cmd := h.update(runeKey('q'))
	if !h.model.IsQuitting() {
		t.Error("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if _, ok := waitFrame(h.model.sub)().(SessionEndedMsg); !ok {
		t.Error("subscription should be closed after quitting")
	}
}

func TestModelMouseFires(t *testing.T) {
	h := newPlayHarness(t, bcore.ModeClassic, nil, PlayOptions{})
	h.tick()
	snap := h.snapshot()

	frame := bubbles.BoardRect(snap)
	h.update(tea.MouseMsg{X: 1, Y: frame.Bottom() - 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.tick()

	got := h.snapshot()
	if got.Angle >= 0 {
		t.Errorf("Angle = %v, expected a left aim", got.Angle)
	}
	if !got.Flying {
		t.Error("click should fire")
	}
}

func TestModelInvalidCommandSetsStatus(t *testing.T) {
	h := newPlayHarness(t, bcore.ModeClassic, nil, PlayOptions{})
	h.tick()
	h.update(runeKey('p'))

	// Firing while paused is rejected by the game.
	cmd := h.update(runeKey(' '))
	if h.model.Status() != "Not now" {
		t.Errorf("Status() = %q, expected %q", h.model.Status(), "Not now")
	}
	if cmd == nil {
		t.Fatal("expected a status expiry command")
	}
	h.update(ClearStatusMsg{ID: h.model.statusID})
	if h.model.Status() != "" {
		t.Error("status should clear")
	}
}

func TestModelNextLevel(t *testing.T) {
	catalog, _, _ := levels.NewCatalog(levels.Builtin())
	lvl, err := catalog.Get("meadow_01")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	h := newPlayHarness(t, bcore.ModeAdventure, lvl, PlayOptions{NextLevel: catalog.Next})
	h.tick()

	// Enter does nothing while the run is in progress.
	h.update(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick()
	if id := h.snapshot().LevelID; id != "meadow_01" {
		t.Errorf("LevelID = %q, expected meadow_01", id)
	}

	next, _ := h.model.advance(bcore.Snapshot{Outcome: bcore.OutcomeWon, LevelID: "meadow_01"})
	h.model = next.(Model)
	h.tick()
	if id := h.snapshot().LevelID; id != "meadow_02" {
		t.Errorf("LevelID = %q, expected meadow_02", id)
	}
}
