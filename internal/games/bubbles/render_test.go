package bubbles_test

import (
	"strings"
	"testing"

	ui "github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

func newGame(t *testing.T) *core.Game {
	t.Helper()
	lvl := &core.Level{ID: "t", Name: "Test Level", Layout: []string{"RB", ".*"}, Shots: 9}
	g, err := core.NewGame(core.Options{
		Mode:  core.ModeAdventure,
		Level: lvl,
		Cols:  4,
		Rows:  6,
		Rand:  core.NewRNG(1),
	})
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	return g
}

func render(s core.Snapshot) *ui.Screen {
	w, h := bubbles.Size(s)
	scr := ui.NewScreen(w, h)
	bubbles.Render(s, scr)
	return scr
}

func TestRenderBoard(t *testing.T) {
	snap := newGame(t).Snapshot()
	scr := render(snap)

	testCases := []struct {
		name  string
		pos   core.GridPosition
		x, y  int
		glyph rune
		color ui.Color
	}{
		{"red", core.P(0, 0), 1, 1, bubbles.GlyphBubble, ui.ColorBrightRed},
		{"blue", core.P(0, 1), 3, 1, bubbles.GlyphBubble, ui.ColorBrightBlue},
		{"shifted bomb", core.P(1, 1), 4, 2, bubbles.GlyphBomb, ui.ColorOrange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := bubbles.CellOrigin(snap, tc.pos)
			if x != tc.x || y != tc.y {
				t.Fatalf("CellOrigin(%v) = (%d, %d), expected (%d, %d)", tc.pos, x, y, tc.x, tc.y)
			}
			c := scr.GetCell(x, y)
			if c.Rune != tc.glyph || c.Color != tc.color {
				t.Errorf("cell at (%d, %d) = %+v", x, y, c)
			}
		})
	}

	frame := bubbles.BoardRect(snap)
	if scr.Get(0, 0) != '┌' || scr.Get(frame.Right()-1, frame.Bottom()-1) != '┘' {
		t.Error("board frame missing")
	}
	if scr.Get(2, 6) != bubbles.GlyphDanger {
		t.Errorf("danger line missing, row 6 = %q", scr.Row(6))
	}
	if scr.Get(frame.W/2, frame.Bottom()-2) == ' ' {
		t.Error("cannon ammo not drawn")
	}
}

func TestRenderHUD(t *testing.T) {
	scr := render(newGame(t).Snapshot())
	out := scr.String()

	for _, want := range []string{"ADVENTURE", "Test Level", "Score  0", "Shots  9", "Clear the board"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Time") {
		t.Error("adventure HUD should not show a timer")
	}
}

func TestRenderPausedBanner(t *testing.T) {
	g := newGame(t)
	if err := g.Pause(); err != nil {
		t.Fatalf("Pause() failed: %v", err)
	}
	scr := render(g.Snapshot())
	frame := bubbles.BoardRect(g.Snapshot())

	if !strings.Contains(scr.Row(frame.H/2), "PAUSED") {
		t.Errorf("paused banner missing:\n%s", scr.String())
	}
}

func TestRenderProjectileInsideFrame(t *testing.T) {
	g := newGame(t)
	if err := g.Fire(); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if err := g.Tick(1.0 / 30); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	snap := g.Snapshot()
	if !snap.Flying {
		t.Fatal("expected a projectile in flight")
	}
	scr := render(snap)
	frame := bubbles.BoardRect(snap)

	found := false
	for y := 1; y < frame.Bottom()-1; y++ {
		for x := 1; x < frame.Right()-1; x++ {
			if r := scr.Get(x, y); r != ' ' && r != bubbles.GlyphDanger && r != bubbles.GlyphGuide {
				found = true
			}
		}
	}
	if !found {
		t.Error("projectile not drawn inside the frame")
	}
}

func TestModesRegistered(t *testing.T) {
	for _, m := range core.Modes {
		info, ok := registry.Info(m.String())
		if !ok {
			t.Errorf("mode %s not registered", m)
			continue
		}
		if info.Title != m.Title() || info.Description == "" {
			t.Errorf("Info(%s) = %+v", m, info)
		}
		if info.NeedsLevel != (m == core.ModeAdventure) {
			t.Errorf("Info(%s).NeedsLevel = %v", m, info.NeedsLevel)
		}
	}
}

func TestScreenToBoard(t *testing.T) {
	snap := newGame(t).Snapshot()

	// The cell origin of (0, 0) maps back into the first bubble.
	px, py := bubbles.ScreenToBoard(snap, 1, 1)
	cx, cy := core.CellCenter(core.P(0, 0), snap.Metrics, snap.Parity)
	r := snap.Metrics.Radius()
	if px < cx-r || px > cx+r || py < cy-r || py > cy+r {
		t.Errorf("ScreenToBoard(1, 1) = (%.2f, %.2f), expected inside bubble at (%.2f, %.2f)", px, py, cx, cy)
	}

	// The middle of the frame aims straight up.
	frame := bubbles.BoardRect(snap)
	px, _ = bubbles.ScreenToBoard(snap, frame.W/2, 1)
	if diff := px - snap.Metrics.Width/2; diff < -1 || diff > 1 {
		t.Errorf("center column maps to x=%.2f, width %.2f", px, snap.Metrics.Width)
	}
}
