package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// fly ticks g until the shot in flight is resolved or rejected.
func fly(t *testing.T, g *core.Game) error {
	t.Helper()
	for i := 0; i < 1000 && g.Phase() == core.PhaseFlying; i++ {
		if err := g.Tick(tickDT); err != nil {
			return err
		}
	}
	if g.Phase() == core.PhaseFlying {
		t.Fatal("shot never resolved")
	}
	return nil
}

func newGame(t *testing.T, opts core.Options) *core.Game {
	t.Helper()
	g, err := core.NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	return g
}

func TestNewGameDefaults(t *testing.T) {
	g := newGame(t, core.Options{Mode: core.ModeClassic})

	if g.Board().Cols() != 8 || g.Board().Rows() != 14 {
		t.Errorf("board = %dx%d, expected 8x14", g.Board().Cols(), g.Board().Rows())
	}
	if g.Board().Len() != 5*8 {
		t.Errorf("Len() = %d, expected 40", g.Board().Len())
	}
	if g.Phase() != core.PhaseAiming || g.Outcome() != core.OutcomePlaying {
		t.Errorf("phase=%s outcome=%s, expected aiming/playing", g.Phase(), g.Outcome())
	}
	if g.ShotsLeft() != -1 {
		t.Errorf("ShotsLeft() = %d, expected -1 outside adventure", g.ShotsLeft())
	}

	present := map[core.Color]bool{}
	for _, c := range g.Board().ColorsPresent() {
		present[c] = true
	}
	if !present[g.Current().Color] || !present[g.Next().Color] {
		t.Errorf("loaded %s/%s, expected colors present on the board", g.Current().Color, g.Next().Color)
	}
}

func TestAdventureRequiresLevel(t *testing.T) {
	_, err := core.NewGame(core.Options{Mode: core.ModeAdventure})
	if !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("error = %v, expected ErrInvalidState", err)
	}
}

// Time attack: the countdown expires on the 90th unit and pushes three full
// rows in from the ceiling.
func TestTimeAttackInsertsRows(t *testing.T) {
	g := newGame(t, core.Options{
		Mode:     core.ModeTimeAttack,
		Cols:     5,
		Rows:     20,
		FillRows: 2,
		Rand:     core.NewRNG(7),
	})

	before := map[core.GridPosition]int{}
	for _, p := range g.Board().Positions() {
		c, _ := g.Board().Get(p)
		before[p] = c.ID
	}

	for i := 0; i < 89; i++ {
		g.TimerTick()
	}
	if g.TimeLeft() != 1 || g.Board().Len() != 10 {
		t.Fatalf("after 89 units: TimeLeft=%d Len=%d, expected 1 and 10", g.TimeLeft(), g.Board().Len())
	}
	g.DrainEvents()

	g.TimerTick()
	if g.TimeLeft() != 90 {
		t.Errorf("TimeLeft() = %d, expected reset to 90", g.TimeLeft())
	}
	if g.Board().Len() != 25 {
		t.Errorf("Len() = %d, expected 25", g.Board().Len())
	}
	if g.Board().Parity() != 1 {
		t.Errorf("Parity() = %d, expected 1 after three rows", g.Board().Parity())
	}
	for p, id := range before {
		c, ok := g.Board().Get(core.P(p.Row+3, p.Col))
		if !ok || c.ID != id {
			t.Errorf("cell %v should have moved to row %d with id %d, got %+v", p, p.Row+3, id, c)
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			if !g.Board().Has(core.P(r, c)) {
				t.Errorf("inserted row %d missing column %d", r, c)
			}
		}
	}

	var inserted *core.RowsInsertedEvent
	for _, e := range g.DrainEvents() {
		if ev, ok := e.(core.RowsInsertedEvent); ok {
			inserted = &ev
		}
	}
	if inserted == nil || inserted.Rows != 3 || inserted.Overflow != 0 {
		t.Errorf("rows inserted event = %+v, expected 3 rows without overflow", inserted)
	}
	if g.Outcome() != core.OutcomePlaying {
		t.Errorf("Outcome() = %s, expected playing", g.Outcome())
	}
}

func TestTimeAttackLosesOnOverflow(t *testing.T) {
	g := newGame(t, core.Options{
		Mode:     core.ModeTimeAttack,
		Cols:     4,
		Rows:     6,
		FillRows: 3,
		Params:   core.ModeParams{TimerUnits: 2, DropRows: 3},
	})

	g.TimerTick()
	g.TimerTick()
	if g.Outcome() != core.OutcomeLost {
		t.Fatalf("Outcome() = %s, expected lost", g.Outcome())
	}
	if !hasSound(g.DrainEvents(), core.SoundLose) {
		t.Error("expected LOSE sound")
	}
	if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Fire() after loss error = %v, expected ErrInvalidState", err)
	}
}

// Adventure: one shot completes the top row and clears the board.
func TestAdventureWinsOnClearedBoard(t *testing.T) {
	lvl := &core.Level{
		ID:     "a-1",
		Name:   "First Steps",
		Layout: []string{"RRRR"},
		Shots:  1,
		Colors: []core.Color{core.ColorRed},
	}
	g := newGame(t, core.Options{Mode: core.ModeAdventure, Level: lvl, Cols: 8, Rows: 10})

	if g.ShotsLeft() != 1 {
		t.Fatalf("ShotsLeft() = %d, expected 1", g.ShotsLeft())
	}
	if err := g.Aim(0); err != nil {
		t.Fatalf("Aim() failed: %v", err)
	}
	if err := g.Fire(); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if err := fly(t, g); err != nil {
		t.Fatalf("flight failed: %v", err)
	}

	if g.Outcome() != core.OutcomeWon {
		t.Fatalf("Outcome() = %s, expected won", g.Outcome())
	}
	if !g.Board().IsEmpty() {
		t.Errorf("board should be empty, got %v", g.Board().Positions())
	}
	if g.ShotsLeft() != 0 {
		t.Errorf("ShotsLeft() = %d, expected 0", g.ShotsLeft())
	}
	if g.Score() != 40 {
		t.Errorf("Score() = %d, expected 40", g.Score())
	}

	var outcome *core.OutcomeEvent
	coins := 0
	achievements := map[string]bool{}
	evs := g.DrainEvents()
	for _, e := range evs {
		switch ev := e.(type) {
		case core.OutcomeEvent:
			outcome = &ev
		case core.CoinsEvent:
			coins += ev.Amount
		case core.AchievementEvent:
			achievements[ev.ID] = true
		}
	}
	if outcome == nil || outcome.LevelID != "a-1" || outcome.Mode != core.ModeAdventure {
		t.Errorf("outcome event = %+v", outcome)
	}
	if coins != 10 {
		t.Errorf("coins = %d, expected 10", coins)
	}
	if !achievements[core.AchievementFirstPop] || !achievements[core.AchievementCleanSweep] {
		t.Errorf("achievements = %v, expected first_pop and clean_sweep", achievements)
	}
	if !hasSound(evs, core.SoundWin) {
		t.Error("expected WIN sound")
	}
}

func TestAdventureLosesWhenShotsRunOut(t *testing.T) {
	lvl := &core.Level{
		ID:     "a-2",
		Layout: []string{"RGRG"},
		Shots:  1,
		Colors: []core.Color{core.ColorBlue},
	}
	g := newGame(t, core.Options{Mode: core.ModeAdventure, Level: lvl, Cols: 4, Rows: 8})

	// Straight up lands at (1,1) touching one red and one green: no match.
	if err := g.Fire(); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if err := fly(t, g); err != nil {
		t.Fatalf("flight failed: %v", err)
	}
	if g.Outcome() != core.OutcomeLost {
		t.Fatalf("Outcome() = %s, expected lost", g.Outcome())
	}
	if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Fire() after loss error = %v, expected ErrInvalidState", err)
	}
}

// A saturated board rejects the shot: the run is untouched and the bubble
// goes back into the cannon.
func TestCapacityExceededRestoresAmmo(t *testing.T) {
	lvl := &core.Level{ID: "full", Layout: []string{"RGB"}}
	g := newGame(t, core.Options{Mode: core.ModeClassic, Level: lvl, Cols: 3, Rows: 2})

	// Fill the danger row behind the game's back so the run is still live.
	for col, c := range []core.Color{core.ColorGreen, core.ColorBlue, core.ColorRed} {
		if _, err := g.Board().Set(core.P(1, col), c); err != nil {
			t.Fatalf("Set() failed: %v", err)
		}
	}

	loaded, next := g.Current(), g.Next()
	if err := g.Fire(); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	err := fly(t, g)
	if !errors.Is(err, core.ErrCapacityExceeded) {
		t.Fatalf("error = %v, expected ErrCapacityExceeded", err)
	}

	if g.Phase() != core.PhaseAiming {
		t.Errorf("Phase() = %s, expected aiming", g.Phase())
	}
	if g.Current() != loaded || g.Next() != next {
		t.Errorf("ammo = %v/%v, expected %v/%v", g.Current(), g.Next(), loaded, next)
	}
	if g.ShotsFired() != 0 || g.Score() != 0 {
		t.Errorf("ShotsFired=%d Score=%d, expected no charge", g.ShotsFired(), g.Score())
	}
	if g.Board().Len() != 6 {
		t.Errorf("Len() = %d, expected 6", g.Board().Len())
	}
}

func TestLoadedBoardIsEvaluated(t *testing.T) {
	testCases := []struct {
		name     string
		opts     core.Options
		expected core.Outcome
	}{
		{
			name:     "classic layout in the danger row",
			opts:     core.Options{Mode: core.ModeClassic, Level: &core.Level{ID: "deep", Layout: []string{"RGB", "GBR", "R.."}}, Cols: 3, Rows: 3},
			expected: core.OutcomeLost,
		},
		{
			name:     "time attack layout in the danger row",
			opts:     core.Options{Mode: core.ModeTimeAttack, Level: &core.Level{ID: "deep", Layout: []string{"RG", "GB"}}, Cols: 2, Rows: 2},
			expected: core.OutcomeLost,
		},
		{
			name:     "adventure layout in the danger row",
			opts:     core.Options{Mode: core.ModeAdventure, Level: &core.Level{ID: "deep", Layout: []string{"RGRG", "GRGR", "RGRG"}, Shots: 5}, Cols: 4, Rows: 3},
			expected: core.OutcomeLost,
		},
		{
			name:     "classic layout above the danger row",
			opts:     core.Options{Mode: core.ModeClassic, Level: &core.Level{ID: "ok", Layout: []string{"RGB", "GBR"}}, Cols: 3, Rows: 3},
			expected: core.OutcomePlaying,
		},
		{
			name:     "classic fill",
			opts:     core.Options{Mode: core.ModeClassic, Cols: 6, Rows: 4, FillRows: 9},
			expected: core.OutcomePlaying,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, tc.opts)
			if g.Outcome() != tc.expected {
				t.Fatalf("Outcome() = %s, expected %s", g.Outcome(), tc.expected)
			}
			if tc.expected == core.OutcomePlaying {
				return
			}
			if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
				t.Errorf("Fire() error = %v, expected ErrInvalidState", err)
			}
			var outcome *core.OutcomeEvent
			for _, e := range g.DrainEvents() {
				if ev, ok := e.(core.OutcomeEvent); ok {
					outcome = &ev
				}
			}
			if outcome == nil || outcome.Outcome != tc.expected || outcome.Score != 0 {
				t.Errorf("outcome event = %+v, expected %s with no score", outcome, tc.expected)
			}
		})
	}
}

func TestPauseResume(t *testing.T) {
	g := newGame(t, core.Options{Mode: core.ModeTimeAttack})

	if err := g.Pause(); err != nil {
		t.Fatalf("Pause() failed: %v", err)
	}
	if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Fire() while paused error = %v, expected ErrInvalidState", err)
	}
	if err := g.Aim(10); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Aim() while paused error = %v, expected ErrInvalidState", err)
	}

	g.TimerTick()
	g.Tick(tickDT)
	if g.TimeLeft() != 90 || g.Ticks() != 0 {
		t.Errorf("paused game advanced: TimeLeft=%d Ticks=%d", g.TimeLeft(), g.Ticks())
	}

	if err := g.Resume(); err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}
	g.TimerTick()
	if g.TimeLeft() != 89 {
		t.Errorf("TimeLeft() = %d, expected 89 after resume", g.TimeLeft())
	}
	if err := g.Fire(); err != nil {
		t.Errorf("Fire() after resume failed: %v", err)
	}
}

func TestSwap(t *testing.T) {
	g := newGame(t, core.Options{Mode: core.ModeClassic, Rand: core.NewRNG(5)})
	cur, next := g.Current(), g.Next()

	if err := g.Swap(); err != nil {
		t.Fatalf("Swap() failed: %v", err)
	}
	if g.Current() != next || g.Next() != cur {
		t.Errorf("after swap %v/%v, expected %v/%v", g.Current(), g.Next(), next, cur)
	}
}

func TestLoadLevel(t *testing.T) {
	g := newGame(t, core.Options{Mode: core.ModeClassic})
	before := g.Snapshot().Hash()

	if err := g.LoadLevel(nil); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("LoadLevel(nil) error = %v, expected ErrInvalidState", err)
	}
	if g.Snapshot().Hash() != before {
		t.Error("failed load changed the run")
	}

	bad := &core.Level{ID: "bad", Layout: []string{"RRRRRRRRRRRR"}}
	if err := g.LoadLevel(bad); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("LoadLevel(too wide) error = %v, expected ErrInvalidState", err)
	}
	if g.Level() != nil {
		t.Error("failed load should keep the previous level")
	}

	lvl := &core.Level{ID: "ok", Layout: []string{"RGB"}}
	if err := g.LoadLevel(lvl); err != nil {
		t.Fatalf("LoadLevel() failed: %v", err)
	}
	if g.Board().Len() != 3 || g.Level().ID != "ok" {
		t.Errorf("level not loaded: Len=%d", g.Board().Len())
	}
}

func TestSpecialAmmo(t *testing.T) {
	g := newGame(t, core.Options{Mode: core.ModeClassic, SpecialEvery: 2, Rand: core.NewRNG(9)})

	next := g.Next()
	special := next.Color.IsSpecial() || next.Fireball
	if !special {
		t.Errorf("second drawn bubble %+v should be special", next)
	}
	if cur := g.Current(); cur.Color.IsSpecial() || cur.Fireball {
		t.Errorf("first drawn bubble %+v should be normal", cur)
	}
}

// play runs a fixed command script against a fresh game.
func play(t *testing.T, seed uint64) string {
	t.Helper()
	g := newGame(t, core.Options{Mode: core.ModeClassic, Rand: core.NewRNG(seed)})
	angles := []float64{0, 25, -40, 60, -10, 15, -70, 5}
	for _, a := range angles {
		if g.Outcome() != core.OutcomePlaying {
			break
		}
		g.Aim(a)
		if err := g.Fire(); err != nil {
			t.Fatalf("Fire() failed: %v", err)
		}
		fly(t, g)
		g.TimerTick()
	}
	return g.Snapshot().Hash()
}

func TestDeterministicReplay(t *testing.T) {
	first := play(t, 42)
	second := play(t, 42)
	if first != second {
		t.Errorf("same seed and commands produced different states: %s vs %s", first, second)
	}

	a := newGame(t, core.Options{Mode: core.ModeClassic, Rand: core.NewRNG(1)})
	b := newGame(t, core.Options{Mode: core.ModeClassic, Rand: core.NewRNG(2)})
	if a.Snapshot().Hash() == b.Snapshot().Hash() {
		t.Error("different seeds produced identical boards")
	}
}

func TestSnapshotCopiesBoard(t *testing.T) {
	g := newGame(t, core.Options{Mode: core.ModeClassic})
	snap := g.Snapshot()

	if len(snap.Cells) != g.Board().Len() {
		t.Fatalf("snapshot has %d cells, board %d", len(snap.Cells), g.Board().Len())
	}
	g.Board().Remove(snap.Cells[0].Pos)
	if len(snap.Cells) != g.Board().Len()+1 {
		t.Error("snapshot should not alias the board")
	}
	if snap.Mode != core.ModeClassic || snap.TimeLeft != -1 || snap.Flying {
		t.Errorf("unexpected snapshot header %+v", snap)
	}
}
