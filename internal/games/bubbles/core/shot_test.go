package core_test

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

const tickDT = 0.05

func newResolver(cols, rows int) *core.ShotResolver {
	return core.NewShotResolver(core.DefaultMetrics(cols, rows), core.DefaultScoring(), 30, 4)
}

// flyResolver advances s until the shot resolves or fails.
func flyResolver(t *testing.T, s *core.ShotResolver, b *core.Board) (*core.ShotResult, error) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		res, err := s.Advance(tickDT, b)
		if err != nil || res != nil {
			return res, err
		}
	}
	t.Fatal("shot never resolved")
	return nil, nil
}

func hasSound(evs []core.Event, s core.Sound) bool {
	for _, e := range evs {
		if se, ok := e.(core.SoundEvent); ok && se.Sound == s {
			return true
		}
	}
	return false
}

func TestAim(t *testing.T) {
	testCases := []struct {
		name     string
		x, y     float64
		expected float64
	}{
		{"straight up", 50, 0, 0},
		{"diagonal right", 100, 50, 45},
		{"diagonal left", 0, 50, -45},
		{"horizontal left clamps", 0, 100, -core.MaxAimAngle},
		{"below cannon clamps", 60, 150, core.MaxAimAngle},
		{"on the cannon", 50, 100, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := core.Aim(tc.x, tc.y, 100, 100)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Aim(%f, %f) = %f, expected %f", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestLaunch(t *testing.T) {
	m := core.DefaultMetrics(3, 3)

	p := core.Launch(0, 30, core.Ammo{Color: core.ColorGreen}, m)
	if p.X != m.Width/2 || p.Y != m.Height-m.Radius() {
		t.Errorf("launch position = (%f, %f), expected cannon at (%f, %f)", p.X, p.Y, m.Width/2, m.Height-m.Radius())
	}
	if math.Abs(p.VX) > 1e-9 || p.VY != -30 {
		t.Errorf("launch velocity = (%f, %f), expected (0, -30)", p.VX, p.VY)
	}

	p = core.Launch(90, 30, core.Ammo{}, m)
	expectedVX := 30 * math.Sin(core.MaxAimAngle*math.Pi/180)
	if math.Abs(p.VX-expectedVX) > 1e-9 {
		t.Errorf("VX = %f, expected clamped %f", p.VX, expectedVX)
	}
}

func TestStepBouncesOffWalls(t *testing.T) {
	m := core.BoardMetrics{Diameter: 2, SpacingX: 2, SpacingY: math.Sqrt(3), Width: 10, Height: 100}
	b := core.NewBoard(4, 10, 0)

	right := core.Projectile{X: 8.9, Y: 50, VX: 10}
	motion := core.Step(&right, 0.1, m, 1, b)
	if motion.Outcome != core.MotionFlying {
		t.Fatalf("outcome = %v, expected flying", motion.Outcome)
	}
	if math.Abs(right.X-8.1) > 1e-9 || right.VX != -10 {
		t.Errorf("after right wall: X=%f VX=%f, expected X=8.1 VX=-10", right.X, right.VX)
	}

	left := core.Projectile{X: 1.1, Y: 50, VX: -10}
	core.Step(&left, 0.1, m, 1, b)
	if math.Abs(left.X-1.9) > 1e-9 || left.VX != 10 {
		t.Errorf("after left wall: X=%f VX=%f, expected X=1.9 VX=10", left.X, left.VX)
	}
}

func TestStepStopsAtCeiling(t *testing.T) {
	m := core.DefaultMetrics(4, 6)
	b := core.NewBoard(4, 6, 0)
	p := core.Projectile{X: 4, Y: 3, VY: -30}

	motion := core.Step(&p, 0.1, m, 4, b)
	if motion.Outcome != core.MotionCollided || !motion.Ceiling {
		t.Fatalf("motion = %+v, expected ceiling collision", motion)
	}
	if p.Y != m.CeilingY+m.Radius() {
		t.Errorf("Y = %f, expected resting on the ceiling at %f", p.Y, m.CeilingY+m.Radius())
	}
}

func TestShotResolverPhases(t *testing.T) {
	s := newResolver(3, 3)
	b := core.NewBoard(3, 3, 0)

	if s.Phase() != core.PhaseAiming {
		t.Fatalf("initial phase = %s, expected aiming", s.Phase())
	}
	if _, err := s.Advance(tickDT, b); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Advance() while aiming error = %v, expected ErrInvalidState", err)
	}

	evs, err := s.Fire(core.Ammo{Color: core.ColorRed})
	if err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if !hasSound(evs, core.SoundShoot) {
		t.Error("Fire() should emit SHOOT")
	}
	if _, flying := s.Projectile(); !flying || s.Phase() != core.PhaseFlying {
		t.Errorf("phase after fire = %s, expected flying", s.Phase())
	}
	if _, err := s.Fire(core.Ammo{Color: core.ColorRed}); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("second Fire() error = %v, expected ErrInvalidState", err)
	}

	if _, err := flyResolver(t, s, b); err != nil {
		t.Fatalf("flight failed: %v", err)
	}
	if s.Phase() != core.PhaseResolved {
		t.Errorf("phase after landing = %s, expected resolved", s.Phase())
	}
	s.Rearm()
	if s.Phase() != core.PhaseAiming {
		t.Errorf("phase after Rearm = %s, expected aiming", s.Phase())
	}
}

func TestSetAngleClamps(t *testing.T) {
	s := newResolver(5, 5)
	s.SetAngle(-120)
	if s.Angle() != -core.MaxAimAngle {
		t.Errorf("Angle() = %f, expected %f", s.Angle(), -core.MaxAimAngle)
	}
}

// A red shot straight up under a red top row joins it and the cluster of
// four pops. Only the three cells already on the board score.
func TestShotPopsCluster(t *testing.T) {
	b := boardFromRows(t, 3, 3, "RRR")
	s := newResolver(3, 3)

	if _, err := s.Fire(core.Ammo{Color: core.ColorRed}); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	res, err := flyResolver(t, s, b)
	if err != nil {
		t.Fatalf("flight failed: %v", err)
	}

	if !res.Landed || res.Landing != core.P(1, 1) {
		t.Errorf("landing = %v (landed=%v), expected (1,1)", res.Landing, res.Landed)
	}
	if len(res.Matched) != 4 {
		t.Errorf("matched = %v, expected 4 cells", res.Matched)
	}
	if !b.IsEmpty() {
		t.Errorf("board should be empty, has %d cells", b.Len())
	}
	if res.ScoreDelta != 30 {
		t.Errorf("ScoreDelta = %d, expected 30", res.ScoreDelta)
	}
	if res.Removed[core.ColorRed] != 4 {
		t.Errorf("Removed[red] = %d, expected 4", res.Removed[core.ColorRed])
	}
	if !hasSound(res.Events, core.SoundStick) || !hasSound(res.Events, core.SoundPop) {
		t.Errorf("expected STICK and POP sounds, got %v", res.Events)
	}

	var score *core.ScoreEvent
	particles := 0
	for _, e := range res.Events {
		switch ev := e.(type) {
		case core.ScoreEvent:
			score = &ev
		case core.ParticleEvent:
			particles++
		}
	}
	if score == nil || score.Delta != 30 || score.Removed != 4 {
		t.Errorf("score event = %+v, expected delta 30 removed 4", score)
	}
	if particles != 4 {
		t.Errorf("particle events = %d, expected 4", particles)
	}
}

func TestShotWithoutMatchSticks(t *testing.T) {
	b := boardFromRows(t, 3, 3, "RRR")
	s := newResolver(3, 3)

	s.Fire(core.Ammo{Color: core.ColorBlue})
	res, err := flyResolver(t, s, b)
	if err != nil {
		t.Fatalf("flight failed: %v", err)
	}
	if res.Cleared() != 0 || res.ScoreDelta != 0 {
		t.Errorf("expected no removals, got %+v", res)
	}
	c, ok := b.Get(core.P(1, 1))
	if !ok || c.Color != core.ColorBlue {
		t.Errorf("expected blue at (1,1), got %+v", c)
	}
	if hasSound(res.Events, core.SoundPop) {
		t.Error("unexpected POP without a match")
	}
}

// A shot into a saturated board has nowhere to land: it is rejected with
// CapacityExceeded and the board is untouched.
func TestShotCapacityExceeded(t *testing.T) {
	b := boardFromRows(t, 3, 2, "RGB", "GBR")
	before := b.Clone()
	s := newResolver(3, 2)

	s.Fire(core.Ammo{Color: core.ColorYellow})
	_, err := flyResolver(t, s, b)
	if !errors.Is(err, core.ErrCapacityExceeded) {
		t.Fatalf("error = %v, expected ErrCapacityExceeded", err)
	}
	if core.ErrorCode(err) != core.CodeCapacityExceeded {
		t.Errorf("ErrorCode = %q, expected %q", core.ErrorCode(err), core.CodeCapacityExceeded)
	}
	if s.Phase() != core.PhaseAiming {
		t.Errorf("phase = %s, expected aiming", s.Phase())
	}
	if b.Len() != before.Len() {
		t.Fatalf("Len() = %d, expected %d", b.Len(), before.Len())
	}
	for _, p := range before.Positions() {
		want, _ := before.Get(p)
		got, ok := b.Get(p)
		if !ok || got != want {
			t.Errorf("cell %v changed: %+v -> %+v", p, want, got)
		}
	}
}

func TestShotBomb(t *testing.T) {
	b := boardFromRows(t, 3, 3, "RGB")
	s := newResolver(3, 3)

	s.Fire(core.Ammo{Color: core.ColorBomb})
	res, err := flyResolver(t, s, b)
	if err != nil {
		t.Fatalf("flight failed: %v", err)
	}

	// The bomb lands at (1,1) and takes out its upper neighbors.
	if len(res.Matched) != 3 {
		t.Errorf("matched = %v, expected bomb and two neighbors", res.Matched)
	}
	if b.Len() != 1 || !b.Has(core.P(0, 0)) {
		t.Errorf("expected only (0,0) left, got %v", b.Positions())
	}
	if res.ScoreDelta != 30 {
		t.Errorf("ScoreDelta = %d, expected 30", res.ScoreDelta)
	}
	if !hasSound(res.Events, core.SoundExplode) || hasSound(res.Events, core.SoundPop) {
		t.Errorf("bomb should EXPLODE, not POP: %v", res.Events)
	}
}

func TestShotFireballBurnsThrough(t *testing.T) {
	b := boardFromRows(t, 3, 3, "RRR")
	s := newResolver(3, 3)

	s.Fire(core.Ammo{Color: core.ColorBlue, Fireball: true})
	res, err := flyResolver(t, s, b)
	if err != nil {
		t.Fatalf("flight failed: %v", err)
	}

	if res.Landed {
		t.Error("fireball should not land")
	}
	expected := []core.GridPosition{core.P(0, 1), core.P(0, 2)}
	if len(res.Matched) != len(expected) || res.Matched[0] != expected[0] || res.Matched[1] != expected[1] {
		t.Errorf("burned = %v, expected %v", res.Matched, expected)
	}
	if b.Len() != 1 || !b.Has(core.P(0, 0)) {
		t.Errorf("expected only (0,0) left, got %v", b.Positions())
	}
	if res.ScoreDelta != 20 {
		t.Errorf("ScoreDelta = %d, expected 20", res.ScoreDelta)
	}
}

func TestShotDropsFloatingCells(t *testing.T) {
	// Blue hangs from the red pair at (0,1)-(0,2); popping the reds leaves it
	// floating.
	b := boardFromRows(t, 3, 4, ".RR", "..B")
	s := newResolver(3, 4)

	s.Fire(core.Ammo{Color: core.ColorRed})
	res, err := flyResolver(t, s, b)
	if err != nil {
		t.Fatalf("flight failed: %v", err)
	}

	if len(res.Matched) != 3 {
		t.Fatalf("matched = %v, expected 3 reds", res.Matched)
	}
	if len(res.Floating) != 1 || res.Floating[0] != core.P(1, 2) {
		t.Errorf("floating = %v, expected [(1,2)]", res.Floating)
	}
	if res.ScoreDelta != 2*10+20 {
		t.Errorf("ScoreDelta = %d, expected 40", res.ScoreDelta)
	}
	if !b.IsEmpty() {
		t.Errorf("board should be empty, got %v", b.Positions())
	}
}
