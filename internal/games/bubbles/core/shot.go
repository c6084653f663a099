package core

import (
	"fmt"
)

// ShotPhase is the stage of the current shot.
type ShotPhase uint8

const (
	PhaseAiming ShotPhase = iota
	PhaseFlying
	PhaseCollided
	PhaseResolved
)

func (p ShotPhase) String() string {
	switch p {
	case PhaseAiming:
		return "aiming"
	case PhaseFlying:
		return "flying"
	case PhaseCollided:
		return "collided"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Ammo is a bubble loaded in the cannon.
type Ammo struct {
	Color    Color
	Fireball bool
}

// Scoring holds the point values for removed cells.
type Scoring struct {
	PopPoints  int // Per matched or exploded cell
	DropPoints int // Per floating cell
	BombRadius int
}

// DefaultScoring returns the standard point values.
func DefaultScoring() Scoring {
	return Scoring{PopPoints: 10, DropPoints: 20, BombRadius: 1}
}

// ShotResult is everything one resolved shot did to the board.
type ShotResult struct {
	Landing    GridPosition
	Landed     bool // False for fireballs and shots that left the field
	Ammo       Ammo
	Matched    []GridPosition
	Floating   []GridPosition
	Removed    map[Color]int
	ScoreDelta int
	Events     []Event
}

// Cleared returns the number of cells removed by the shot.
func (r ShotResult) Cleared() int {
	return len(r.Matched) + len(r.Floating)
}

// ShotResolver drives a single projectile from launch to board resolution.
// Phases advance Aiming -> Flying -> Collided -> Resolved, and Rearm returns
// to Aiming for the next shot.
type ShotResolver struct {
	metrics  BoardMetrics
	scoring  Scoring
	speed    float64
	substeps int

	phase      ShotPhase
	angle      float64
	projectile Projectile
	burned     []GridPosition
	burnedCol  []Color
}

// NewShotResolver creates a resolver in the Aiming phase.
func NewShotResolver(m BoardMetrics, scoring Scoring, speed float64, substeps int) *ShotResolver {
	if substeps < 1 {
		substeps = 1
	}
	return &ShotResolver{
		metrics:  m,
		scoring:  scoring,
		speed:    speed,
		substeps: substeps,
	}
}

// Phase returns the current phase.
func (s *ShotResolver) Phase() ShotPhase { return s.phase }

// Angle returns the current aim angle in degrees.
func (s *ShotResolver) Angle() float64 { return s.angle }

// Metrics returns the board geometry used for flight.
func (s *ShotResolver) Metrics() BoardMetrics { return s.metrics }

// Projectile returns the projectile in flight, if any.
func (s *ShotResolver) Projectile() (Projectile, bool) {
	return s.projectile, s.phase == PhaseFlying
}

// SetSpeed changes the launch speed for subsequent shots.
func (s *ShotResolver) SetSpeed(speed float64) {
	if speed > 0 {
		s.speed = speed
	}
}

// SetAngle sets the aim angle, clamped to the allowed range.
func (s *ShotResolver) SetAngle(deg float64) {
	s.angle = ClampAngle(deg)
}

// AimAt points the cannon at a pixel inside the play area.
func (s *ShotResolver) AimAt(x, y float64) {
	s.angle = Aim(x, y, s.metrics.Width, s.metrics.Height)
}

// Fire launches ammo along the current angle.
func (s *ShotResolver) Fire(ammo Ammo) ([]Event, error) {
	if s.phase != PhaseAiming {
		return nil, invalidState("fire: shot is %s", s.phase)
	}
	s.projectile = Launch(s.angle, s.speed, ammo, s.metrics)
	s.burned = nil
	s.burnedCol = nil
	s.phase = PhaseFlying
	return []Event{SoundEvent{Sound: SoundShoot}}, nil
}

// Advance moves the projectile by dt. It returns nil while the projectile is
// still flying and the resolved result once it lands. A shot with nowhere to
// land returns ErrCapacityExceeded, reverts to Aiming and leaves the board as
// it was.
func (s *ShotResolver) Advance(dt float64, b *Board) (*ShotResult, error) {
	if s.phase != PhaseFlying {
		return nil, invalidState("advance: shot is %s", s.phase)
	}

	motion := Step(&s.projectile, dt, s.metrics, s.substeps, b)
	for _, pos := range motion.Burned {
		if c, ok := b.Remove(pos); ok {
			s.burned = append(s.burned, pos)
			s.burnedCol = append(s.burnedCol, c.Color)
		}
	}

	switch motion.Outcome {
	case MotionFlying:
		return nil, nil
	case MotionExited:
		s.phase = PhaseResolved
		return s.finishFireball(b), nil
	}

	s.phase = PhaseCollided
	if s.projectile.Fireball {
		s.phase = PhaseResolved
		return s.finishFireball(b), nil
	}

	pos, err := ResolveCollision(s.projectile, b, s.metrics)
	if err != nil {
		s.phase = PhaseAiming
		return nil, fmt.Errorf("resolve collision: %w", err)
	}

	result, err := s.land(pos, b)
	if err != nil {
		s.phase = PhaseAiming
		return nil, err
	}
	s.phase = PhaseResolved
	return result, nil
}

// Rearm returns a resolved shot to Aiming.
func (s *ShotResolver) Rearm() {
	if s.phase == PhaseResolved {
		s.phase = PhaseAiming
	}
}

// Reset discards any shot in flight.
func (s *ShotResolver) Reset() {
	s.phase = PhaseAiming
	s.burned = nil
	s.burnedCol = nil
}

// land inserts the projectile at pos and applies matching and floating
// removal.
func (s *ShotResolver) land(pos GridPosition, b *Board) (*ShotResult, error) {
	ammo := Ammo{Color: s.projectile.Color, Fireball: s.projectile.Fireball}
	if _, err := b.Set(pos, ammo.Color); err != nil {
		return nil, fmt.Errorf("land: %w", err)
	}

	result := &ShotResult{
		Landing: pos,
		Landed:  true,
		Ammo:    ammo,
		Removed: make(map[Color]int),
		Events:  []Event{SoundEvent{Sound: SoundStick}},
	}

	var matched []GridPosition
	switch ammo.Color {
	case ColorBomb:
		matched = ExplosionArea(pos, b, s.scoring.BombRadius)
		result.Events = append(result.Events, SoundEvent{Sound: SoundExplode})
	case ColorRainbow:
		matched = ResolveRainbow(pos, b)
	default:
		matched = FindConnectedSameColor(pos, b)
	}

	if len(matched) > 0 && ammo.Color != ColorBomb {
		result.Events = append(result.Events, SoundEvent{Sound: SoundPop})
	}
	result.Matched = matched
	s.removeAll(matched, CellPopping, b, result)

	floating := FindDisconnectedFromCeiling(b, nil)
	result.Floating = floating
	s.removeAll(floating, CellFalling, b, result)

	popped := len(matched)
	if !ammo.Color.IsSpecial() && popped > 0 {
		// The shot's own bubble is not scored.
		popped--
	}
	result.ScoreDelta = s.scoring.PopPoints*popped + s.scoring.DropPoints*len(floating)
	s.finishEvents(result, pos, b)
	return result, nil
}

// finishFireball resolves a fireball that reached the ceiling or left the
// field: cells it burned count as matched, then floating cells drop.
func (s *ShotResolver) finishFireball(b *Board) *ShotResult {
	result := &ShotResult{
		Ammo:    Ammo{Color: s.projectile.Color, Fireball: s.projectile.Fireball},
		Matched: s.burned,
		Removed: make(map[Color]int),
	}
	for i, p := range s.burned {
		c := s.burnedCol[i]
		result.Removed[c]++
		x, y := CellCenter(p, s.metrics, b.Parity())
		result.Events = append(result.Events, ParticleEvent{X: x, Y: y, Color: c, Magnitude: 1})
	}
	if len(s.burned) > 0 {
		result.Events = append(result.Events, SoundEvent{Sound: SoundExplode})
	}

	floating := FindDisconnectedFromCeiling(b, nil)
	result.Floating = floating
	s.removeAll(floating, CellFalling, b, result)

	result.ScoreDelta = s.scoring.PopPoints*len(s.burned) + s.scoring.DropPoints*len(floating)
	end := EstimatePosition(s.projectile.X, s.projectile.Y, s.metrics, b.Parity(), b.Cols())
	s.finishEvents(result, end, b)
	s.burned = nil
	s.burnedCol = nil
	return result
}

func (s *ShotResolver) removeAll(ps []GridPosition, state CellState, b *Board, result *ShotResult) {
	for _, p := range ps {
		b.SetState(p, state)
	}
	for _, p := range ps {
		c, ok := b.Remove(p)
		if !ok {
			continue
		}
		result.Removed[c.Color]++
		x, y := CellCenter(p, s.metrics, b.Parity())
		magnitude := 1
		if state == CellFalling {
			magnitude = 2
		}
		result.Events = append(result.Events, ParticleEvent{X: x, Y: y, Color: c.Color, Magnitude: magnitude})
	}
}

func (s *ShotResolver) finishEvents(result *ShotResult, at GridPosition, b *Board) {
	if result.ScoreDelta == 0 {
		return
	}
	x, y := CellCenter(at, s.metrics, b.Parity())
	result.Events = append(result.Events,
		ScoreEvent{Delta: result.ScoreDelta, Removed: result.Cleared()},
		FloatingTextEvent{X: x, Y: y, Text: fmt.Sprintf("+%d", result.ScoreDelta)},
	)
}
