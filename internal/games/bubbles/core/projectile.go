package core

import "math"

// MaxAimAngle bounds the aim angle in degrees either side of vertical.
const MaxAimAngle = 80.0

// collisionScale shrinks the contact distance slightly so shots can slip
// through narrow gaps between two bubbles.
const collisionScale = 0.85

// Projectile is the bubble in flight.
type Projectile struct {
	X, Y     float64
	VX, VY   float64
	Color    Color
	Fireball bool
}

// Aim converts a touch point to an angle in degrees from vertical, measured
// from the cannon at the bottom center of the screen. Positive is to the
// right. The result is clamped to [-MaxAimAngle, MaxAimAngle].
func Aim(touchX, touchY, screenW, screenH float64) float64 {
	dx := touchX - screenW/2
	dy := screenH - touchY
	if dx == 0 && dy == 0 {
		return 0
	}
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	return ClampAngle(deg)
}

// ClampAngle restricts an aim angle to the allowed range.
func ClampAngle(deg float64) float64 {
	if deg < -MaxAimAngle {
		return -MaxAimAngle
	}
	if deg > MaxAimAngle {
		return MaxAimAngle
	}
	return deg
}

// Launch creates a projectile at the cannon moving at speed along angle.
func Launch(angle, speed float64, ammo Ammo, m BoardMetrics) Projectile {
	rad := ClampAngle(angle) * math.Pi / 180
	return Projectile{
		X:        m.Width / 2,
		Y:        m.Height - m.Radius(),
		VX:       speed * math.Sin(rad),
		VY:       -speed * math.Cos(rad),
		Color:    ammo.Color,
		Fireball: ammo.Fireball,
	}
}

// MotionOutcome is the result of advancing a projectile.
type MotionOutcome uint8

const (
	MotionFlying MotionOutcome = iota
	MotionCollided
	MotionExited
)

// Motion describes one Step.
type Motion struct {
	Outcome MotionOutcome
	Ceiling bool           // Collided with the ceiling rather than a cell
	Burned  []GridPosition // Cells a fireball passed through, in order
}

// Step advances p by dt in substeps equal increments, reflecting off the
// side walls. It stops at the first increment that touches the ceiling or an
// occupied cell. Fireballs pass through cells and report them in Burned.
func Step(p *Projectile, dt float64, m BoardMetrics, substeps int, b *Board) Motion {
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float64(substeps)
	r := m.Radius()

	var motion Motion
	var burned map[GridPosition]bool

	for i := 0; i < substeps; i++ {
		p.X += p.VX * h
		p.Y += p.VY * h

		if p.X < r {
			p.X = 2*r - p.X
			p.VX = -p.VX
		} else if p.X > m.Width-r {
			p.X = 2*(m.Width-r) - p.X
			p.VX = -p.VX
		}

		if p.Y-r <= m.CeilingY {
			p.Y = m.CeilingY + r
			motion.Outcome = MotionCollided
			motion.Ceiling = true
			return motion
		}
		if p.Y-r > m.Height {
			motion.Outcome = MotionExited
			return motion
		}

		if p.Fireball {
			for _, pos := range touching(p, b, m) {
				if burned == nil {
					burned = make(map[GridPosition]bool)
				}
				if !burned[pos] {
					burned[pos] = true
					motion.Burned = append(motion.Burned, pos)
				}
			}
			continue
		}

		if len(touching(p, b, m)) > 0 {
			motion.Outcome = MotionCollided
			return motion
		}
	}
	return motion
}

// touching returns occupied positions whose bubble overlaps p, ordered by
// GridPosition.Less. It only allocates when something is hit.
func touching(p *Projectile, b *Board, m BoardMetrics) []GridPosition {
	limit := m.Diameter * collisionScale
	var out []GridPosition
	for pos := range b.cells {
		cx, cy := CellCenter(pos, m, b.parity)
		if math.Hypot(p.X-cx, p.Y-cy) < limit {
			out = append(out, pos)
		}
	}
	if len(out) > 1 {
		sortPositions(out)
	}
	return out
}

// ResolveCollision picks the grid position where p comes to rest: its
// estimated position if empty, otherwise the empty neighbor closest to p.
// Positions beyond the board's capacity are never chosen. When nothing is
// available it returns ErrCapacityExceeded and leaves the board untouched.
func ResolveCollision(p Projectile, b *Board, m BoardMetrics) (GridPosition, error) {
	est := EstimatePosition(p.X, p.Y, m, b.Parity(), b.Cols())
	if est.Row > b.Rows()-1 {
		est.Row = b.Rows() - 1
	}
	if b.InBounds(est) && !b.Has(est) {
		return est, nil
	}

	best := GridPosition{}
	bestDist := math.Inf(1)
	found := false
	for _, n := range Neighbors(est, b.Parity()) {
		if !b.InBounds(n) || b.Has(n) {
			continue
		}
		cx, cy := CellCenter(n, m, b.Parity())
		d := math.Hypot(p.X-cx, p.Y-cy)
		if d < bestDist {
			best, bestDist, found = n, d, true
		}
	}
	if !found {
		return GridPosition{}, capacityExceeded("no empty cell near %s", est)
	}
	return best, nil
}
