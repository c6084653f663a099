package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// CellView is a read-only copy of one occupied cell.
type CellView struct {
	Pos   GridPosition
	ID    int
	Color Color
}

// Snapshot is an immutable copy of the run state for renderers, feeds and
// determinism tests.
type Snapshot struct {
	Mode       Mode
	LevelID    string
	LevelName  string
	Objective  string
	Cols       int
	Rows       int
	Parity     int
	Metrics    BoardMetrics
	Cells      []CellView
	Flying     bool
	Projectile Projectile
	Phase      ShotPhase
	Angle      float64
	Current    Ammo
	Next       Ammo
	Score      int
	ShotsFired int
	ShotsLeft  int
	TimeLeft   int
	Outcome    Outcome
	Paused     bool
	Stars      int
	Ticks      int
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Mode:       g.opts.Mode,
		Cols:       g.board.Cols(),
		Rows:       g.board.Rows(),
		Parity:     g.board.Parity(),
		Metrics:    g.opts.Metrics,
		Phase:      g.shot.Phase(),
		Angle:      g.shot.Angle(),
		Current:    g.current,
		Next:       g.next,
		Score:      g.score,
		ShotsFired: g.shotsFired,
		ShotsLeft:  g.shotsLeft,
		TimeLeft:   g.ctrl.TimeLeft(),
		Outcome:    g.outcome,
		Paused:     g.paused,
		Stars:      g.stars,
		Ticks:      g.ticks,
	}
	if l := g.opts.Level; l != nil {
		s.LevelID = l.ID
		s.LevelName = l.Name
		if g.opts.Mode == ModeAdventure {
			s.Objective = l.Objective.String()
		}
	}
	s.Projectile, s.Flying = g.shot.Projectile()

	positions := g.board.Positions()
	s.Cells = make([]CellView, 0, len(positions))
	for _, p := range positions {
		c, _ := g.board.Get(p)
		s.Cells = append(s.Cells, CellView{Pos: p, ID: c.ID, Color: c.Color})
	}
	return s
}

// Hash returns a digest of the gameplay-relevant fields, used to compare
// replays of the same seed and command sequence.
func (s Snapshot) Hash() string {
	h := sha256.New()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	put(int64(s.Mode))
	put(int64(s.Parity))
	put(int64(s.Score))
	put(int64(s.ShotsFired))
	put(int64(s.ShotsLeft))
	put(int64(s.TimeLeft))
	put(int64(s.Outcome))
	put(int64(s.Current.Color))
	put(int64(s.Next.Color))
	put(int64(math.Float64bits(s.Angle)))
	for _, c := range s.Cells {
		put(int64(c.Pos.Row))
		put(int64(c.Pos.Col))
		put(int64(c.Color))
	}
	return hex.EncodeToString(h.Sum(nil))
}
