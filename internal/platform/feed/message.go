package feed

import (
	"context"
	"encoding/json"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
)

// Message is the JSON envelope for everything sent to spectators.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// FrameView is the spectator view of one frame.
type FrameView struct {
	Seq    uint64      `json:"seq"`
	RunID  string      `json:"run_id"`
	State  StateView   `json:"state"`
	Events []EventView `json:"events,omitempty"`
	Err    string      `json:"error,omitempty"`
}

// StateView is a flattened snapshot with names instead of enum values.
type StateView struct {
	Mode       string     `json:"mode"`
	LevelID    string     `json:"level_id,omitempty"`
	LevelName  string     `json:"level_name,omitempty"`
	Objective  string     `json:"objective,omitempty"`
	Cols       int        `json:"cols"`
	Rows       int        `json:"rows"`
	Parity     int        `json:"parity"`
	Cells      []CellView `json:"cells"`
	Projectile *ShotView  `json:"projectile,omitempty"`
	Angle      float64    `json:"angle"`
	Current    string     `json:"current"`
	Next       string     `json:"next"`
	Score      int        `json:"score"`
	ShotsFired int        `json:"shots_fired"`
	ShotsLeft  int        `json:"shots_left"`
	TimeLeft   int        `json:"time_left"`
	Outcome    string     `json:"outcome"`
	Paused     bool       `json:"paused"`
	Stars      int        `json:"stars,omitempty"`
}

// CellView is one occupied cell.
type CellView struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	ID    int    `json:"id"`
	Color string `json:"color"`
}

// ShotView is the projectile in flight.
type ShotView struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Color    string  `json:"color"`
	Fireball bool    `json:"fireball,omitempty"`
}

// EventView wraps an engine event with its kind.
type EventView struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// NewFrameView converts an engine frame.
func NewFrameView(f engine.Frame) FrameView {
	s := f.Snapshot
	v := FrameView{
		Seq:   f.Seq,
		RunID: f.RunID,
		State: StateView{
			Mode:       s.Mode.String(),
			LevelID:    s.LevelID,
			LevelName:  s.LevelName,
			Objective:  s.Objective,
			Cols:       s.Cols,
			Rows:       s.Rows,
			Parity:     s.Parity,
			Cells:      make([]CellView, 0, len(s.Cells)),
			Angle:      s.Angle,
			Current:    ammoName(s.Current),
			Next:       ammoName(s.Next),
			Score:      s.Score,
			ShotsFired: s.ShotsFired,
			ShotsLeft:  s.ShotsLeft,
			TimeLeft:   s.TimeLeft,
			Outcome:    s.Outcome.String(),
			Paused:     s.Paused,
			Stars:      s.Stars,
		},
	}
	for _, c := range s.Cells {
		v.State.Cells = append(v.State.Cells, CellView{Row: c.Pos.Row, Col: c.Pos.Col, ID: c.ID, Color: c.Color.String()})
	}
	if s.Flying {
		v.State.Projectile = &ShotView{
			X:        s.Projectile.X,
			Y:        s.Projectile.Y,
			Color:    s.Projectile.Color.String(),
			Fireball: s.Projectile.Fireball,
		}
	}
	for _, ev := range f.Events {
		v.Events = append(v.Events, newEventView(ev))
	}
	if f.Err != nil {
		v.Err = f.Err.Error()
	}
	return v
}

func ammoName(a core.Ammo) string {
	if a.Fireball {
		return "fireball"
	}
	return a.Color.String()
}

func newEventView(ev core.Event) EventView {
	kind := core.EventKind(ev)
	switch e := ev.(type) {
	case core.SoundEvent:
		return EventView{Kind: kind, Data: map[string]string{"sound": e.Sound.String()}}
	case core.OutcomeEvent:
		return EventView{Kind: kind, Data: map[string]any{
			"outcome":  e.Outcome.String(),
			"mode":     e.Mode.String(),
			"level_id": e.LevelID,
			"score":    e.Score,
			"stars":    e.Stars,
		}}
	case core.ParticleEvent:
		return EventView{Kind: kind, Data: map[string]any{
			"x": e.X, "y": e.Y, "color": e.Color.String(), "magnitude": e.Magnitude,
		}}
	}
	return EventView{Kind: kind, Data: ev}
}

// Encode marshals a frame message.
func Encode(f engine.Frame) ([]byte, error) {
	return json.Marshal(Message{Type: "frame", Payload: NewFrameView(f)})
}

// Watch subscribes to s and broadcasts its frames until ctx ends or the
// session stops.
func (h *Hub) Watch(ctx context.Context, s *engine.Session) {
	sub := s.Subscribe(engine.DefaultBuffer)
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-sub.C():
				if !ok {
					return
				}
				msg, err := Encode(f)
				if err != nil {
					h.log.Warn("cannot encode frame", "seq", f.Seq, "err", err)
					continue
				}
				h.Broadcast(msg)
			}
		}
	}()
}
