package core

import (
	"fmt"
	"strings"
)

// ObjectiveKind is what an adventure level asks the player to do.
type ObjectiveKind uint8

const (
	ObjectiveClearBoard ObjectiveKind = iota
	ObjectiveReachScore
	ObjectiveCollectColor
)

func (k ObjectiveKind) String() string {
	switch k {
	case ObjectiveClearBoard:
		return "clear"
	case ObjectiveReachScore:
		return "score"
	case ObjectiveCollectColor:
		return "collect"
	default:
		return "unknown"
	}
}

// ParseObjectiveKind parses an objective name. Empty means ClearBoard.
func ParseObjectiveKind(s string) (ObjectiveKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clear", "clear_board":
		return ObjectiveClearBoard, nil
	case "score", "reach_score":
		return ObjectiveReachScore, nil
	case "collect", "collect_color":
		return ObjectiveCollectColor, nil
	default:
		return 0, fmt.Errorf("unknown objective %q", s)
	}
}

// Objective is the win condition of an adventure level.
type Objective struct {
	Kind   ObjectiveKind
	Target int   // Score for ReachScore, cell count for CollectColor
	Color  Color // CollectColor only
}

// Satisfied reports whether the objective is met.
func (o Objective) Satisfied(b *Board, score int, collected map[Color]int) bool {
	switch o.Kind {
	case ObjectiveReachScore:
		return score >= o.Target
	case ObjectiveCollectColor:
		return collected[o.Color] >= o.Target
	default:
		return b.IsEmpty()
	}
}

// String describes the objective for HUDs.
func (o Objective) String() string {
	switch o.Kind {
	case ObjectiveReachScore:
		return fmt.Sprintf("Reach %d points", o.Target)
	case ObjectiveCollectColor:
		return fmt.Sprintf("Pop %d %s", o.Target, o.Color)
	default:
		return "Clear the board"
	}
}

// Level is an immutable level descriptor.
type Level struct {
	ID          string
	Name        string
	Zone        string
	Layout      []string // One string per row; see ColorFromChar
	Shots       int
	TargetScore int
	Stars       [3]int // Score thresholds for one, two and three stars
	Objective   Objective
	Colors      []Color // Colors dealt to the cannon; empty means all normal colors
}

// Width returns the longest layout row in characters.
func (l *Level) Width() int {
	w := 0
	for _, row := range l.Layout {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w
}

// Build creates a board from the layout. Unknown characters are skipped.
func (l *Level) Build(cols, rows, parity int) (*Board, error) {
	b := NewBoard(cols, rows, parity)
	for r, line := range l.Layout {
		for c, ch := range []rune(line) {
			color, ok := ColorFromChar(ch)
			if !ok {
				continue
			}
			if _, err := b.Set(P(r, c), color); err != nil {
				return nil, fmt.Errorf("level %s: %w", l.ID, err)
			}
		}
	}
	return b, nil
}

// Palette returns the colors dealt to the cannon for this level.
func (l *Level) Palette() []Color {
	if len(l.Colors) > 0 {
		return l.Colors
	}
	return NormalColors
}

// StarsFor returns how many star thresholds score reaches.
func (l *Level) StarsFor(score int) int {
	stars := 0
	for _, t := range l.Stars {
		if t > 0 && score >= t {
			stars++
		}
	}
	return stars
}
