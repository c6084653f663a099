package core

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the progression rules of a run.
type Mode uint8

const (
	ModeClassic Mode = iota
	ModeTimeAttack
	ModeAdventure
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeClassic, ModeTimeAttack, ModeAdventure}

// String returns the mode id used in the CLI and score table.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeTimeAttack:
		return "timeattack"
	case ModeAdventure:
		return "adventure"
	default:
		return "unknown"
	}
}

// Title returns a display name for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeTimeAttack:
		return "Time Attack"
	case ModeAdventure:
		return "Adventure"
	default:
		return "Unknown"
	}
}

// ParseMode parses a mode id.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "endless":
		return ModeClassic, nil
	case "timeattack", "time_attack", "time-attack":
		return ModeTimeAttack, nil
	case "adventure":
		return ModeAdventure, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Outcome is the state of a run.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// ModeParams tunes the progression strategies.
type ModeParams struct {
	TimerUnits       int // TimeAttack countdown length
	DropRows         int // Rows inserted when the countdown expires
	MissesPerDrop    int // Classic: shots without a pop before a row drops
	MinMissesPerDrop int // Classic: floor reached at full difficulty
}

// DefaultModeParams returns the standard tuning.
func DefaultModeParams() ModeParams {
	return ModeParams{
		TimerUnits:       90,
		DropRows:         3,
		MissesPerDrop:    6,
		MinMissesPerDrop: 2,
	}
}

// Status is the view of a run that win/loss rules look at.
type Status struct {
	Board     *Board
	Level     *Level
	Score     int
	ShotsLeft int
	Overflow  int
	Collected map[Color]int
}

// Controller is a per-mode progression strategy. It decides when rows drop
// and when a run is won or lost; the Game applies its decisions to the board.
type Controller interface {
	Mode() Mode
	// OnShotResolved records a resolved shot and returns rows to insert.
	OnShotResolved(r ShotResult) int
	// OnRowDropTick advances the mode timer by one unit and returns rows to
	// insert.
	OnRowDropTick() int
	IsWon(s Status) bool
	IsLost(s Status) bool
	// TimeLeft returns the remaining timer units, or -1 if the mode has no timer.
	TimeLeft() int
	// SetDifficulty sets the difficulty level in [0, 1].
	SetDifficulty(level float64)
}

// NewController returns the strategy for mode.
func NewController(mode Mode, p ModeParams) (Controller, error) {
	switch mode {
	case ModeClassic:
		return &classicController{params: p}, nil
	case ModeTimeAttack:
		return &timeAttackController{params: p, timer: p.TimerUnits}, nil
	case ModeAdventure:
		return &adventureController{}, nil
	default:
		return nil, invalidState("unknown mode %d", mode)
	}
}

// dangerReached reports whether the board has grown into the danger row or
// pushed cells past capacity.
func dangerReached(s Status) bool {
	if s.Overflow > 0 {
		return true
	}
	return s.Board != nil && s.Board.Lowest() >= s.Board.DangerRow()
}

type classicController struct {
	params     ModeParams
	difficulty float64
	misses     int
}

func (c *classicController) Mode() Mode { return ModeClassic }

func (c *classicController) OnShotResolved(r ShotResult) int {
	if r.Cleared() > 0 {
		c.misses = 0
		return 0
	}
	c.misses++
	if c.misses >= c.interval() {
		c.misses = 0
		return 1
	}
	return 0
}

func (c *classicController) interval() int {
	base := c.params.MissesPerDrop
	if base <= 0 {
		return math.MaxInt
	}
	floor := c.params.MinMissesPerDrop
	if floor <= 0 || floor > base {
		floor = base
	}
	n := base - int(math.Round(c.difficulty*float64(base-floor)))
	if n < floor {
		n = floor
	}
	return n
}

func (c *classicController) OnRowDropTick() int      { return 0 }
func (c *classicController) IsWon(Status) bool       { return false }
func (c *classicController) IsLost(s Status) bool    { return dangerReached(s) }
func (c *classicController) TimeLeft() int           { return -1 }
func (c *classicController) SetDifficulty(l float64) { c.difficulty = clampUnit(l) }

type timeAttackController struct {
	params ModeParams
	timer  int
}

func (t *timeAttackController) Mode() Mode { return ModeTimeAttack }

func (t *timeAttackController) OnShotResolved(ShotResult) int { return 0 }

func (t *timeAttackController) OnRowDropTick() int {
	t.timer--
	if t.timer > 0 {
		return 0
	}
	t.timer = t.params.TimerUnits
	return t.params.DropRows
}

func (t *timeAttackController) IsWon(Status) bool     { return false }
func (t *timeAttackController) IsLost(s Status) bool  { return dangerReached(s) }
func (t *timeAttackController) TimeLeft() int         { return t.timer }
func (t *timeAttackController) SetDifficulty(float64) {}

type adventureController struct{}

func (a *adventureController) Mode() Mode                    { return ModeAdventure }
func (a *adventureController) OnShotResolved(ShotResult) int { return 0 }
func (a *adventureController) OnRowDropTick() int            { return 0 }
func (a *adventureController) TimeLeft() int                 { return -1 }
func (a *adventureController) SetDifficulty(float64)         {}

func (a *adventureController) IsWon(s Status) bool {
	if s.Board == nil {
		return false
	}
	obj := Objective{Kind: ObjectiveClearBoard}
	if s.Level != nil {
		obj = s.Level.Objective
	}
	return obj.Satisfied(s.Board, s.Score, s.Collected)
}

func (a *adventureController) IsLost(s Status) bool {
	if a.IsWon(s) {
		return false
	}
	return s.ShotsLeft <= 0 || dangerReached(s)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
