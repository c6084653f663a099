package core

// Event is emitted by the engine for presentation, audio and persistence
// collaborators. The engine never waits on anyone consuming them.
type Event interface {
	eventKind() string
}

// Sound names a short sound effect.
type Sound uint8

const (
	SoundShoot Sound = iota
	SoundPop
	SoundExplode
	SoundWin
	SoundLose
	SoundStick
)

func (s Sound) String() string {
	switch s {
	case SoundShoot:
		return "SHOOT"
	case SoundPop:
		return "POP"
	case SoundExplode:
		return "EXPLODE"
	case SoundWin:
		return "WIN"
	case SoundLose:
		return "LOSE"
	case SoundStick:
		return "STICK"
	default:
		return "UNKNOWN"
	}
}

// SoundEvent requests a sound effect.
type SoundEvent struct {
	Sound Sound
}

// ScoreEvent reports points gained by one resolved shot.
type ScoreEvent struct {
	Delta   int
	Removed int
	Total   int
}

// ParticleEvent requests a burst of particles at a pixel position.
type ParticleEvent struct {
	X, Y      float64
	Color     Color
	Magnitude int
}

// FloatingTextEvent requests a short text popup, e.g. "+30".
type FloatingTextEvent struct {
	X, Y float64
	Text string
}

// RowsInsertedEvent reports rows pushed in from the ceiling.
type RowsInsertedEvent struct {
	Rows     int
	Overflow int
}

// OutcomeEvent reports the end of a run.
type OutcomeEvent struct {
	Outcome Outcome
	Mode    Mode
	LevelID string
	Score   int
	Stars   int
}

// CoinsEvent reports coins earned.
type CoinsEvent struct {
	Amount int
}

// AchievementEvent reports an achievement reached during play. Persistence
// decides whether it is new.
type AchievementEvent struct {
	ID string
}

func (SoundEvent) eventKind() string        { return "sound" }
func (ScoreEvent) eventKind() string        { return "score" }
func (ParticleEvent) eventKind() string     { return "particle" }
func (FloatingTextEvent) eventKind() string { return "floating_text" }
func (RowsInsertedEvent) eventKind() string { return "rows_inserted" }
func (OutcomeEvent) eventKind() string      { return "outcome" }
func (CoinsEvent) eventKind() string        { return "coins" }
func (AchievementEvent) eventKind() string  { return "achievement" }

// EventKind returns a stable name for the event type, used by wire encoders.
func EventKind(e Event) string {
	return e.eventKind()
}

// Achievement ids.
const (
	AchievementFirstPop   = "first_pop"
	AchievementBigCombo   = "big_combo"
	AchievementAvalanche  = "avalanche"
	AchievementCleanSweep = "clean_sweep"
	AchievementScore5000  = "score_5000"
)
