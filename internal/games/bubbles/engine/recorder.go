package engine

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

//go:generate go tool mockgen -destination=./mocks/progress_store_mock.go -package=mocks . ProgressStore

// ScoreRecord is one finished run.
type ScoreRecord struct {
	RunID   string
	Mode    core.Mode
	LevelID string
	Score   int
	Outcome core.Outcome
	Stars   int
	Seed    uint64
}

// ProgressStore persists player progress. Implementations may block; the
// Recorder calls them off the game loop.
type ProgressStore interface {
	SaveScore(ctx context.Context, rec ScoreRecord) error
	// AddCoins adds amount to the wallet and returns the new balance.
	AddCoins(ctx context.Context, amount int) (int, error)
	// UnlockAchievement returns true if the achievement was not unlocked before.
	UnlockAchievement(ctx context.Context, id string) (bool, error)
	// SaveLevelResult keeps the best score and stars per adventure level.
	SaveLevelResult(ctx context.Context, levelID string, score, stars int) error
}

// Recorder turns frame events into ProgressStore calls.
type Recorder struct {
	store   ProgressStore
	log     *log.Logger
	seed    uint64
	timeout time.Duration
}

// NewRecorder creates a recorder. A nil logger discards output.
func NewRecorder(store ProgressStore, logger *log.Logger, seed uint64) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, log: logger, seed: seed, timeout: 5 * time.Second}
}

// Run consumes frames until the channel closes or ctx is done.
func (r *Recorder) Run(ctx context.Context, frames <-chan Frame) {
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			r.Handle(ctx, f)
		}
	}
}

// Handle records the events of one frame. Store failures are logged and
// otherwise ignored.
func (r *Recorder) Handle(ctx context.Context, f Frame) {
	for _, ev := range f.Events {
		switch e := ev.(type) {
		case core.OutcomeEvent:
			r.saveOutcome(ctx, f.RunID, e)
		case core.CoinsEvent:
			cctx, cancel := context.WithTimeout(ctx, r.timeout)
			balance, err := r.store.AddCoins(cctx, e.Amount)
			cancel()
			if err != nil {
				r.log.Error("add coins failed", "err", err, "amount", e.Amount)
				continue
			}
			r.log.Debug("coins earned", "amount", e.Amount, "balance", balance)
		case core.AchievementEvent:
			cctx, cancel := context.WithTimeout(ctx, r.timeout)
			fresh, err := r.store.UnlockAchievement(cctx, e.ID)
			cancel()
			if err != nil {
				r.log.Error("unlock achievement failed", "err", err, "id", e.ID)
				continue
			}
			if fresh {
				r.log.Info("achievement unlocked", "id", e.ID)
			}
		}
	}
}

func (r *Recorder) saveOutcome(ctx context.Context, runID string, e core.OutcomeEvent) {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec := ScoreRecord{
		RunID:   runID,
		Mode:    e.Mode,
		LevelID: e.LevelID,
		Score:   e.Score,
		Outcome: e.Outcome,
		Stars:   e.Stars,
		Seed:    r.seed,
	}
	if err := r.store.SaveScore(cctx, rec); err != nil {
		r.log.Error("save score failed", "err", err, "run", runID)
	}

	if e.Mode == core.ModeAdventure && e.Outcome == core.OutcomeWon && e.LevelID != "" {
		if err := r.store.SaveLevelResult(cctx, e.LevelID, e.Score, e.Stars); err != nil {
			r.log.Error("save level result failed", "err", err, "level", e.LevelID)
		}
	}
}
