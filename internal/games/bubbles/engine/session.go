// Package engine runs a bubble shooter game on a single goroutine. Callers
// submit commands through a queue and receive immutable frames; nothing
// outside the loop touches the game state.
package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// ErrClosed is returned by commands sent after the session loop has exited.
var ErrClosed = errors.New("engine: session closed")

// LevelSource resolves level ids. Unknown ids fail with core.ErrConfigNotFound.
type LevelSource interface {
	Get(id string) (*core.Level, error)
}

// Config configures a Session.
type Config struct {
	Game   config.BubblesConfig
	Mode   core.Mode
	Level  *core.Level
	Seed   uint64 // 0 picks a seed from the clock
	Levels LevelSource
	Logger *log.Logger

	// FrameTick and TimerTick replace the wall-clock tickers when set.
	FrameTick <-chan time.Time
	TimerTick <-chan time.Time
}

// Frame is what subscribers receive once per frame. It is never modified
// after publication.
type Frame struct {
	Seq      uint64
	RunID    string
	Snapshot core.Snapshot
	Events   []core.Event
	Err      error // Non-fatal error raised by the frame, e.g. a shot with nowhere to land
}

type command struct {
	apply func(g *core.Game) error
	reply chan error
}

// Session owns one core.Game.
type Session struct {
	cfg    Config
	log    *log.Logger
	game   *core.Game
	diff   *config.DifficultyManager
	seed   uint64
	runID  string
	seq    uint64
	dt     float64
	unit   time.Duration
	frames <-chan time.Time
	timer  <-chan time.Time

	commands chan command
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	subsMu  sync.Mutex
	subs    map[*Subscription]struct{}
	stopped bool
}

// NewSession creates the game. The loop starts with Run.
func NewSession(cfg Config) (*Session, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game, err := core.NewGame(GameOptions(cfg.Game, cfg.Mode, cfg.Level, core.NewRNG(seed)))
	if err != nil {
		return nil, err
	}

	fps := cfg.Game.Physics.FPS
	if fps <= 0 {
		fps = 30
	}
	unit := time.Duration(cfg.Game.Modes.TimeAttack.UnitMillis) * time.Millisecond
	if unit <= 0 {
		unit = time.Second
	}

	s := &Session{
		cfg:      cfg,
		log:      logger,
		game:     game,
		diff:     config.NewDifficultyManager(cfg.Game.Difficulty),
		seed:     seed,
		runID:    uuid.NewString(),
		dt:       1 / float64(fps),
		unit:     unit,
		frames:   cfg.FrameTick,
		timer:    cfg.TimerTick,
		commands: make(chan command, 16),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		subs:     make(map[*Subscription]struct{}),
	}
	return s, nil
}

// Seed returns the seed the game was created with.
func (s *Session) Seed() uint64 { return s.seed }

// Mode returns the game mode.
func (s *Session) Mode() core.Mode { return s.cfg.Mode }

// Done is closed when the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Run drives the game until ctx is cancelled or Stop is called.
func (s *Session) Run(ctx context.Context) {
	defer s.shutdown()

	if s.frames == nil {
		ticker := time.NewTicker(time.Duration(s.dt * float64(time.Second)))
		defer ticker.Stop()
		s.frames = ticker.C
	}
	if s.timer == nil && s.cfg.Mode == core.ModeTimeAttack {
		ticker := time.NewTicker(s.unit)
		defer ticker.Stop()
		s.timer = ticker.C
	}

	s.log.Debug("session started", "mode", s.cfg.Mode, "seed", s.seed, "run", s.runID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case cmd := <-s.commands:
			cmd.reply <- cmd.apply(s.game)
		case <-s.frames:
			s.step()
		case <-s.timer:
			s.game.TimerTick()
		}
	}
}

// Stop ends the loop. Safe to call multiple times.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Session) step() {
	g := s.game
	if s.diff.IsEnabled() {
		t := s.diff.At(s.cfg.Game.Physics.Speed, config.Progress{Score: g.Score(), Shots: g.ShotsFired(), Ticks: g.Ticks()})
		g.SetDifficulty(t.Level)
		g.SetSpeed(t.Speed)
	}

	err := g.Tick(s.dt)
	if err != nil {
		s.log.Debug("frame error", "err", err, "run", s.runID)
	}

	s.seq++
	s.publish(Frame{
		Seq:      s.seq,
		RunID:    s.runID,
		Snapshot: g.Snapshot(),
		Events:   g.DrainEvents(),
		Err:      err,
	})
}

func (s *Session) shutdown() {
	s.subsMu.Lock()
	s.stopped = true
	for sub := range s.subs {
		close(sub.ch)
		delete(s.subs, sub)
	}
	s.subsMu.Unlock()
	close(s.done)
	s.log.Debug("session stopped", "run", s.runID)
}

// do queues fn and waits for the loop to apply it.
func (s *Session) do(ctx context.Context, fn func(g *core.Game) error) error {
	cmd := command{apply: fn, reply: make(chan error, 1)}
	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
}

// Aim sets the cannon angle in degrees from vertical.
func (s *Session) Aim(ctx context.Context, deg float64) error {
	return s.do(ctx, func(g *core.Game) error { return g.Aim(deg) })
}

// AimAt points the cannon at a pixel in board space.
func (s *Session) AimAt(ctx context.Context, x, y float64) error {
	return s.do(ctx, func(g *core.Game) error { return g.AimAt(x, y) })
}

// Nudge rotates the cannon by delta degrees.
func (s *Session) Nudge(ctx context.Context, delta float64) error {
	return s.do(ctx, func(g *core.Game) error { return g.Nudge(delta) })
}

// Fire launches the loaded bubble.
func (s *Session) Fire(ctx context.Context) error {
	return s.do(ctx, func(g *core.Game) error { return g.Fire() })
}

// Swap exchanges the loaded and next bubbles.
func (s *Session) Swap(ctx context.Context) error {
	return s.do(ctx, func(g *core.Game) error { return g.Swap() })
}

// Pause suspends frames and the mode timer.
func (s *Session) Pause(ctx context.Context) error {
	return s.do(ctx, func(g *core.Game) error { return g.Pause() })
}

// Resume continues a paused run.
func (s *Session) Resume(ctx context.Context) error {
	return s.do(ctx, func(g *core.Game) error { return g.Resume() })
}

// TogglePause pauses a running game and resumes a paused one.
func (s *Session) TogglePause(ctx context.Context) error {
	return s.do(ctx, func(g *core.Game) error {
		if g.Paused() {
			return g.Resume()
		}
		return g.Pause()
	})
}

// Restart starts a new run with the same mode and level.
func (s *Session) Restart(ctx context.Context) error {
	return s.do(ctx, func(g *core.Game) error {
		if err := g.Reset(); err != nil {
			return err
		}
		s.runID = uuid.NewString()
		return nil
	})
}

// LoadLevel switches to the level with id and restarts. Unknown ids fail
// with core.ErrConfigNotFound and leave the current run untouched.
func (s *Session) LoadLevel(ctx context.Context, id string) error {
	if s.cfg.Levels == nil {
		return core.ConfigNotFound(id)
	}
	lvl, err := s.cfg.Levels.Get(id)
	if err != nil {
		return err
	}
	return s.do(ctx, func(g *core.Game) error {
		if err := g.LoadLevel(lvl); err != nil {
			return err
		}
		s.runID = uuid.NewString()
		return nil
	})
}

// Snapshot returns the current state without waiting for a frame.
func (s *Session) Snapshot(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot
	err := s.do(ctx, func(g *core.Game) error {
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}
