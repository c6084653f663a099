package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// recorderBuffer is large so the recorder never misses an outcome frame.
const recorderBuffer = 1024

// Watcher consumes the frames of a running session in the background, e.g.
// the sound player or the spectator feed. Watch must subscribe before it
// returns.
type Watcher interface {
	Watch(ctx context.Context, s *engine.Session)
}

// Launcher starts sessions for menu selections and attaches the recorder
// and watchers to them.
type Launcher struct {
	Game     config.BubblesConfig
	Levels   *levels.Catalog
	Store    *storage.Store // Optional; nil disables persistence
	Logger   *log.Logger
	Seed     uint64 // 0 picks a fresh seed per run
	Watchers []Watcher
}

// Start creates a session for modeID, attaches collaborators and starts its
// loop. The loop runs until ctx ends or the session is stopped.
func (l Launcher) Start(ctx context.Context, modeID, levelID string) (*engine.Session, error) {
	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var level *core.Level
	if levelID != "" {
		if l.Levels == nil {
			return nil, core.ConfigNotFound(levelID)
		}
		lvl, err := l.Levels.Get(levelID)
		if err != nil {
			return nil, err
		}
		level = lvl
	}

	cfg := engine.Config{
		Game:   l.Game,
		Level:  level,
		Seed:   l.Seed,
		Logger: logger,
	}
	if l.Levels != nil {
		cfg.Levels = l.Levels
	}

	s, err := registry.Create(modeID, cfg)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", modeID, err)
	}

	if l.Store != nil {
		sub := s.Subscribe(recorderBuffer)
		rec := engine.NewRecorder(l.Store, logger, s.Seed())
		go rec.Run(ctx, sub.C())
	}
	for _, w := range l.Watchers {
		w.Watch(ctx, s)
	}

	go s.Run(ctx)
	logger.Info("run started", "mode", modeID, "level", levelID, "seed", s.Seed())
	return s, nil
}

// NextLevel returns the catalog lookup for the play screen, or nil without
// a catalog.
func (l Launcher) NextLevel() NextLevelFunc {
	if l.Levels == nil {
		return nil
	}
	return l.Levels.Next
}
