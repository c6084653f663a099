package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels"
	"github.com/vovakirdan/tui-bubbles/internal/platform/sound"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// app holds what every command needs after flags, environment and config
// have been merged. Flags win over the environment, which wins over the
// config file.
type app struct {
	env     config.Env
	game    config.BubblesConfig
	catalog *levels.Catalog
	store   *storage.Store
	logger  *log.Logger
	seed    uint64
	dbPath  string
	logFile io.Closer
}

// setup loads configuration and the level catalog. logTo receives log
// output; nil logs to ~/.bubbles/bubbles.log so the TUI stays clean.
func setup(logTo io.Writer) (*app, error) {
	e, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	configPath := pick(flagConfig, e.ConfigPath)
	game, err := config.LoadBubbles(configPath)
	if err != nil {
		return nil, err
	}
	e.Apply(&game)
	if flagFPS > 0 {
		game.Physics.FPS = flagFPS
	}
	if flagLevelsDir != "" {
		game.Modes.Adventure.LevelsDir = flagLevelsDir
	}

	a := &app{env: e, game: game, seed: e.Seed}
	if flagSeed != 0 {
		a.seed = flagSeed
	}
	a.dbPath = config.ExpandHome(pick(flagDBPath, e.DBPath))
	if a.dbPath == "" {
		a.dbPath = config.DefaultDBPath()
	}

	if logTo == nil {
		f, err := openLogFile()
		if err != nil {
			logTo = io.Discard
		} else {
			logTo = f
			a.logFile = f
		}
	}
	a.logger, err = config.NewLogger(logTo, pick(flagLogLevel, e.LogLevel), "bubbles")
	if err != nil {
		a.close()
		return nil, err
	}

	catalog, skipped, err := levels.Load(config.ExpandHome(game.Modes.Adventure.LevelsDir))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("load levels: %w", err)
	}
	for _, s := range skipped {
		a.logger.Warn("skipped level file", "err", s)
	}
	a.catalog = catalog
	return a, nil
}

// openStore opens the progress database. Play continues without it when it
// cannot be opened.
func (a *app) openStore() {
	store, err := storage.Open(a.dbPath)
	if err != nil {
		a.logger.Warn("could not open progress database", "path", a.dbPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		return
	}
	a.store = store
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// launcher builds the run launcher. withSound attaches the speaker player
// unless sound is disabled.
func (a *app) launcher(withSound bool) tui.Launcher {
	l := tui.Launcher{
		Game:   a.game,
		Levels: a.catalog,
		Store:  a.store,
		Logger: a.logger,
		Seed:   a.seed,
	}
	if withSound && !flagMute && a.env.Sound {
		player, err := sound.NewSpeakerPlayer(flagVolume, a.logger)
		if err != nil {
			a.logger.Warn("sound disabled", "err", err)
		} else {
			l.Watchers = append(l.Watchers, player)
		}
	}
	return l
}

// runtimeConfig sizes the screen to the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = a.game.Physics.FPS
	cfg.Seed = a.seed
	return cfg
}

func openLogFile() (*os.File, error) {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "bubbles.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// signalContext is canceled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
