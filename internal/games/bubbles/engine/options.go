package engine

import (
	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// GameOptions converts the loaded configuration into core options.
func GameOptions(cfg config.BubblesConfig, mode core.Mode, level *core.Level, rng core.Source) core.Options {
	colors := cfg.Board.Colors
	if colors <= 0 || colors > len(core.NormalColors) {
		colors = len(core.NormalColors)
	}

	return core.Options{
		Mode:     mode,
		Level:    level,
		Cols:     cfg.Board.Cols,
		Rows:     cfg.Board.Rows,
		FillRows: cfg.Board.FillRows,
		Speed:    cfg.Physics.Speed,
		Substeps: cfg.Physics.Substeps,
		Scoring: core.Scoring{
			PopPoints:  cfg.Scoring.PopPoints,
			DropPoints: cfg.Scoring.DropPoints,
			BombRadius: cfg.Scoring.BombRadius,
		},
		Params: core.ModeParams{
			TimerUnits:       cfg.Modes.TimeAttack.TimerUnits,
			DropRows:         cfg.Modes.TimeAttack.DropRows,
			MissesPerDrop:    cfg.Modes.Classic.MissesPerDrop,
			MinMissesPerDrop: cfg.Modes.Classic.MinMissesPerDrop,
		},
		Palette:      core.NormalColors[:colors],
		Shots:        cfg.Modes.Adventure.DefaultShots,
		SpecialEvery: cfg.Specials.Every,
		Rand:         rng,
	}
}
