// Package bubbles registers the bubble shooter modes and draws their
// snapshots into a terminal screen buffer.
package bubbles

import (
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

var descriptions = map[core.Mode]string{
	core.ModeClassic:    "Endless board, a new row drops after too many misses",
	core.ModeTimeAttack: "Rows drop on a timer, score as much as you can",
	core.ModeAdventure:  "Hand-made levels with a shot budget and objectives",
}

func init() {
	for _, m := range core.Modes {
		mode := m
		registry.Register(registry.ModeInfo{
			ID:          mode.String(),
			Title:       mode.Title(),
			Description: descriptions[mode],
			NeedsLevel:  mode == core.ModeAdventure,
		}, func(cfg engine.Config) (*engine.Session, error) {
			cfg.Mode = mode
			return engine.NewSession(cfg)
		})
	}
}
