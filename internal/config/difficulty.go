package config

import "math"

// Progress is what the difficulty ramp can be driven by.
type Progress struct {
	Score int
	Shots int // Shots fired in the run
	Ticks int
}

// Tuning is the difficulty applied to a run at one point in time.
type Tuning struct {
	Level float64 // 0 is the configured start, 1 is the hardest
	Speed float64 // Projectile launch speed
}

// DifficultyManager maps run progress to a Tuning.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, start: clampF(cfg.InitialLevel, 0, 1)}
}

// SetInitialLevel overrides the starting level, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.start = clampF(level, 0, 1)
}

// SetEnabled turns the ramp on or off.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether the level changes during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level interpolates from the starting level to 1 as p approaches the
// progression's max_at.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.start
	}

	var done int
	switch d.cfg.Progression.Type {
	case "score":
		done = p.Score
	case "shots":
		done = p.Shots
	case "time":
		done = p.Ticks
	default:
		return d.start
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	frac := clampF(float64(done)/maxAt, 0, 1)
	return d.start + frac*(1-d.start)
}

// At returns the tuning for p with base as the launch speed at level 0.
// Speed grows linearly up to base*(1+speed_multiplier).
func (d *DifficultyManager) At(base float64, p Progress) Tuning {
	level := d.Level(p)
	return Tuning{Level: level, Speed: base * (1 + level*d.cfg.Scaling.SpeedMultiplier)}
}

// Config returns the difficulty configuration in effect.
func (d *DifficultyManager) Config() DifficultyConfig {
	return d.cfg
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
