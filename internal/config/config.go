// Package config provides YAML-based game configuration loading, environment
// overrides and difficulty management for the bubble shooter.
package config

// BubblesConfig contains all configuration for the bubble shooter.
type BubblesConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Modes      ModesConfig      `yaml:"modes"`
	Specials   SpecialsConfig   `yaml:"specials"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Cols     int `yaml:"cols"`
	Rows     int `yaml:"rows"`      // Row capacity; the last row is the danger row
	FillRows int `yaml:"fill_rows"` // Rows filled at start in Classic and TimeAttack
	Colors   int `yaml:"colors"`    // Number of normal colors dealt without a level
}

// PhysicsConfig defines projectile parameters.
type PhysicsConfig struct {
	Speed    float64 `yaml:"speed"`    // Metric units per second
	Substeps int     `yaml:"substeps"` // Collision checks per frame
	FPS      int     `yaml:"fps"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	PopPoints  int `yaml:"pop_points"`
	DropPoints int `yaml:"drop_points"`
	BombRadius int `yaml:"bomb_radius"`
}

// ModesConfig holds per-mode tuning.
type ModesConfig struct {
	Classic    ClassicConfig    `yaml:"classic"`
	TimeAttack TimeAttackConfig `yaml:"time_attack"`
	Adventure  AdventureConfig  `yaml:"adventure"`
}

// ClassicConfig tunes the miss counter row drop.
type ClassicConfig struct {
	MissesPerDrop    int `yaml:"misses_per_drop"`
	MinMissesPerDrop int `yaml:"min_misses_per_drop"`
}

// TimeAttackConfig tunes the countdown.
type TimeAttackConfig struct {
	TimerUnits int `yaml:"timer_units"`
	DropRows   int `yaml:"drop_rows"`
	UnitMillis int `yaml:"unit_millis"` // Wall-clock length of one timer unit
}

// AdventureConfig holds adventure defaults.
type AdventureConfig struct {
	DefaultShots int    `yaml:"default_shots"` // Budget for levels that set none
	LevelsDir    string `yaml:"levels_dir"`    // Extra level directory layered on the built-in catalog
}

// SpecialsConfig controls special ammo.
type SpecialsConfig struct {
	Every int `yaml:"every"` // Every Nth loaded bubble is special; 0 disables
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "shots", "time" or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to projectile speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *BubblesConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
