package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the default bubble shooter configuration.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Board: BoardConfig{
			Cols:     8,
			Rows:     14,
			FillRows: 5,
			Colors:   5,
		},
		Physics: PhysicsConfig{
			Speed:    30,
			Substeps: 4,
			FPS:      30,
		},
		Scoring: ScoringConfig{
			PopPoints:  10,
			DropPoints: 20,
			BombRadius: 1,
		},
		Modes: ModesConfig{
			Classic: ClassicConfig{
				MissesPerDrop:    6,
				MinMissesPerDrop: 2,
			},
			TimeAttack: TimeAttackConfig{
				TimerUnits: 90,
				DropRows:   3,
				UnitMillis: 1000,
			},
			Adventure: AdventureConfig{
				DefaultShots: 30,
			},
		},
		Specials: SpecialsConfig{
			Every: 12,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
