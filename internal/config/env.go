package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from BUBBLES_* environment variables. Command-line
// flags take precedence over them.
type Env struct {
	DBPath     string `env:"BUBBLES_DB"`
	ConfigPath string `env:"BUBBLES_CONFIG"`
	LevelsDir  string `env:"BUBBLES_LEVELS"`
	FPS        int    `env:"BUBBLES_FPS"`
	Seed       uint64 `env:"BUBBLES_SEED"`
	LogLevel   string `env:"BUBBLES_LOG_LEVEL" envDefault:"info"`
	FeedAddr   string `env:"BUBBLES_FEED_ADDR"`
	SSHAddr    string `env:"BUBBLES_SSH_ADDR" envDefault:":23234"`
	HostKey    string `env:"BUBBLES_HOST_KEY"`
	Sound      bool   `env:"BUBBLES_SOUND" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the BUBBLES_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Apply copies the environment values that affect gameplay into cfg.
func (e Env) Apply(cfg *BubblesConfig) {
	if e.FPS > 0 {
		cfg.Physics.FPS = e.FPS
	}
	if e.LevelsDir != "" {
		cfg.Modes.Adventure.LevelsDir = e.LevelsDir
	}
}
