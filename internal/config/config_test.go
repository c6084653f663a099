package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BubblesConfig
	if err := yaml.Unmarshal(defaultBubblesYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBubblesConfig()) {
		t.Errorf("embedded defaults differ from DefaultBubblesConfig():\n%+v\n%+v", cfg, DefaultBubblesConfig())
	}
}

func TestLoadBubblesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  cols: 10\nphysics:\n  speed: 45\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBubbles(path)
	if err != nil {
		t.Fatalf("LoadBubbles() failed: %v", err)
	}
	if cfg.Board.Cols != 10 || cfg.Physics.Speed != 45 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Board.Rows != 14 || cfg.Scoring.PopPoints != 10 {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadBubblesCustomPathErrors(t *testing.T) {
	if _, err := LoadBubbles(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBubbles(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadBubblesSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadBubbles("")
	if err != nil {
		t.Fatalf("LoadBubbles() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBubblesConfig()) {
		t.Errorf("expected defaults without config files, got %+v", cfg)
	}

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", ConfigFile), []byte("board:\n  cols: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadBubbles("")
	if cfg.Board.Cols != 6 {
		t.Errorf("local config not used, cols = %d", cfg.Board.Cols)
	}

	userDir := filepath.Join(home, ".bubbles", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, ConfigFile), []byte("board:\n  cols: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadBubbles("")
	if cfg.Board.Cols != 7 {
		t.Errorf("user config should win over local, cols = %d", cfg.Board.Cols)
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}

	testCases := []struct {
		name  string
		score int
		level float64
	}{
		{"start", 0, 0.2},
		{"half way", 500, 0.6},
		{"max", 1000, 1.0},
		{"past max", 5000, 1.0},
	}

	dm := NewDifficultyManager(cfg)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dm.Level(Progress{Score: tc.score}); abs(got-tc.level) > 1e-9 {
				t.Errorf("Level(score %d) = %f, expected %f", tc.score, got, tc.level)
			}
		})
	}

	if got := dm.At(30, Progress{Score: 1000}); abs(got.Speed-60) > 1e-9 || got.Level != 1 {
		t.Errorf("At(max) = %+v, expected level 1 speed 60", got)
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() || dm.Level(Progress{Score: 1000}) != 0.2 {
		t.Error("disabled manager should stay at the initial level")
	}

	dm.SetInitialLevel(3)
	if dm.Level(Progress{}) != 1 {
		t.Errorf("SetInitialLevel should clamp, got %f", dm.Level(Progress{}))
	}
}

func TestDifficultyProgressionTypes(t *testing.T) {
	p := Progress{Score: 9999, Shots: 25, Ticks: 50}
	testCases := []struct {
		kind     string
		expected float64
	}{
		{"time", 0.5},
		{"shots", 0.25},
		{"none", 0},
		{"bogus", 0},
	}

	for _, tc := range testCases {
		dm := NewDifficultyManager(DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: tc.kind, MaxAt: 100}})
		if got := dm.Level(p); abs(got-tc.expected) > 1e-9 {
			t.Errorf("%s progression Level = %f, expected %f", tc.kind, got, tc.expected)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	testCases := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.5},
		{"", true, 0.5},
	}

	for _, tc := range testCases {
		cfg := DefaultBubblesConfig()
		cfg.Difficulty.InitialLevel = 0.5
		ApplyPreset(&cfg, tc.preset)
		if cfg.Difficulty.Enabled != tc.enabled || cfg.Difficulty.InitialLevel != tc.initial {
			t.Errorf("ApplyPreset(%q) = %+v", tc.preset, cfg.Difficulty)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("BUBBLES_FPS", "45")
	t.Setenv("BUBBLES_SEED", "99")
	t.Setenv("BUBBLES_LEVELS", "/tmp/levels")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() failed: %v", err)
	}
	if e.FPS != 45 || e.Seed != 99 || e.LogLevel != "info" || !e.Sound {
		t.Errorf("unexpected env: %+v", e)
	}

	cfg := DefaultBubblesConfig()
	e.Apply(&cfg)
	if cfg.Physics.FPS != 45 || cfg.Modes.Adventure.LevelsDir != "/tmp/levels" {
		t.Errorf("Apply() = %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("BUBBLES_FPS", "fast")

	_, err := LoadEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "bubbles")
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}

	if _, err := NewLogger(&buf, "loud", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := ExpandHome("~/x.db"); got != "/home/tester/x.db" {
		t.Errorf("ExpandHome(~/x.db) = %q", got)
	}
	if got := ExpandHome("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("ExpandHome(/abs/x.db) = %q", got)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
