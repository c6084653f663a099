package main

import (
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/config"
)

func TestPick(t *testing.T) {
	testCases := []struct {
		values   []string
		expected string
	}{
		{[]string{"flag", "env"}, "flag"},
		{[]string{"", "env", "default"}, "env"},
		{[]string{"", ""}, ""},
		{nil, ""},
	}

	for _, tc := range testCases {
		if got := pick(tc.values...); got != tc.expected {
			t.Errorf("pick(%q) = %q, expected %q", tc.values, got, tc.expected)
		}
	}
}

func TestApplyDifficulty(t *testing.T) {
	cfg := config.DefaultBubblesConfig()
	if err := applyDifficulty(&cfg, "hard"); err != nil {
		t.Fatalf("applyDifficulty(hard) failed: %v", err)
	}
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset gave %+v", cfg.Difficulty)
	}

	if err := applyDifficulty(&cfg, "fixed"); err != nil || cfg.Difficulty.Enabled {
		t.Errorf("fixed preset: err=%v enabled=%v", err, cfg.Difficulty.Enabled)
	}
	if err := applyDifficulty(&cfg, "insane"); err == nil {
		t.Error("unknown preset should fail")
	}
	if err := applyDifficulty(&cfg, ""); err != nil {
		t.Errorf("empty preset should be accepted, got %v", err)
	}
}

func TestStarString(t *testing.T) {
	for n, expected := range map[int]string{0: "...", 2: "**.", 3: "***"} {
		if got := starString(n); got != expected {
			t.Errorf("starString(%d) = %q, expected %q", n, got, expected)
		}
	}
}
