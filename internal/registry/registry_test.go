package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
)

func registerTestModes(t *testing.T) {
	t.Helper()
	mu.Lock()
	modes = make(map[string]entry)
	mu.Unlock()

	factory := func(mode core.Mode) Factory {
		return func(cfg engine.Config) (*engine.Session, error) {
			cfg.Mode = mode
			return engine.NewSession(cfg)
		}
	}
	Register(ModeInfo{ID: "zeta", Title: "Zeta"}, factory(core.ModeClassic))
	Register(ModeInfo{ID: "alpha", Title: "Alpha", NeedsLevel: true}, factory(core.ModeAdventure))
}

func TestRegistryList(t *testing.T) {
	registerTestModes(t)

	list := List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d modes, expected 2", len(list))
	}
	if list[0].ID != "alpha" || list[1].ID != "zeta" {
		t.Errorf("List() should be sorted by ID, got %v", list)
	}

	info, ok := Info("zeta")
	if !ok || info.Title != "Zeta" {
		t.Errorf("Info(zeta) = %+v, %v", info, ok)
	}
	if !Exists("alpha") || Exists("missing") {
		t.Error("Exists() reported wrong membership")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	registerTestModes(t)

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate ID should panic")
		}
	}()
	Register(ModeInfo{ID: "zeta"}, nil)
}

func TestRegistryCreate(t *testing.T) {
	registerTestModes(t)
	cfg := engine.Config{Game: config.DefaultBubblesConfig(), Seed: 7}

	s, err := Create("zeta", cfg)
	if err != nil {
		t.Fatalf("Create(zeta) failed: %v", err)
	}
	if s.Mode() != core.ModeClassic || s.Seed() != 7 {
		t.Errorf("session mode %s seed %d", s.Mode(), s.Seed())
	}

	if _, err := Create("alpha", cfg); err == nil || !strings.Contains(err.Error(), "needs a level") {
		t.Errorf("Create(alpha) without level error = %v", err)
	}
	if _, err := Create("missing", cfg); err == nil {
		t.Error("Create(missing) should fail")
	}
}
