// Package formats provides level descriptor parsers.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Zone        string        `yaml:"zone,omitempty"`
	Layout      []string      `yaml:"layout"`
	Shots       int           `yaml:"shots,omitempty"`
	TargetScore int           `yaml:"target_score,omitempty"`
	Stars       []int         `yaml:"stars,omitempty"`
	Objective   YAMLObjective `yaml:"objective,omitempty"`
	Colors      []string      `yaml:"colors,omitempty"`
}

// YAMLObjective represents a level objective.
type YAMLObjective struct {
	Type   string `yaml:"type"`
	Target int    `yaml:"target,omitempty"`
	Color  string `yaml:"color,omitempty"`
}

// ErrMissingID is returned for descriptors without an id.
var ErrMissingID = errors.New("level has no id")

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (core.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return core.Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return core.Level{}, ErrMissingID
	}

	level := core.Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Zone:        yl.Zone,
		Layout:      yl.Layout,
		Shots:       yl.Shots,
		TargetScore: yl.TargetScore,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}
	copy(level.Stars[:], yl.Stars)

	kind, err := core.ParseObjectiveKind(yl.Objective.Type)
	if err != nil {
		return core.Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}
	level.Objective = core.Objective{Kind: kind, Target: yl.Objective.Target}
	switch kind {
	case core.ObjectiveReachScore:
		if level.Objective.Target <= 0 {
			level.Objective.Target = yl.TargetScore
		}
	case core.ObjectiveCollectColor:
		c, ok := core.ParseColor(yl.Objective.Color)
		if !ok || c.IsSpecial() {
			return core.Level{}, fmt.Errorf("level %s: bad objective color %q", yl.ID, yl.Objective.Color)
		}
		level.Objective.Color = c
	}

	for _, name := range yl.Colors {
		c, ok := core.ParseColor(name)
		if !ok || c.IsSpecial() {
			continue // Skip invalid colors
		}
		level.Colors = append(level.Colors, c)
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
