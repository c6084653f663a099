package levels

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// Catalog is an immutable, id-indexed set of levels.
type Catalog struct {
	byID  map[string]Entry
	order []string
}

// NewCatalog merges loaded entries. Later loaders win on duplicate ids, so
// a user directory can replace built-in levels.
func NewCatalog(loaders ...*Loader) (*Catalog, []error, error) {
	c := &Catalog{byID: make(map[string]Entry)}
	var skipped []error

	for _, l := range loaders {
		entries, bad, err := l.LoadAll()
		if err != nil {
			return nil, nil, err
		}
		skipped = append(skipped, bad...)
		for _, e := range entries {
			c.byID[e.Level.ID] = e
		}
	}

	c.order = make([]string, 0, len(c.byID))
	for id := range c.byID {
		c.order = append(c.order, id)
	}
	sort.Strings(c.order)
	return c, skipped, nil
}

// Load builds the default catalog: embedded levels overlaid with dir when
// dir is not empty.
func Load(dir string) (*Catalog, []error, error) {
	loaders := []*Loader{Builtin()}
	if dir != "" {
		loaders = append(loaders, NewDirLoader(dir))
	}
	return NewCatalog(loaders...)
}

// Get returns the level with id, or an ErrConfigNotFound error.
func (c *Catalog) Get(id string) (*core.Level, error) {
	e, ok := c.byID[id]
	if !ok {
		return nil, core.ConfigNotFound(id)
	}
	return e.Level, nil
}

// Entry returns the level with id and its source file.
func (c *Catalog) Entry(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// IDs returns all level ids in sorted order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Levels returns all levels in id order.
func (c *Catalog) Levels() []*core.Level {
	out := make([]*core.Level, len(c.order))
	for i, id := range c.order {
		out[i] = c.byID[id].Level
	}
	return out
}

// Len returns the number of levels.
func (c *Catalog) Len() int { return len(c.order) }

// Next returns the id following id, or "" for the last level.
func (c *Catalog) Next(id string) string {
	i := sort.SearchStrings(c.order, id)
	if i+1 < len(c.order) && c.order[i] == id {
		return c.order[i+1]
	}
	return ""
}

// Problem is one validation finding.
type Problem struct {
	LevelID string
	File    string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s (%s): %s", p.LevelID, p.File, p.Message)
}

// Validate checks every level against the board size. ids lists level ids
// that callers reference (for example from config); unknown ones are
// reported too.
func (c *Catalog) Validate(cols, rows int, ids ...string) []Problem {
	var problems []Problem
	add := func(e Entry, format string, args ...any) {
		problems = append(problems, Problem{LevelID: e.Level.ID, File: e.File, Message: fmt.Sprintf(format, args...)})
	}

	for _, id := range ids {
		if _, ok := c.byID[id]; !ok {
			problems = append(problems, Problem{LevelID: id, Message: "unknown level id"})
		}
	}

	for _, id := range c.order {
		e := c.byID[id]
		l := e.Level
		switch {
		case len(l.Layout) == 0:
			add(e, "empty layout")
		case l.Width() > cols:
			add(e, "layout is %d wide, board has %d columns", l.Width(), cols)
		case len(l.Layout) >= rows:
			add(e, "layout has %d rows, board danger row is %d", len(l.Layout), rows-1)
		}
		if len(l.Layout) > 0 {
			if b, err := l.Build(cols, rows, 0); err == nil && b.IsEmpty() {
				add(e, "layout has no bubbles")
			}
		}
		if l.Shots < 0 {
			add(e, "negative shot budget %d", l.Shots)
		}
		if (l.Stars[1] > 0 && l.Stars[0] > l.Stars[1]) || (l.Stars[2] > 0 && l.Stars[1] > l.Stars[2]) {
			add(e, "star thresholds not ascending: %v", l.Stars)
		}
		if l.Objective.Kind != core.ObjectiveClearBoard && l.Objective.Target <= 0 {
			add(e, "objective %s has no target", l.Objective.Kind)
		}
	}
	return problems
}
