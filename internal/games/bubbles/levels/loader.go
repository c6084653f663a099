// Package levels loads adventure level descriptors. The built-in catalog is
// embedded in the binary; a directory can be layered on top of it.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels/formats"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// Entry is a loaded level together with the file it came from.
type Entry struct {
	Level *core.Level
	File  string
}

// Loader handles loading levels from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader reading root inside fsys.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, root: root}
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: "."}
}

// Builtin returns the loader for the embedded catalog.
func Builtin() *Loader {
	return &Loader{fsys: builtinFS, root: "data"}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail to
// parse are reported in the second return value and otherwise skipped.
func (l *Loader) LoadAll() ([]Entry, []error, error) {
	var entries []Entry
	var skipped []error

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		entry, err := l.LoadFile(p)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", l.root, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Level.ID < entries[j].Level.ID
	})
	return entries, skipped, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Entry, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Entry{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Entry{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return Entry{Level: &parsed, File: p}, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (core.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return core.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
