// Package levels loads Sokoban levels from disk and turns them into
// engine state. It depends on sokoban, never the other way round.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/levels/formats"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Static   *sokoban.Grid[sokoban.TileKind]
	Dynamic  *sokoban.Grid[sokoban.EntityKind]
	Metadata map[string]string
	FilePath string
}

// NewState creates a fresh level state for position index in a session.
func (l *Level) NewState(index int) (*sokoban.LevelState, error) {
	st, err := sokoban.NewLevelState(index, l.Static, l.Dynamic)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return st, nil
}

// NewSession builds a session over the given levels in order.
func NewSession(list []Level) (*sokoban.Session, error) {
	states := make([]*sokoban.LevelState, 0, len(list))
	for i := range list {
		st, err := list[i].NewState(i)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return sokoban.NewSession(states)
}

// FileError ties a load failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *FileError) Unwrap() error { return e.Err }

// Loader loads levels from a file system tree. Every *.yaml / *.yml file
// holds one level and every <id>_map.txt file is paired with its
// <id>_interactive.txt sibling.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: "."}
}

// NewFSLoader creates a loader over an fs.FS, e.g. an embed.FS.
func NewFSLoader(fsys fs.FS, root string) *Loader {
	return &Loader{FS: fsys, Root: root}
}

// LoadAll loads every level below Root, sorted by ID. The first broken
// file aborts the load.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, problems, err := l.scan()
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, problems[0]
	}
	return levels, nil
}

// Validate loads every level and reports all broken files instead of
// stopping at the first one.
func (l *Loader) Validate() ([]Level, []*FileError, error) {
	return l.scan()
}

func (l *Loader) scan() ([]Level, []*FileError, error) {
	var levels []Level
	var problems []*FileError

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		level, ok, lerr := l.loadEntry(p)
		if lerr != nil {
			problems = append(problems, &FileError{Path: p, Err: lerr})
			return nil
		}
		if ok {
			levels = append(levels, level)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	for i := 1; i < len(levels); i++ {
		if levels[i].ID == levels[i-1].ID {
			problems = append(problems, &FileError{
				Path: levels[i].FilePath,
				Err:  fmt.Errorf("%w: duplicate level id %q", sokoban.ErrMalformedLevel, levels[i].ID),
			})
		}
	}
	return levels, problems, nil
}

// loadEntry parses p if it is a level file. ok is false for files that
// are not levels, including the interactive half of a token pair.
func (l *Loader) loadEntry(p string) (Level, bool, error) {
	name := path.Base(p)
	switch {
	case strings.HasSuffix(name, formats.MapSuffix):
		lvl, err := l.LoadTokenPair(p)
		return lvl, err == nil, err
	case isSupportedExtension(strings.ToLower(path.Ext(name))):
		lvl, err := l.LoadFile(p)
		return lvl, err == nil, err
	}
	return Level{}, false, nil
}

// LoadFile loads a single YAML level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return fromParsed(parsed, p), nil
}

// LoadTokenPair loads a level from its _map.txt path and the matching
// _interactive.txt file.
func (l *Loader) LoadTokenPair(mapPath string) (Level, error) {
	id := strings.TrimSuffix(path.Base(mapPath), formats.MapSuffix)
	interactivePath := strings.TrimSuffix(mapPath, formats.MapSuffix) + formats.InteractiveSuffix

	mapData, err := fs.ReadFile(l.FS, mapPath)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", mapPath, err)
	}
	interactive, err := fs.ReadFile(l.FS, interactivePath)
	if errors.Is(err, fs.ErrNotExist) {
		return Level{}, fmt.Errorf("%w: %s has no %s", sokoban.ErrMalformedLevel, mapPath, path.Base(interactivePath))
	}
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", interactivePath, err)
	}

	parsed, err := formats.ParseTokenPair(id, mapData, interactive)
	if err != nil {
		return Level{}, fmt.Errorf("parsing level %s: %w", id, err)
	}
	return fromParsed(parsed, mapPath), nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func fromParsed(parsed formats.Level, p string) Level {
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Static:   parsed.Static,
		Dynamic:  parsed.Dynamic,
		Metadata: parsed.Metadata,
		FilePath: p,
	}
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
