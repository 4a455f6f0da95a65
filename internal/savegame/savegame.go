// Package savegame stores engine snapshots as YAML documents, on disk and
// in named storage slots.
package savegame

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// FormatVersion is written into every save and checked on load.
const FormatVersion = 1

// Ext is the file extension of save files.
const Ext = ".yaml"

// File is the on-disk document of one save.
type File struct {
	Version  int              `yaml:"version"`
	Pack     string           `yaml:"pack"`
	LevelID  string           `yaml:"level_id"`
	SavedAt  time.Time        `yaml:"saved_at"`
	Snapshot sokoban.Snapshot `yaml:"snapshot"`
}

// New wraps a snapshot for saving.
func New(pack, levelID string, snap sokoban.Snapshot) File {
	return File{
		Version:  FormatVersion,
		Pack:     pack,
		LevelID:  levelID,
		SavedAt:  time.Now().UTC().Truncate(time.Second),
		Snapshot: snap,
	}
}

// Encode serializes a save.
func Encode(f File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("savegame: encode: %w", err)
	}
	return data, nil
}

// Decode parses a save. Unreadable or structurally invalid documents are
// reported as sokoban.ErrSnapshotCorrupt.
func Decode(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("%w: %v", sokoban.ErrSnapshotCorrupt, err)
	}
	if f.Version != FormatVersion {
		return File{}, fmt.Errorf("%w: unsupported save version %d", sokoban.ErrSnapshotCorrupt, f.Version)
	}
	if f.Pack == "" {
		return File{}, fmt.Errorf("%w: missing pack", sokoban.ErrSnapshotCorrupt)
	}
	if err := f.Snapshot.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// WriteFile writes a save atomically: a temporary file is renamed into place.
func WriteFile(path string, f File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("savegame: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("savegame: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("savegame: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("savegame: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("savegame: rename into %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and decodes a save file.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("savegame: read %s: %w", path, err)
	}
	f, err := Decode(data)
	if err != nil {
		return File{}, fmt.Errorf("savegame: %s: %w", path, err)
	}
	return f, nil
}

// NewName returns a fresh save name.
func NewName() string {
	return "save-" + uuid.NewString()[:8]
}

// Apply restores a save into a session playing pack.
func Apply(s *sokoban.Session, pack string, f File) error {
	if f.Pack != pack {
		return fmt.Errorf("%w: save belongs to pack %q, playing %q", sokoban.ErrSnapshotCorrupt, f.Pack, pack)
	}
	return s.Restore(f.Snapshot)
}

// Manager saves to a directory and, when a store is set, mirrors every
// save into a storage slot of the same name.
type Manager struct {
	Dir   string
	Store *storage.Store
}

// Entry describes a known save.
type Entry struct {
	Name    string
	Pack    string
	LevelID string
	SavedAt time.Time
	Source  string // "file" or "db"
}

// path resolves a name to a file. Names that already look like paths are
// used as given.
func (m *Manager) path(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, Ext) {
		return storage.ExpandHome(name)
	}
	dir, err := storage.ExpandHome(m.Dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+Ext), nil
}

// Save writes f under name and returns the file path.
func (m *Manager) Save(name string, f File) (string, error) {
	if name == "" {
		name = NewName()
	}
	p, err := m.path(name)
	if err != nil {
		return "", err
	}
	if err := WriteFile(p, f); err != nil {
		return "", err
	}
	if m.Store != nil {
		data, err := Encode(f)
		if err != nil {
			return "", err
		}
		slot := storage.SaveSlot{
			Name:       strings.TrimSuffix(filepath.Base(p), Ext),
			PackID:     f.Pack,
			LevelID:    f.LevelID,
			LevelIndex: f.Snapshot.LevelIndex,
			Data:       data,
		}
		if err := m.Store.PutSave(slot); err != nil {
			return "", err
		}
	}
	return p, nil
}

// Load reads a save by name or path. The file wins; the storage slot is
// the fallback when no file exists.
func (m *Manager) Load(name string) (File, error) {
	p, err := m.path(name)
	if err != nil {
		return File{}, err
	}
	f, err := ReadFile(p)
	if err == nil || !errors.Is(err, os.ErrNotExist) || m.Store == nil {
		return f, err
	}

	slot, serr := m.Store.GetSave(name)
	if serr != nil {
		if errors.Is(serr, storage.ErrSlotNotFound) {
			return File{}, err
		}
		return File{}, serr
	}
	return Decode(slot.Data)
}

// List returns every save in the directory and in storage, newest first.
func (m *Manager) List() ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry

	dir, err := storage.ExpandHome(m.Dir)
	if err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*"+Ext))
	if err != nil {
		return nil, fmt.Errorf("savegame: list %s: %w", dir, err)
	}
	for _, p := range matches {
		f, err := ReadFile(p)
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(p), Ext)
		seen[name] = true
		entries = append(entries, Entry{Name: name, Pack: f.Pack, LevelID: f.LevelID, SavedAt: f.SavedAt, Source: "file"})
	}

	if m.Store != nil {
		slots, err := m.Store.ListSaves()
		if err != nil {
			return nil, err
		}
		for _, s := range slots {
			if seen[s.Name] {
				continue
			}
			entries = append(entries, Entry{Name: s.Name, Pack: s.PackID, LevelID: s.LevelID, SavedAt: s.UpdatedAt, Source: "db"})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries, nil
}
