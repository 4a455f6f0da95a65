package savegame

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

func testSession(t *testing.T) *sokoban.Session {
	t.Helper()
	a, err := sokoban.FromXSB(0, "#####", "#@$.#", "#####")
	if err != nil {
		t.Fatal(err)
	}
	b, err := sokoban.FromXSB(1,
		"#######",
		"#     #",
		"# @$. #",
		"#  $. #",
		"#######",
	)
	if err != nil {
		t.Fatal(err)
	}
	s, err := sokoban.NewSession([]*sokoban.LevelState{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	s.Move(sokoban.Right)
	s.Move(sokoban.Down)
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := testSession(t)
	f := New("classic", "02", s.Snapshot())

	data, err := Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(got.Snapshot, f.Snapshot) {
		t.Errorf("snapshot changed:\n got %+v\nwant %+v", got.Snapshot, f.Snapshot)
	}
	if got.Pack != "classic" || got.LevelID != "02" || !got.SavedAt.Equal(f.SavedAt) {
		t.Errorf("header = %+v", got)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	s := testSession(t)
	valid, err := Encode(New("classic", "02", s.Snapshot()))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "version: [1"},
		{"wrong version", strings.Replace(string(valid), "version: 1", "version: 9", 1)},
		{"missing pack", strings.Replace(string(valid), "pack: classic", "pack: \"\"", 1)},
		{"broken grid", strings.Replace(string(valid), "width: 7", "width: 8", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); !errors.Is(err, sokoban.ErrSnapshotCorrupt) {
				t.Errorf("error = %v, want ErrSnapshotCorrupt", err)
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	s := testSession(t)
	path := filepath.Join(t.TempDir(), "deep", "slot.yaml")
	f := New("classic", "02", s.Snapshot())

	if err := WriteFile(path, f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got.Snapshot, f.Snapshot) {
		t.Error("snapshot changed on disk")
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".save-*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestApply(t *testing.T) {
	s := testSession(t)
	f := New("classic", "02", s.Snapshot())

	fresh := testSession(t)
	if err := fresh.Previous(); err != nil {
		t.Fatal(err)
	}

	if err := Apply(fresh, "other", f); !errors.Is(err, sokoban.ErrSnapshotCorrupt) {
		t.Errorf("foreign pack error = %v, want ErrSnapshotCorrupt", err)
	}
	if fresh.LevelIndex() != 0 {
		t.Error("failed apply changed the session")
	}

	if err := Apply(fresh, "classic", f); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fresh.LevelIndex() != 1 || fresh.Active().Player() != s.Active().Player() {
		t.Errorf("apply did not restore position: level %d player %v", fresh.LevelIndex(), fresh.Active().Player())
	}
}

func TestManagerFilesAndSlots(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := &Manager{Dir: filepath.Join(dir, "saves"), Store: store}
	s := testSession(t)
	f := New("classic", "02", s.Snapshot())

	p, err := m.Save("quick", f)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p != filepath.Join(dir, "saves", "quick.yaml") {
		t.Errorf("path = %q", p)
	}

	got, err := m.Load("quick")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got.Snapshot, f.Snapshot) {
		t.Error("loaded snapshot differs")
	}

	if err := os.Remove(p); err != nil {
		t.Fatal(err)
	}
	got, err = m.Load("quick")
	if err != nil {
		t.Fatalf("Load from storage: %v", err)
	}
	if got.LevelID != "02" {
		t.Errorf("level id = %q", got.LevelID)
	}

	entries, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "quick" || entries[0].Source != "db" {
		t.Errorf("entries = %+v", entries)
	}

	if _, err := m.Load("missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing save error = %v", err)
	}
}

func TestManagerWithoutStore(t *testing.T) {
	m := &Manager{Dir: t.TempDir()}
	s := testSession(t)

	p, err := m.Save("", New("classic", "02", s.Snapshot()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(p), "save-") {
		t.Errorf("generated name = %q", filepath.Base(p))
	}

	got, err := m.Load(p)
	if err != nil {
		t.Fatalf("Load by path: %v", err)
	}
	if got.Pack != "classic" {
		t.Errorf("pack = %q", got.Pack)
	}

	entries, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Source != "file" {
		t.Errorf("entries = %+v", entries)
	}
}
