package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

const yamlLevel = `id: "%s"
name: Level %s
layout:
  - "#####"
  - "#@$.#"
  - "#####"
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func yamlFor(id string) string {
	return fmt.Sprintf(yamlLevel, id, id)
}

func tokenFiles(t *testing.T, dir, id string) {
	t.Helper()
	writeFile(t, dir, id+"_map.txt", "wall\nnull\nnull\nredmarker\nnext\nwall\nnull\nnull\nnull\n")
	writeFile(t, dir, id+"_interactive.txt", "null\nplayer\nbox\nnull\nnext\nnull\nnull\nnull\nnull\n")
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", yamlFor("b"))
	writeFile(t, dir, "nested/a.yml", yamlFor("a"))
	tokenFiles(t, dir, "c")
	writeFile(t, dir, "README.md", "not a level")

	list, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	var ids []string
	for _, l := range list {
		ids = append(ids, l.ID)
	}
	if got := strings.Join(ids, ","); got != "a,b,c" {
		t.Errorf("ids = %s, want a,b,c", got)
	}
	if list[0].FilePath != "nested/a.yml" {
		t.Errorf("file path = %q", list[0].FilePath)
	}
}

func TestLoaderMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", yamlFor("good"))
	writeFile(t, dir, "bad.yaml", "id: bad\nlayout: ['###', '#@']\n")
	writeFile(t, dir, "lonely_map.txt", "wall\n")

	_, err := NewLoader(dir).LoadAll()
	if !errors.Is(err, sokoban.ErrMalformedLevel) {
		t.Fatalf("LoadAll error = %v, want ErrMalformedLevel", err)
	}

	list, problems, err := NewLoader(dir).Validate()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "good" {
		t.Errorf("valid levels = %v", list)
	}
	if len(problems) != 2 {
		t.Fatalf("problems = %v, want 2", problems)
	}
	for _, p := range problems {
		var fe *FileError
		if !errors.As(p, &fe) || fe.Path == "" {
			t.Errorf("problem without path: %v", p)
		}
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yaml", yamlFor("same"))
	writeFile(t, dir, "two.yaml", yamlFor("same"))

	if _, err := NewLoader(dir).LoadAll(); !errors.Is(err, sokoban.ErrMalformedLevel) {
		t.Errorf("error = %v, want ErrMalformedLevel for duplicate ids", err)
	}
}

func TestLoaderByIDAndList(t *testing.T) {
	fsys := fstest.MapFS{
		"pack/x.yaml": {Data: []byte(yamlFor("x"))},
		"pack/y.yaml": {Data: []byte(yamlFor("y"))},
	}
	l := NewFSLoader(fsys, "pack")

	ids, err := l.ListIDs()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(ids, ",") != "x,y" {
		t.Errorf("ids = %v", ids)
	}

	lvl, err := l.LoadByID("y")
	if err != nil {
		t.Fatal(err)
	}
	if lvl.Name != "Level y" {
		t.Errorf("name = %q", lvl.Name)
	}
	if _, err := l.LoadByID("zzz"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestNewSessionFromLevels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1.yaml", yamlFor("1"))
	tokenFiles(t, dir, "2")

	list, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(list)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Count() != 2 {
		t.Fatalf("count = %d", s.Count())
	}
	s.Move(sokoban.Right)
	if !s.Won() {
		t.Error("first level should be won after one push")
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	s.Move(sokoban.Right)
	if !s.Won() {
		t.Errorf("token level should be won:\n%s", s.Active())
	}
}

func TestDirPack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mine")
	writeFile(t, dir, "1.yaml", yamlFor("1"))

	p := NewDirPack(dir)
	if p.ID() != "mine" {
		t.Errorf("id = %q", p.ID())
	}
	list, err := p.Levels()
	if err != nil || len(list) != 1 {
		t.Fatalf("Levels = %v, %v", list, err)
	}

	empty := NewDirPack(t.TempDir())
	if _, err := empty.Levels(); err == nil {
		t.Error("empty pack should fail")
	}
}
