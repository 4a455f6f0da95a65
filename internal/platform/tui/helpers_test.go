package tui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// testPack has a one-push level, a level that gets stuck after one push
// and a level for the hard filter.
var testPack = []struct {
	id, difficulty string
	rows           []string
}{
	{"push", "easy", []string{
		"#####",
		"#@$.#",
		"#####",
	}},
	{"corner", "medium", []string{
		"#####",
		"# $@#",
		"#   #",
		"#  .#",
		"#####",
	}},
	{"wide", "hard", []string{
		"#######",
		"#@ $ .#",
		"#######",
	}},
}

func newTestGame(t *testing.T, gp config.GameplayConfig) *game.Game {
	t.Helper()
	var list []levels.Level
	for _, l := range testPack {
		static, dynamic, err := sokoban.SplitXSB(l.rows)
		if err != nil {
			t.Fatalf("SplitXSB(%s) error = %v", l.id, err)
		}
		list = append(list, levels.Level{
			ID:       l.id,
			Static:   static,
			Dynamic:  dynamic,
			Metadata: map[string]string{"difficulty": l.difficulty},
		})
	}
	session, err := levels.NewSession(list)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	g, err := game.New(session, list, game.Options{
		PackID:   "test",
		Gameplay: gp,
		Logger:   log.New(&bytes.Buffer{}),
	})
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	return g
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = 60
	cfg.ScreenH = 24
	return cfg
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
