package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

func TestDrawBoardGlyphs(t *testing.T) {
	l, err := sokoban.FromXSB(0,
		"#####",
		"#@$.#",
		"#####",
	)
	if err != nil {
		t.Fatal(err)
	}

	w, h := BoardSize(l)
	if w != 10 || h != 3 {
		t.Fatalf("BoardSize() = %dx%d, want 10x3", w, h)
	}

	s := core.NewScreen(w+2, h)
	DrawBoard(s, l, 1, 0)

	if got := s.Row(1); got != " ██<>[]()██ " {
		t.Errorf("Row(1) = %q", got)
	}
	checks := []struct {
		x     int
		color core.Color
	}{
		{1, core.ColorGray},
		{3, core.ColorCyan},
		{5, core.ColorOrange},
		{7, core.ColorRed},
	}
	for _, c := range checks {
		if got := s.GetCell(c.x, 1).Color; got != c.color {
			t.Errorf("color at x=%d = %v, want %v", c.x, got, c.color)
		}
	}
}

func TestGlyphOnGoal(t *testing.T) {
	if g := glyphFor(sokoban.TileGoal, sokoban.EntityBoxOnGoal); g.color != core.ColorBrightGreen {
		t.Errorf("box on goal color = %v", g.color)
	}
	if g := glyphFor(sokoban.TileGoal, sokoban.EntityPlayer); g.color != core.ColorMagenta {
		t.Errorf("player on goal color = %v", g.color)
	}
	if g := glyphFor(sokoban.TileEmpty, sokoban.EntityEmpty); g.text != "  " {
		t.Errorf("empty glyph = %q", g.text)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xyz", core.ColorGray)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q: %q", want, out)
		}
	}
}
