package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// cellWidth is the number of screen columns per board cell. Two columns
// keep cells roughly square in most terminal fonts.
const cellWidth = 2

type glyph struct {
	text  string
	color core.Color
}

// glyphFor picks the screen representation of one board cell.
func glyphFor(t sokoban.TileKind, e sokoban.EntityKind) glyph {
	switch e {
	case sokoban.EntityPlayer:
		if t == sokoban.TileGoal {
			return glyph{"<>", core.ColorMagenta}
		}
		return glyph{"<>", core.ColorCyan}
	case sokoban.EntityBox:
		return glyph{"[]", core.ColorOrange}
	case sokoban.EntityBoxOnGoal:
		return glyph{"[]", core.ColorBrightGreen}
	}
	switch t {
	case sokoban.TileWall:
		return glyph{"██", core.ColorGray}
	case sokoban.TileGoal:
		return glyph{"()", core.ColorRed}
	}
	return glyph{"  ", core.ColorDefault}
}

// BoardSize returns the screen size of a level in columns and rows.
func BoardSize(l *sokoban.LevelState) (w, h int) {
	return l.Width() * cellWidth, l.Height()
}

// DrawBoard draws the level with its top-left corner at (x, y).
func DrawBoard(s *core.Screen, l *sokoban.LevelState, x, y int) {
	dynamic := l.Dynamic()
	l.Static().Each(func(p sokoban.Pos, t sokoban.TileKind) {
		e, _ := dynamic.Get(p)
		g := glyphFor(t, e)
		s.DrawTextColored(x+p.X*cellWidth, y+p.Y, g.text, g.color)
	})
}
