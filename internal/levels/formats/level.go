// Package formats provides the level file parsers.
package formats

import "github.com/vovakirdan/tui-sokoban/internal/sokoban"

// Level is a parsed level ready to be turned into a sokoban.LevelState.
type Level struct {
	ID       string
	Name     string
	Static   *sokoban.Grid[sokoban.TileKind]
	Dynamic  *sokoban.Grid[sokoban.EntityKind]
	Metadata map[string]string
}

// FormatExtensions returns the extensions of single-file level formats.
// Token pairs are recognised by their suffixes instead.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
