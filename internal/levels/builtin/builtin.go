// Package builtin embeds the default level pack and registers it.
package builtin

import (
	"embed"

	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// ClassicID is the ID of the embedded pack.
const ClassicID = "classic"

//go:embed packs
var packFS embed.FS

// Classic returns the embedded pack.
func Classic() levels.Pack {
	return levels.NewFSPack(ClassicID, "Classic", packFS, "packs/classic")
}

func init() {
	registry.Register(Classic())
}
