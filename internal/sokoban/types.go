// Package sokoban implements the box-pushing puzzle engine: a two-layer
// grid, per-level mutable state, the move resolver, completion checks and
// a session that walks an ordered list of levels.
//
// The package is pure: no I/O, no logging, no global state. Views and
// persistence layers drive it through Session and read it back through
// its accessors and Snapshot.
package sokoban

import "fmt"

// Pos is a 0-indexed (column, row) grid position.
type Pos struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// P is a shorthand constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// Add returns p translated by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y}
}

// Step returns the neighbouring position in direction dir.
func (p Pos) Step(dir Dir) Pos {
	return p.Add(dir.Delta())
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dir is a movement direction.
type Dir uint8

const (
	Up Dir = iota
	Down
	Left
	Right
)

// Dirs lists every direction in a stable order.
var Dirs = [...]Dir{Up, Down, Left, Right}

// Delta returns the unit vector for the direction. Y grows downwards.
func (d Dir) Delta() Pos {
	switch d {
	case Up:
		return Pos{0, -1}
	case Down:
		return Pos{0, 1}
	case Left:
		return Pos{-1, 0}
	case Right:
		return Pos{1, 0}
	}
	return Pos{}
}

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Dir(%d)", uint8(d))
}

// ParseDir converts a direction name to a Dir.
func ParseDir(s string) (Dir, bool) {
	for _, d := range Dirs {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// TileKind is a cell of the static layer.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileWall
	TileGoal
)

func (t TileKind) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileGoal:
		return "goal"
	}
	return fmt.Sprintf("TileKind(%d)", uint8(t))
}

// Char returns the XSB character of the tile.
func (t TileKind) Char() byte {
	switch t {
	case TileWall:
		return '#'
	case TileGoal:
		return '.'
	}
	return ' '
}

// TileFromChar is the inverse of TileKind.Char.
func TileFromChar(c byte) (TileKind, error) {
	switch c {
	case ' ', '-', '_':
		return TileEmpty, nil
	case '#':
		return TileWall, nil
	case '.':
		return TileGoal, nil
	}
	return TileEmpty, fmt.Errorf("%w: unknown tile %q", ErrMalformedLevel, c)
}

// EntityKind is a cell of the dynamic layer.
type EntityKind uint8

const (
	EntityEmpty EntityKind = iota
	EntityPlayer
	EntityBox
	EntityBoxOnGoal
)

func (e EntityKind) String() string {
	switch e {
	case EntityEmpty:
		return "empty"
	case EntityPlayer:
		return "player"
	case EntityBox:
		return "box"
	case EntityBoxOnGoal:
		return "box-on-goal"
	}
	return fmt.Sprintf("EntityKind(%d)", uint8(e))
}

// IsBox reports whether the entity is a box, on a goal or not.
func (e EntityKind) IsBox() bool {
	return e == EntityBox || e == EntityBoxOnGoal
}

// Char returns the XSB character of the entity.
func (e EntityKind) Char() byte {
	switch e {
	case EntityPlayer:
		return '@'
	case EntityBox:
		return '$'
	case EntityBoxOnGoal:
		return '*'
	}
	return ' '
}

// EntityFromChar is the inverse of EntityKind.Char.
func EntityFromChar(c byte) (EntityKind, error) {
	switch c {
	case ' ', '-', '_':
		return EntityEmpty, nil
	case '@':
		return EntityPlayer, nil
	case '$':
		return EntityBox, nil
	case '*':
		return EntityBoxOnGoal, nil
	}
	return EntityEmpty, fmt.Errorf("%w: unknown entity %q", ErrMalformedLevel, c)
}
