package sokoban

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// LevelState is the mutable state of one level. It is created once from
// parsed level data, mutated in place by moves, and restored from its
// initial snapshot on reset.
type LevelState struct {
	index   int
	static  *Grid[TileKind]
	dynamic *Grid[EntityKind]
	goals   mapset.Set[Pos]
	boxes   []Pos
	player  Pos

	won   bool
	stuck bool

	moves  int
	pushes int

	initial initialState
}

// initialState is never written after construction. Reset copies out of it.
type initialState struct {
	dynamic *Grid[EntityKind]
	boxes   []Pos
	player  Pos
}

// NewLevelState builds a level from its two layers. The grids are copied,
// so the caller keeps ownership of its arguments.
func NewLevelState(index int, static *Grid[TileKind], dynamic *Grid[EntityKind]) (*LevelState, error) {
	if static == nil || dynamic == nil {
		return nil, fmt.Errorf("%w: missing layer", ErrMalformedLevel)
	}
	if static.Width() != dynamic.Width() || static.Height() != dynamic.Height() {
		return nil, fmt.Errorf("%w: static layer is %dx%d, dynamic layer is %dx%d",
			ErrMalformedLevel, static.Width(), static.Height(), dynamic.Width(), dynamic.Height())
	}
	if static.Width() == 0 || static.Height() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedLevel)
	}

	l := &LevelState{
		index:   index,
		static:  static.Clone(),
		dynamic: dynamic.Clone(),
		goals:   mapset.New[Pos](),
	}

	l.static.Each(func(p Pos, t TileKind) {
		if t == TileGoal {
			l.goals.Put(p)
		}
	})

	players := 0
	var bad error
	l.dynamic.Each(func(p Pos, e EntityKind) {
		if bad != nil || e == EntityEmpty {
			return
		}
		if l.static.at(p) == TileWall {
			bad = fmt.Errorf("%w: %s on a wall at %v", ErrMalformedLevel, e, p)
			return
		}
		switch e {
		case EntityPlayer:
			players++
			l.player = p
		case EntityBox, EntityBoxOnGoal:
			l.dynamic.put(p, boxAt(l.goals, p))
			l.boxes = append(l.boxes, p)
		}
	})
	if bad != nil {
		return nil, bad
	}
	if players != 1 {
		return nil, fmt.Errorf("%w: want exactly one player, found %d", ErrMalformedLevel, players)
	}

	l.initial = initialState{
		dynamic: l.dynamic.Clone(),
		boxes:   clonePositions(l.boxes),
		player:  l.player,
	}
	return l, nil
}

// boxAt returns the entity a box takes when standing on p.
func boxAt(goals mapset.Set[Pos], p Pos) EntityKind {
	if goals.Has(p) {
		return EntityBoxOnGoal
	}
	return EntityBox
}

func clonePositions(ps []Pos) []Pos {
	if ps == nil {
		return nil
	}
	out := make([]Pos, len(ps))
	copy(out, ps)
	return out
}

// Index is the position of this level in its session.
func (l *LevelState) Index() int { return l.index }

func (l *LevelState) Width() int  { return l.static.Width() }
func (l *LevelState) Height() int { return l.static.Height() }

// Static returns the static layer. Callers must not modify it.
func (l *LevelState) Static() *Grid[TileKind] { return l.static }

// Dynamic returns the live dynamic layer. Callers must not modify it.
func (l *LevelState) Dynamic() *Grid[EntityKind] { return l.dynamic }

// Player returns the player position.
func (l *LevelState) Player() Pos { return l.player }

// Boxes returns a copy of the box positions.
func (l *LevelState) Boxes() []Pos { return clonePositions(l.boxes) }

// Goals returns the goal positions in row-major order.
func (l *LevelState) Goals() []Pos {
	out := make([]Pos, 0, l.goals.Size())
	l.static.Each(func(p Pos, _ TileKind) {
		if l.goals.Has(p) {
			out = append(out, p)
		}
	})
	return out
}

// IsGoal reports whether p is a goal tile.
func (l *LevelState) IsGoal(p Pos) bool { return l.goals.Has(p) }

func (l *LevelState) Won() bool   { return l.won }
func (l *LevelState) Stuck() bool { return l.stuck }

// Moves counts player steps since the last reset, pushes included.
func (l *LevelState) Moves() int { return l.moves }

// Pushes counts successful box pushes since the last reset.
func (l *LevelState) Pushes() int { return l.pushes }

// BoxesOnGoal counts boxes currently standing on goals.
func (l *LevelState) BoxesOnGoal() int {
	n := 0
	for _, b := range l.boxes {
		if l.goals.Has(b) {
			n++
		}
	}
	return n
}

// Reset restores the dynamic layer, boxes and player from the initial
// snapshot and clears the flags and counters. The snapshot itself is
// copied, never aliased.
func (l *LevelState) Reset() {
	l.dynamic = l.initial.dynamic.Clone()
	l.boxes = clonePositions(l.initial.boxes)
	l.player = l.initial.player
	l.won = false
	l.stuck = false
	l.moves = 0
	l.pushes = 0
}

// Clone returns a fully independent copy of the level.
func (l *LevelState) Clone() *LevelState {
	c := &LevelState{
		index:   l.index,
		static:  l.static.Clone(),
		dynamic: l.dynamic.Clone(),
		goals:   mapset.New[Pos](),
		boxes:   clonePositions(l.boxes),
		player:  l.player,
		won:     l.won,
		stuck:   l.stuck,
		moves:   l.moves,
		pushes:  l.pushes,
		initial: initialState{
			dynamic: l.initial.dynamic.Clone(),
			boxes:   clonePositions(l.initial.boxes),
			player:  l.initial.player,
		},
	}
	l.goals.Each(func(p Pos) { c.goals.Put(p) })
	return c
}

// String renders the level in XSB notation, one row per line.
func (l *LevelState) String() string {
	buf := make([]byte, 0, (l.Width()+1)*l.Height())
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			buf = append(buf, cellChar(l.static.at(Pos{x, y}), l.dynamic.at(Pos{x, y})))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// cellChar merges both layers into a single XSB character.
func cellChar(t TileKind, e EntityKind) byte {
	switch {
	case e == EntityPlayer && t == TileGoal:
		return '+'
	case e != EntityEmpty:
		return e.Char()
	}
	return t.Char()
}
