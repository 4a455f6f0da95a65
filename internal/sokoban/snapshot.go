package sokoban

import (
	"errors"
	"fmt"
	"slices"
)

// Snapshot is a serializable copy of one LevelState. Rows use XSB
// characters: '#' wall, '.' goal, ' ' empty for the static layer and
// '@' player, '$' box, '*' box on goal, ' ' empty for the dynamic layer.
type Snapshot struct {
	LevelIndex int             `yaml:"level_index" json:"level_index"`
	Width      int             `yaml:"width" json:"width"`
	Height     int             `yaml:"height" json:"height"`
	Static     []string        `yaml:"static" json:"static"`
	Dynamic    []string        `yaml:"dynamic" json:"dynamic"`
	Boxes      []Pos           `yaml:"boxes" json:"boxes"`
	Player     Pos             `yaml:"player" json:"player"`
	Won        bool            `yaml:"won" json:"won"`
	Stuck      bool            `yaml:"stuck" json:"stuck"`
	Moves      int             `yaml:"moves" json:"moves"`
	Pushes     int             `yaml:"pushes" json:"pushes"`
	Initial    InitialSnapshot `yaml:"initial" json:"initial"`
}

// InitialSnapshot is the reset point stored alongside the live state.
type InitialSnapshot struct {
	Dynamic []string `yaml:"dynamic" json:"dynamic"`
	Boxes   []Pos    `yaml:"boxes" json:"boxes"`
	Player  Pos      `yaml:"player" json:"player"`
}

// Snapshot captures the current mutable state of the level.
func (l *LevelState) Snapshot() Snapshot {
	return Snapshot{
		LevelIndex: l.index,
		Width:      l.Width(),
		Height:     l.Height(),
		Static:     encodeRows(l.static, TileKind.Char),
		Dynamic:    encodeRows(l.dynamic, EntityKind.Char),
		Boxes:      clonePositions(l.boxes),
		Player:     l.player,
		Won:        l.won,
		Stuck:      l.stuck,
		Moves:      l.moves,
		Pushes:     l.pushes,
		Initial: InitialSnapshot{
			Dynamic: encodeRows(l.initial.dynamic, EntityKind.Char),
			Boxes:   clonePositions(l.initial.boxes),
			Player:  l.initial.player,
		},
	}
}

// Validate reports whether s describes a consistent level.
func (s Snapshot) Validate() error {
	_, err := LevelStateFromSnapshot(s)
	return err
}

// LevelStateFromSnapshot rebuilds a level. Any structural inconsistency is
// reported as ErrSnapshotCorrupt.
func LevelStateFromSnapshot(s Snapshot) (*LevelState, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, corrupt("bad dimensions %dx%d", s.Width, s.Height)
	}
	static, err := decodeRows(s.Static, s.Width, s.Height, TileFromChar)
	if err != nil {
		return nil, corrupt("static layer: %v", err)
	}
	initDyn, err := decodeRows(s.Initial.Dynamic, s.Width, s.Height, EntityFromChar)
	if err != nil {
		return nil, corrupt("initial layer: %v", err)
	}
	dynamic, err := decodeRows(s.Dynamic, s.Width, s.Height, EntityFromChar)
	if err != nil {
		return nil, corrupt("dynamic layer: %v", err)
	}

	l, err := NewLevelState(s.LevelIndex, static, initDyn)
	if err != nil {
		return nil, corrupt("initial state: %v", err)
	}
	if err := checkLayout(l, dynamic, s.Boxes, s.Player); err != nil {
		return nil, corrupt("live state: %v", err)
	}
	if err := checkLayout(l, initDyn, s.Initial.Boxes, s.Initial.Player); err != nil {
		return nil, corrupt("initial state: %v", err)
	}
	if s.Moves < 0 || s.Pushes < 0 || s.Pushes > s.Moves {
		return nil, corrupt("bad counters moves=%d pushes=%d", s.Moves, s.Pushes)
	}

	l.dynamic = dynamic
	l.boxes = clonePositions(s.Boxes)
	l.player = s.Player
	l.initial.boxes = clonePositions(s.Initial.Boxes)
	l.initial.player = s.Initial.Player
	l.moves = s.Moves
	l.pushes = s.Pushes

	// Flags are false until the first move after a reset, and from then on
	// they are whatever the board evaluates to.
	won, stuck := l.Evaluate()
	if s.Moves == 0 {
		won, stuck = false, false
	}
	if s.Won != won || s.Stuck != stuck {
		return nil, corrupt("flags won=%t stuck=%t do not match the board (won=%t stuck=%t)", s.Won, s.Stuck, won, stuck)
	}
	l.won = s.Won
	l.stuck = s.Stuck
	return l, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSnapshotCorrupt, fmt.Sprintf(format, args...))
}

// checkLayout verifies that boxes and player agree with the entities in dyn.
func checkLayout(l *LevelState, dyn *Grid[EntityKind], boxes []Pos, player Pos) error {
	if len(boxes) != len(l.initial.boxes) {
		return fmt.Errorf("want %d boxes, got %d", len(l.initial.boxes), len(boxes))
	}
	if e, err := dyn.Get(player); err != nil || e != EntityPlayer {
		return fmt.Errorf("no player at %v", player)
	}

	var cells []Pos
	var bad error
	dyn.Each(func(p Pos, e EntityKind) {
		if bad != nil || e == EntityEmpty {
			return
		}
		switch {
		case l.static.at(p) == TileWall:
			bad = fmt.Errorf("%s on a wall at %v", e, p)
		case e == EntityPlayer && p != player:
			bad = fmt.Errorf("second player at %v", p)
		case e.IsBox():
			if e != boxAt(l.goals, p) {
				bad = fmt.Errorf("%s does not match tile at %v", e, p)
			}
			cells = append(cells, p)
		}
	})
	if bad != nil {
		return bad
	}

	listed := clonePositions(boxes)
	less := func(a, b Pos) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	}
	slices.SortFunc(listed, less)
	if !slices.Equal(listed, cells) {
		return errors.New("box list does not match grid")
	}
	return nil
}

func encodeRows[T comparable](g *Grid[T], char func(T) byte) []string {
	rows := make([]string, g.Height())
	buf := make([]byte, g.Width())
	for y := range rows {
		for x := range buf {
			buf[x] = char(g.at(Pos{x, y}))
		}
		rows[y] = string(buf)
	}
	return rows
}

func decodeRows[T comparable](rows []string, w, h int, parse func(byte) (T, error)) (*Grid[T], error) {
	if len(rows) != h {
		return nil, fmt.Errorf("want %d rows, got %d", h, len(rows))
	}
	g := NewGrid[T](w, h)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d columns, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			v, err := parse(row[x])
			if err != nil {
				return nil, err
			}
			g.put(Pos{x, y}, v)
		}
	}
	return g, nil
}
