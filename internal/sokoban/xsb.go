package sokoban

import "fmt"

// SplitXSB splits XSB rows into a static and a dynamic layer. All rows
// must have the same width. '+' is a player on a goal and '*' a box on a
// goal.
func SplitXSB(rows []string) (*Grid[TileKind], *Grid[EntityKind], error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: no rows", ErrMalformedLevel)
	}
	w := len(rows[0])
	static := NewGrid[TileKind](w, len(rows))
	dynamic := NewGrid[EntityKind](w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedLevel, y, len(row), w)
		}
		for x := 0; x < w; x++ {
			p := Pos{x, y}
			switch c := row[x]; c {
			case '+':
				static.put(p, TileGoal)
				dynamic.put(p, EntityPlayer)
			case '*':
				static.put(p, TileGoal)
				dynamic.put(p, EntityBoxOnGoal)
			case '@', '$':
				e, _ := EntityFromChar(c)
				dynamic.put(p, e)
			default:
				t, err := TileFromChar(c)
				if err != nil {
					return nil, nil, fmt.Errorf("row %d: %w", y, err)
				}
				static.put(p, t)
			}
		}
	}
	return static, dynamic, nil
}

// FromXSB builds a level directly from XSB rows.
func FromXSB(index int, rows ...string) (*LevelState, error) {
	static, dynamic, err := SplitXSB(rows)
	if err != nil {
		return nil, err
	}
	return NewLevelState(index, static, dynamic)
}
