package sokoban

// Occupant is the combined classification of a cell across both layers.
type Occupant uint8

const (
	OccEmpty Occupant = iota
	OccGoal
	OccWall
	OccBox
	OccBoxOnGoal
	OccPlayer
)

func (o Occupant) String() string {
	switch o {
	case OccEmpty:
		return "empty"
	case OccGoal:
		return "goal"
	case OccWall:
		return "wall"
	case OccBox:
		return "box"
	case OccBoxOnGoal:
		return "box-on-goal"
	case OccPlayer:
		return "player"
	}
	return "unknown"
}

// Walkable reports whether a player or box may enter the cell.
func (o Occupant) Walkable() bool {
	return o == OccEmpty || o == OccGoal
}

// IsBox reports whether the cell holds a box.
func (o Occupant) IsBox() bool {
	return o == OccBox || o == OccBoxOnGoal
}

// Classify combines both layers at p. Walls win over entities, entities win
// over the static tile. Positions outside the grid classify as walls.
func (l *LevelState) Classify(p Pos) Occupant {
	t, err := l.static.Get(p)
	if err != nil {
		return OccWall
	}
	if t == TileWall {
		return OccWall
	}
	switch l.dynamic.at(p) {
	case EntityPlayer:
		return OccPlayer
	case EntityBox:
		return OccBox
	case EntityBoxOnGoal:
		return OccBoxOnGoal
	}
	if t == TileGoal {
		return OccGoal
	}
	return OccEmpty
}

// Outcome is what a move attempt did.
type Outcome uint8

const (
	// Blocked: the target was a wall or outside the grid.
	Blocked Outcome = iota
	// Stepped: the player walked onto an empty or goal tile.
	Stepped
	// Pushed: the player pushed a box one tile.
	Pushed
	// PushBlocked: the player walked into a box that could not move.
	PushBlocked
)

func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "blocked"
	case Stepped:
		return "stepped"
	case Pushed:
		return "pushed"
	case PushBlocked:
		return "push-blocked"
	}
	return "unknown"
}

// Moved reports whether the player changed position.
func (o Outcome) Moved() bool {
	return o == Stepped || o == Pushed
}

// MoveResult describes one resolved move.
type MoveResult struct {
	Dir     Dir
	Outcome Outcome
	// Effect is EffectPush for any attempt into a box and EffectMove otherwise.
	Effect Effect
	From   Pos
	To     Pos
	// BoxFrom and BoxTo are set when Outcome is Pushed.
	BoxFrom Pos
	BoxTo   Pos
}

// TryMove resolves one player move in direction d. The state either changes
// completely or not at all. TryMove does not evaluate win or stuck flags;
// Session.Move runs the completion check afterwards.
func (l *LevelState) TryMove(d Dir) MoveResult {
	res := MoveResult{Dir: d, Outcome: Blocked, Effect: EffectMove, From: l.player, To: l.player}
	target := l.player.Step(d)

	occ := l.Classify(target)
	switch {
	case occ.Walkable():
		l.relocatePlayer(target)
		l.moves++
		res.Outcome = Stepped
		res.To = target

	case occ.IsBox():
		res.Effect = EffectPush
		beyond := target.Step(d)
		if !l.Classify(beyond).Walkable() {
			res.Outcome = PushBlocked
			return res
		}
		l.relocateBox(target, beyond)
		l.relocatePlayer(target)
		l.moves++
		l.pushes++
		res.Outcome = Pushed
		res.To = target
		res.BoxFrom = target
		res.BoxTo = beyond
	}
	return res
}

// relocatePlayer moves the player onto an in-bounds cell the caller has
// already classified as free.
func (l *LevelState) relocatePlayer(to Pos) {
	l.dynamic.put(l.player, EntityEmpty)
	l.dynamic.put(to, EntityPlayer)
	l.player = to
}

// relocateBox moves the box at from to to. The boxes entry is matched by
// position, not by index.
func (l *LevelState) relocateBox(from, to Pos) {
	for i, b := range l.boxes {
		if b == from {
			l.boxes[i] = to
			break
		}
	}
	l.dynamic.put(from, EntityEmpty)
	l.dynamic.put(to, boxAt(l.goals, to))
}
