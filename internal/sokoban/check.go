package sokoban

// Evaluate recomputes the won and stuck flags from scratch.
//
// Won holds when every box stands on a goal. A level without boxes counts
// as won.
//
// Stuck is a heuristic. A box off its goal is stuck when it has a wall
// above or below it and also a wall to its left or right. Boxes jammed
// against other boxes are not detected. Evaluation stops at the first
// stuck box.
func (l *LevelState) Evaluate() (won, stuck bool) {
	onGoal := 0
	for _, b := range l.boxes {
		if l.goals.Has(b) {
			onGoal++
			continue
		}
		if !stuck && l.cornered(b) {
			stuck = true
		}
	}
	won = onGoal == len(l.boxes)
	l.won = won
	l.stuck = stuck
	return won, stuck
}

func (l *LevelState) cornered(p Pos) bool {
	wall := func(d Dir) bool { return l.Classify(p.Step(d)) == OccWall }
	return (wall(Up) || wall(Down)) && (wall(Left) || wall(Right))
}
