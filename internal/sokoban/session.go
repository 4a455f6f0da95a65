package sokoban

import "fmt"

// Session owns an ordered list of levels and the active one. It is the
// only entry point views need: moves, resets and level changes go through
// it and it fans effects out to subscribed observers.
//
// A Session is not safe for concurrent use. Give each player its own.
type Session struct {
	levels    []*LevelState
	active    int
	observers []subscription
	nextSub   int
}

type subscription struct {
	id int
	o  Observer
}

// NewSession takes ownership of levels. Level indices are rewritten to
// match their position.
func NewSession(levels []*LevelState) (*Session, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: session needs at least one level", ErrInvalidLevel)
	}
	for i, l := range levels {
		if l == nil {
			return nil, fmt.Errorf("%w: level %d is nil", ErrInvalidLevel, i)
		}
		l.index = i
	}
	return &Session{levels: levels}, nil
}

// Subscribe registers o and returns a function that removes it again.
func (s *Session) Subscribe(o Observer) func() {
	s.nextSub++
	id := s.nextSub
	s.observers = append(s.observers, subscription{id: id, o: o})
	return func() {
		for i, cur := range s.observers {
			if cur.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) emit(e Effect) {
	for _, sub := range s.observers {
		sub.o.OnEffect(e)
	}
}

func (s *Session) notify(kind NoticeKind, text string) {
	n := Notice{Kind: kind, Text: text}
	for _, sub := range s.observers {
		sub.o.OnNotice(n)
	}
}

// Active returns the level being played.
func (s *Session) Active() *LevelState { return s.levels[s.active] }

// Index returns the active level index.
func (s *Session) Index() int { return s.active }

// Count returns the number of levels.
func (s *Session) Count() int { return len(s.levels) }

// Level returns the level at index i without activating it.
func (s *Session) Level(i int) (*LevelState, error) {
	if i < 0 || i >= len(s.levels) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidLevel, i, len(s.levels))
	}
	return s.levels[i], nil
}

func (s *Session) Static() *Grid[TileKind] { return s.Active().Static() }
func (s *Session) Dynamic() *Grid[EntityKind] { return s.Active().Dynamic() }
func (s *Session) Won() bool { return s.Active().Won() }
func (s *Session) Stuck() bool { return s.Active().Stuck() }
func (s *Session) LevelIndex() int { return s.active }

// Move runs one resolve and recheck cycle on the active level. Win and
// stuck effects fire when the flag turns on.
func (s *Session) Move(d Dir) MoveResult {
	l := s.Active()
	wasWon, wasStuck := l.won, l.stuck

	res := l.TryMove(d)
	s.emit(res.Effect)

	won, stuck := l.Evaluate()
	if won && !wasWon {
		s.emit(EffectWin)
		s.notify(NoticeInfo, MsgWon)
	}
	if stuck && !wasStuck {
		s.emit(EffectStuck)
		s.notify(NoticeWarn, MsgStuck)
	}
	return res
}

// Reset restores the active level to its initial layout.
func (s *Session) Reset() {
	s.Active().Reset()
	s.emit(EffectReset)
}

// ChangeLevel activates level i from its initial layout. Selecting the
// active level is a no-op that only produces a notice.
func (s *Session) ChangeLevel(i int) error {
	if i < 0 || i >= len(s.levels) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidLevel, i, len(s.levels))
	}
	if i == s.active {
		s.notify(NoticeWarn, MsgAlreadyActive)
		return nil
	}
	s.levels[i].Reset()
	s.active = i
	s.emit(EffectLevel)
	return nil
}

// Next activates the following level.
func (s *Session) Next() error {
	if s.active+1 >= len(s.levels) {
		s.notify(NoticeWarn, MsgLastLevel)
		return fmt.Errorf("%w: already at last level %d", ErrAtBoundary, s.active)
	}
	return s.ChangeLevel(s.active + 1)
}

// Previous activates the preceding level.
func (s *Session) Previous() error {
	if s.active == 0 {
		s.notify(NoticeWarn, MsgFirstLevel)
		return fmt.Errorf("%w: already at first level", ErrAtBoundary)
	}
	return s.ChangeLevel(s.active - 1)
}

// Snapshot captures the active level.
func (s *Session) Snapshot() Snapshot {
	return s.Active().Snapshot()
}

// Restore replaces the level named by snap and activates it. The snapshot
// must describe the same static layout and start position as the
// session's level at that index. On error the session is left untouched.
func (s *Session) Restore(snap Snapshot) error {
	l, err := LevelStateFromSnapshot(snap)
	if err != nil {
		return err
	}
	if snap.LevelIndex < 0 || snap.LevelIndex >= len(s.levels) {
		return fmt.Errorf("%w: level index %d not in [0,%d)", ErrSnapshotCorrupt, snap.LevelIndex, len(s.levels))
	}
	cur := s.levels[snap.LevelIndex]
	if !cur.static.Equal(l.static) {
		return fmt.Errorf("%w: layout does not match level %d", ErrSnapshotCorrupt, snap.LevelIndex)
	}
	if !cur.initial.dynamic.Equal(l.initial.dynamic) || cur.initial.player != l.initial.player {
		return fmt.Errorf("%w: start position does not match level %d", ErrSnapshotCorrupt, snap.LevelIndex)
	}
	// The reset point always comes from the session's own level.
	l.initial = initialState{
		dynamic: cur.initial.dynamic.Clone(),
		boxes:   clonePositions(cur.initial.boxes),
		player:  cur.initial.player,
	}
	s.levels[snap.LevelIndex] = l
	s.active = snap.LevelIndex
	return nil
}
