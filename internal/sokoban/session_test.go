package sokoban

import (
	"errors"
	"reflect"
	"testing"
)

type recorder struct {
	effects []Effect
	notices []string
}

func (r *recorder) OnEffect(e Effect) { r.effects = append(r.effects, e) }
func (r *recorder) OnNotice(n Notice) { r.notices = append(r.notices, n.Text) }

func (r *recorder) clear() {
	r.effects = nil
	r.notices = nil
}

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	levels := []*LevelState{
		mustLevel(t, "@$."),
		mustLevel(t, "#@ $ .#"),
		mustLevel(t, " . ", " $ ", " @ "),
	}
	s, err := NewSession(levels)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	s.Subscribe(rec)
	return s, rec
}

func TestNewSessionRejectsEmpty(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("error = %v, want ErrInvalidLevel", err)
	}
}

func TestNewSessionReindexes(t *testing.T) {
	s, _ := newTestSession(t)
	for i := 0; i < s.Count(); i++ {
		l, err := s.Level(i)
		if err != nil {
			t.Fatal(err)
		}
		if l.Index() != i {
			t.Errorf("level %d has index %d", i, l.Index())
		}
	}
}

func TestSessionMoveEffects(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		dirs    []Dir
		effects []Effect
	}{
		{"wall bump still fires move", 1, []Dir{Left}, []Effect{EffectMove}},
		{"step", 1, []Dir{Right}, []Effect{EffectMove}},
		{"push", 1, []Dir{Right, Right}, []Effect{EffectMove, EffectPush}},
		{"winning push", 0, []Dir{Right}, []Effect{EffectPush, EffectWin}},
		{"win fires once", 2, []Dir{Up, Left, Right}, []Effect{EffectPush, EffectWin, EffectMove, EffectMove}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestSession(t)
			if tt.level != 0 {
				if err := s.ChangeLevel(tt.level); err != nil {
					t.Fatal(err)
				}
			}
			rec.clear()
			for _, d := range tt.dirs {
				s.Move(d)
			}
			if !reflect.DeepEqual(rec.effects, tt.effects) {
				t.Errorf("effects = %v, want %v", rec.effects, tt.effects)
			}
		})
	}
}

func TestSessionStuckEffect(t *testing.T) {
	l := mustLevel(t, " $@", "  .")
	s, err := NewSession([]*LevelState{l})
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	s.Subscribe(rec)

	s.Move(Left)
	if !s.Stuck() {
		t.Fatal("expected stuck")
	}
	want := []Effect{EffectPush, EffectStuck}
	if !reflect.DeepEqual(rec.effects, want) {
		t.Errorf("effects = %v, want %v", rec.effects, want)
	}
	if len(rec.notices) != 1 || rec.notices[0] != MsgStuck {
		t.Errorf("notices = %q", rec.notices)
	}

	s.Reset()
	if s.Stuck() || s.Won() {
		t.Error("reset should clear flags")
	}
}

func TestChangeLevel(t *testing.T) {
	s, rec := newTestSession(t)

	if err := s.ChangeLevel(3); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("ChangeLevel(3) error = %v, want ErrInvalidLevel", err)
	}
	if err := s.ChangeLevel(-1); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("ChangeLevel(-1) error = %v, want ErrInvalidLevel", err)
	}
	if s.LevelIndex() != 0 {
		t.Fatalf("failed change moved session to %d", s.LevelIndex())
	}

	if err := s.ChangeLevel(0); err != nil {
		t.Fatalf("selecting active level: %v", err)
	}
	if len(rec.notices) != 1 || rec.notices[0] != MsgAlreadyActive {
		t.Errorf("notices = %q, want already-selected notice", rec.notices)
	}
	if len(rec.effects) != 0 {
		t.Errorf("no-op change fired %v", rec.effects)
	}

	if err := s.ChangeLevel(2); err != nil {
		t.Fatal(err)
	}
	if s.LevelIndex() != 2 {
		t.Errorf("index = %d, want 2", s.LevelIndex())
	}
	if rec.effects[len(rec.effects)-1] != EffectLevel {
		t.Errorf("effects = %v, want trailing level effect", rec.effects)
	}
}

func TestChangeLevelResetsTarget(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.ChangeLevel(1); err != nil {
		t.Fatal(err)
	}
	s.Move(Right)
	if s.Active().Player() != P(2, 0) {
		t.Fatalf("player = %v", s.Active().Player())
	}

	if err := s.Previous(); err != nil {
		t.Fatal(err)
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if got := s.Active().Player(); got != P(1, 0) {
		t.Errorf("re-entered level not reset, player = %v", got)
	}
}

func TestNextPreviousBoundaries(t *testing.T) {
	s, rec := newTestSession(t)

	if err := s.Previous(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Previous at 0 error = %v, want ErrAtBoundary", err)
	}
	if s.LevelIndex() != 0 {
		t.Errorf("index moved to %d", s.LevelIndex())
	}
	if len(rec.notices) != 1 || rec.notices[0] != MsgFirstLevel {
		t.Errorf("notices = %q", rec.notices)
	}

	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	rec.clear()
	if err := s.Next(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Next at end error = %v, want ErrAtBoundary", err)
	}
	if s.LevelIndex() != 2 {
		t.Errorf("index = %d, want 2", s.LevelIndex())
	}
	if len(rec.notices) != 1 || rec.notices[0] != MsgLastLevel {
		t.Errorf("notices = %q", rec.notices)
	}
}

func TestSubscribeCancel(t *testing.T) {
	s, _ := newTestSession(t)
	var calls int
	cancel := s.Subscribe(ObserverFuncs{Effect: func(Effect) { calls++ }})
	s.Move(Right)
	cancel()
	s.Reset()
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (push + win before cancel)", calls)
	}
}

func TestSessionRestore(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.ChangeLevel(1); err != nil {
		t.Fatal(err)
	}
	s.Move(Right)
	s.Move(Right)
	saved := s.Snapshot()

	if err := s.ChangeLevel(0); err != nil {
		t.Fatal(err)
	}
	if err := s.Restore(saved); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.LevelIndex() != 1 {
		t.Errorf("index = %d, want 1", s.LevelIndex())
	}
	if !equalSnapshots(s.Snapshot(), saved) {
		t.Errorf("restored state differs:\n got %+v\nwant %+v", s.Snapshot(), saved)
	}

	s.Reset()
	if got := s.Active().Player(); got != P(1, 0) {
		t.Errorf("reset after restore put player at %v", got)
	}
}

func TestSessionRestoreRejectsFalseWin(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Restore(s.Snapshot()); err != nil {
		t.Fatalf("restoring an untouched level: %v", err)
	}

	snap := s.Snapshot()
	snap.Won = true
	snap.Moves = 1
	if err := s.Restore(snap); !errors.Is(err, ErrSnapshotCorrupt) {
		t.Fatalf("error = %v, want ErrSnapshotCorrupt", err)
	}
	if s.Won() {
		t.Error("failed restore marked the level won")
	}
}

func TestSessionRestoreKeepsStartPosition(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.ChangeLevel(1); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	snap.Initial.Dynamic = []string{"# @$ .#"}
	snap.Initial.Player = P(2, 0)

	if err := s.Restore(snap); !errors.Is(err, ErrSnapshotCorrupt) {
		t.Fatalf("error = %v, want ErrSnapshotCorrupt", err)
	}
	s.Reset()
	if got := s.Active().Player(); got != P(1, 0) {
		t.Errorf("reset put player at %v, want (1,0)", got)
	}
	if got := s.Active().Boxes(); len(got) != 1 || got[0] != P(3, 0) {
		t.Errorf("reset put boxes at %v, want [(3,0)]", got)
	}
}

func TestSessionRestoreRejectsForeignLayout(t *testing.T) {
	s, _ := newTestSession(t)
	other := mustLevel(t, "@ $.")
	other.index = 0
	snap := other.Snapshot()

	err := s.Restore(snap)
	if !errors.Is(err, ErrSnapshotCorrupt) {
		t.Fatalf("error = %v, want ErrSnapshotCorrupt", err)
	}
	if s.Active().Width() != 3 {
		t.Error("failed restore replaced the level")
	}

	snap = s.Snapshot()
	snap.LevelIndex = 9
	if err := s.Restore(snap); !errors.Is(err, ErrSnapshotCorrupt) {
		t.Errorf("out-of-range index error = %v, want ErrSnapshotCorrupt", err)
	}
}
