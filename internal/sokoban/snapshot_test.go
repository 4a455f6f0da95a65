package sokoban

import (
	"errors"
	"reflect"
	"testing"
)

func equalSnapshots(a, b Snapshot) bool {
	return reflect.DeepEqual(a, b)
}

func playedLevel(t *testing.T) *LevelState {
	t.Helper()
	l := mustLevel(t,
		"#######",
		"#  .  #",
		"# $@$ #",
		"#  *  #",
		"#######",
	)
	l.TryMove(Right)
	l.TryMove(Up)
	l.TryMove(Left)
	l.Evaluate()
	return l
}

func TestSnapshotRoundTrip(t *testing.T) {
	l := playedLevel(t)
	snap := l.Snapshot()

	got, err := LevelStateFromSnapshot(snap)
	if err != nil {
		t.Fatalf("LevelStateFromSnapshot: %v", err)
	}

	if !got.Static().Equal(l.Static()) {
		t.Error("static layer differs")
	}
	if !got.Dynamic().Equal(l.Dynamic()) {
		t.Error("dynamic layer differs")
	}
	if !equalPositions(got.Boxes(), l.Boxes()) {
		t.Errorf("boxes = %v, want %v", got.Boxes(), l.Boxes())
	}
	if got.Player() != l.Player() {
		t.Errorf("player = %v, want %v", got.Player(), l.Player())
	}
	if got.Won() != l.Won() || got.Stuck() != l.Stuck() {
		t.Error("flags differ")
	}
	if got.Moves() != l.Moves() || got.Pushes() != l.Pushes() {
		t.Error("counters differ")
	}
	if !equalSnapshots(got.Snapshot(), snap) {
		t.Errorf("second snapshot differs:\n got %+v\nwant %+v", got.Snapshot(), snap)
	}

	got.Reset()
	l.Reset()
	if !equalSnapshots(got.Snapshot(), l.Snapshot()) {
		t.Error("restored level resets to a different layout")
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	l := playedLevel(t)
	snap := l.Snapshot()
	snap.Boxes[0] = P(0, 0)
	if l.Boxes()[0] == P(0, 0) {
		t.Error("snapshot shares the box list with the level")
	}
}

func TestSnapshotCorrupt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"zero width", func(s *Snapshot) { s.Width = 0 }},
		{"wrong width", func(s *Snapshot) { s.Width++ }},
		{"missing row", func(s *Snapshot) { s.Dynamic = s.Dynamic[1:] }},
		{"unknown tile", func(s *Snapshot) { s.Static[0] = "######?" }},
		{"unknown entity", func(s *Snapshot) { s.Dynamic[1] = "#  x  #" }},
		{"player mismatch", func(s *Snapshot) { s.Player = P(1, 1) }},
		{"box list mismatch", func(s *Snapshot) { s.Boxes[0] = P(5, 3) }},
		{"box dropped", func(s *Snapshot) { s.Boxes = s.Boxes[1:] }},
		{"initial player missing", func(s *Snapshot) { s.Initial.Player = P(1, 1) }},
		{"negative moves", func(s *Snapshot) { s.Moves = -1 }},
		{"won flag without win", func(s *Snapshot) { s.Won = true }},
		{"stuck flag without stuck box", func(s *Snapshot) { s.Stuck = true }},
		{"box kind off goal", func(s *Snapshot) {
			row := []byte(s.Dynamic[2])
			for i, c := range row {
				if c == '$' {
					row[i] = '*'
				}
			}
			s.Dynamic[2] = string(row)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := playedLevel(t).Snapshot()
			tt.mutate(&snap)
			if err := snap.Validate(); !errors.Is(err, ErrSnapshotCorrupt) {
				t.Errorf("error = %v, want ErrSnapshotCorrupt", err)
			}
		})
	}
}

func TestSnapshotFlagsBeforeFirstMove(t *testing.T) {
	l := mustLevel(t, "####", "#@*#", "####")
	snap := l.Snapshot()
	if _, err := LevelStateFromSnapshot(snap); err != nil {
		t.Fatalf("fresh level: %v", err)
	}

	snap.Won = true
	if err := snap.Validate(); !errors.Is(err, ErrSnapshotCorrupt) {
		t.Errorf("won flag with no moves: error = %v, want ErrSnapshotCorrupt", err)
	}
}
