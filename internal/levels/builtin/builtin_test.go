package builtin

import (
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

var letters = map[rune]sokoban.Dir{
	'U': sokoban.Up,
	'D': sokoban.Down,
	'L': sokoban.Left,
	'R': sokoban.Right,
}

// solutions holds one known solution per classic level.
var solutions = []string{
	"R",
	"RRRUULLLDRRR",
	"ULRDDLLUURRDLDLU",
	"ULLULDRRRRRURD",
	"UUDRRUULDLDRLLLUURDLDR",
	"UUDRRR",
	"URRDULLDDRRUULLDRR",
}

func TestClassicRegistered(t *testing.T) {
	if !registry.Exists(ClassicID) {
		t.Fatalf("pack %q not registered", ClassicID)
	}
}

func TestClassicLevelsSolvable(t *testing.T) {
	s, list, err := registry.Open(ClassicID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(list) != len(solutions) {
		t.Fatalf("classic has %d levels, test knows %d solutions", len(list), len(solutions))
	}

	for i, sol := range solutions {
		if i > 0 {
			if err := s.Next(); err != nil {
				t.Fatalf("Next to %d: %v", i, err)
			}
		}
		for n, r := range sol {
			s.Move(letters[r])
			if s.Stuck() {
				t.Fatalf("level %s stuck after move %d:\n%s", list[i].ID, n+1, s.Active())
			}
		}
		if !s.Won() {
			t.Errorf("level %s not solved by %q:\n%s", list[i].ID, sol, s.Active())
		}
	}
}

func TestClassicOrder(t *testing.T) {
	list, err := Classic().Levels()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("levels out of order: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
	if list[6].FilePath != "packs/classic/07_map.txt" {
		t.Errorf("token level path = %q", list[6].FilePath)
	}
}
