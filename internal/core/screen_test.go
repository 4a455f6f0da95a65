package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '$', ColorYellow)
	if c := s.GetCell(5, 5); c.Rune != '$' || c.Color != ColorYellow {
		t.Errorf("GetCell(5, 5) = %+v, expected yellow '$'", c)
	}

	s.Set(5, 5, 'X')
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %+v", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.FillRect(s.Bounds(), '#', ColorGray)
	s.Clear()

	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("String() after Clear = %q", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)

	s.DrawTextColored(2, 0, "Push", ColorGreen)
	if s.Row(0) != "  Push    " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.GetCell(3, 0).Color != ColorGreen {
		t.Error("text color not applied")
	}

	// Clipping at the right edge
	s.DrawText(8, 1, "abc")
	if s.Row(1) != "        ab" {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(0, 0, "█▒█")
	if s.Row(0) != "█▒█  " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "won", ColorYellow)
	if s.Row(0) != "   won    " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorDefault)

	want := []string{"┌──┐", "│  │", "└──┘"}
	if got := strings.Split(s.String(), "\n"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("box =\n%s", s.String())
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetColored(1, 1, '@', ColorCyan)

	s.Resize(5, 4)
	if s.Width() != 5 || s.Height() != 4 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != '@' || c.Color != ColorCyan {
		t.Errorf("content lost on grow: %+v", c)
	}

	s.Resize(1, 1)
	if s.String() != " " {
		t.Errorf("shrunk screen = %q", s.String())
	}

	s.Resize(-3, 2)
	if s.Width() != 0 {
		t.Errorf("negative width should clamp to 0, got %d", s.Width())
	}
}
