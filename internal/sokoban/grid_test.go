package sokoban

import (
	"errors"
	"testing"
)

func TestGridBounds(t *testing.T) {
	g := NewGrid[TileKind](3, 2)

	tests := []struct {
		name string
		pos  Pos
		ok   bool
	}{
		{"origin", P(0, 0), true},
		{"last cell", P(2, 1), true},
		{"negative x", P(-1, 0), false},
		{"negative y", P(0, -1), false},
		{"x == width", P(3, 0), false},
		{"y == height", P(0, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.InBounds(tt.pos); got != tt.ok {
				t.Errorf("InBounds(%v) = %v, want %v", tt.pos, got, tt.ok)
			}
			_, err := g.Get(tt.pos)
			if tt.ok && err != nil {
				t.Errorf("Get(%v) unexpected error: %v", tt.pos, err)
			}
			if !tt.ok && !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Get(%v) error = %v, want ErrOutOfBounds", tt.pos, err)
			}
			err = g.Set(tt.pos, TileWall)
			if !tt.ok && !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Set(%v) error = %v, want ErrOutOfBounds", tt.pos, err)
			}
		})
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid[EntityKind](2, 2)
	if err := g.Set(P(1, 1), EntityBox); err != nil {
		t.Fatal(err)
	}

	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone should equal original")
	}

	if err := c.Set(P(1, 1), EntityEmpty); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Get(P(1, 1)); v != EntityBox {
		t.Errorf("original changed through clone: got %v", v)
	}
	if c.Equal(g) {
		t.Error("grids should differ after writing to the clone")
	}
}

func TestGridEqualDimensions(t *testing.T) {
	a := NewGrid[TileKind](2, 3)
	b := NewGrid[TileKind](3, 2)
	if a.Equal(b) {
		t.Error("grids with different shapes must not be equal")
	}
}

func TestSplitXSBRejectsRaggedRows(t *testing.T) {
	_, _, err := SplitXSB([]string{"###", "#@", "###"})
	if !errors.Is(err, ErrMalformedLevel) {
		t.Fatalf("error = %v, want ErrMalformedLevel", err)
	}
}

func TestSplitXSBRejectsUnknownChar(t *testing.T) {
	_, _, err := SplitXSB([]string{"#@x"})
	if !errors.Is(err, ErrMalformedLevel) {
		t.Fatalf("error = %v, want ErrMalformedLevel", err)
	}
}
