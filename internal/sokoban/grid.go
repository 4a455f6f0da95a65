package sokoban

import "fmt"

// Grid is a fixed-size rectangular store of T, stored row-major.
type Grid[T comparable] struct {
	w, h  int
	cells []T
}

// NewGrid creates a grid of w x h zero values.
func NewGrid[T comparable](w, h int) *Grid[T] {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid[T]{w: w, h: h, cells: make([]T, w*h)}
}

func (g *Grid[T]) Width() int  { return g.w }
func (g *Grid[T]) Height() int { return g.h }

// InBounds reports whether p lies inside the grid.
func (g *Grid[T]) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

func (g *Grid[T]) index(p Pos) int {
	return p.Y*g.w + p.X
}

// Get returns the value at p, or ErrOutOfBounds.
func (g *Grid[T]) Get(p Pos) (T, error) {
	if !g.InBounds(p) {
		var zero T
		return zero, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.w, g.h)
	}
	return g.cells[g.index(p)], nil
}

// Set writes v at p, or returns ErrOutOfBounds without touching the grid.
func (g *Grid[T]) Set(p Pos, v T) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.w, g.h)
	}
	g.cells[g.index(p)] = v
	return nil
}

// at reads a position the caller has already bounds-checked.
func (g *Grid[T]) at(p Pos) T {
	return g.cells[g.index(p)]
}

func (g *Grid[T]) put(p Pos, v T) {
	g.cells[g.index(p)] = v
}

// Clone returns a deep copy that shares no storage with g.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([]T, len(g.cells))
	copy(cells, g.cells)
	return &Grid[T]{w: g.w, h: g.h, cells: cells}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid[T]) Equal(o *Grid[T]) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Each visits every cell in row-major order.
func (g *Grid[T]) Each(fn func(p Pos, v T)) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			fn(Pos{x, y}, g.cells[y*g.w+x])
		}
	}
}
