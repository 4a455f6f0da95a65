package sokoban

import "errors"

var (
	// ErrOutOfBounds is returned by grid access outside [0,W)x[0,H).
	// The move resolver recovers it as a blocked move.
	ErrOutOfBounds = errors.New("sokoban: position out of bounds")

	// ErrMalformedLevel reports inconsistent dimensions, unknown tokens or
	// an impossible entity layout in level data.
	ErrMalformedLevel = errors.New("sokoban: malformed level")

	// ErrInvalidLevel reports a level index outside the session range.
	ErrInvalidLevel = errors.New("sokoban: invalid level")

	// ErrAtBoundary is returned by Next and Previous at either end of the session.
	ErrAtBoundary = errors.New("sokoban: no level in that direction")

	// ErrSnapshotCorrupt reports structurally invalid saved state.
	ErrSnapshotCorrupt = errors.New("sokoban: snapshot corrupt")
)
