package core

// RuntimeConfig contains per-session settings passed from the platform
// to the board renderer.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Player  string // Name recorded with solves; SSH user or $USER
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Player:  "player",
	}
}
