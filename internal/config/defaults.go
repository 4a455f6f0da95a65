package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sokoban.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration used when even the
// embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Levels: LevelsConfig{
			Pack:       "classic",
			Start:      0,
			Difficulty: "any",
		},
		Gameplay: GameplayConfig{
			AutoRestartOnStuck: true,
			RestartDelay:       1500 * time.Millisecond,
			RecordSolves:       true,
		},
		Effects: EffectsConfig{
			Bell:   false,
			BellOn: []string{"win", "stuck"},
		},
		Storage: StorageConfig{
			DBPath:  "~/.sokoban/sokoban.db",
			SaveDir: "~/.sokoban/saves",
		},
		Server: ServerConfig{
			Address:     "0.0.0.0:2222",
			HostKeyPath: ".ssh/sokoban_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
