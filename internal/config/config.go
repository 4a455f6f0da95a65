// Package config provides YAML-based configuration loading for the
// Sokoban frontends.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Config contains all runtime configuration.
type Config struct {
	Levels   LevelsConfig   `yaml:"levels"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Effects  EffectsConfig  `yaml:"effects"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Pack       string `yaml:"pack"`
	Dir        string `yaml:"dir"`        // optional directory pack, registered under its base name
	Start      int    `yaml:"start"`      // 0-based level index
	Difficulty string `yaml:"difficulty"` // level filter, see DifficultyPreset
}

// GameplayConfig tunes how views react to engine state.
type GameplayConfig struct {
	AutoRestartOnStuck bool          `yaml:"auto_restart_on_stuck"`
	RestartDelay       time.Duration `yaml:"restart_delay"`
	RecordSolves       bool          `yaml:"record_solves"`
}

// EffectsConfig maps engine effects to terminal feedback.
type EffectsConfig struct {
	Bell   bool     `yaml:"bell"`
	BellOn []string `yaml:"bell_on"`
}

// StorageConfig locates persistent data.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	SaveDir string `yaml:"save_dir"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	if c.Levels.Pack == "" && c.Levels.Dir == "" {
		return fmt.Errorf("config: levels.pack or levels.dir must be set")
	}
	if c.Levels.Start < 0 {
		return fmt.Errorf("config: levels.start must not be negative, got %d", c.Levels.Start)
	}
	if _, err := ParseDifficulty(c.Levels.Difficulty); err != nil {
		return err
	}
	if c.Gameplay.RestartDelay < 0 {
		return fmt.Errorf("config: gameplay.restart_delay must not be negative")
	}
	for _, name := range c.Effects.BellOn {
		if _, ok := sokoban.ParseEffect(name); !ok {
			return fmt.Errorf("config: effects.bell_on: unknown effect %q", name)
		}
	}
	return nil
}

// BellFor reports whether effect e should ring the terminal bell.
func (c EffectsConfig) BellFor(e sokoban.Effect) bool {
	if !c.Bell {
		return false
	}
	for _, name := range c.BellOn {
		if name == e.String() {
			return true
		}
	}
	return false
}
