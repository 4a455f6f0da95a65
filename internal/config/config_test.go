package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults drifted from DefaultConfig:\n got %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPathKeepsMissingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("levels:\n  start: 3\ngameplay:\n  restart_delay: 2s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Levels.Start != 3 {
		t.Errorf("start = %d, want 3", cfg.Levels.Start)
	}
	if cfg.Gameplay.RestartDelay != 2*time.Second {
		t.Errorf("restart delay = %v, want 2s", cfg.Gameplay.RestartDelay)
	}
	if cfg.Levels.Pack != "classic" {
		t.Errorf("pack = %q, want default classic", cfg.Levels.Pack)
	}
	if !cfg.Gameplay.AutoRestartOnStuck {
		t.Error("auto restart default lost")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".sokoban", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("levels: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("effects:\n  bell_on: [explode]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error for unknown effect")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"dir without pack", func(c *Config) { c.Levels.Pack = ""; c.Levels.Dir = "levels" }, false},
		{"no source", func(c *Config) { c.Levels.Pack = "" }, true},
		{"negative start", func(c *Config) { c.Levels.Start = -1 }, true},
		{"bad difficulty", func(c *Config) { c.Levels.Difficulty = "nightmare" }, true},
		{"negative delay", func(c *Config) { c.Gameplay.RestartDelay = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBellFor(t *testing.T) {
	e := EffectsConfig{Bell: true, BellOn: []string{"win"}}
	if !e.BellFor(sokoban.EffectWin) {
		t.Error("win should ring")
	}
	if e.BellFor(sokoban.EffectMove) {
		t.Error("move should not ring")
	}
	e.Bell = false
	if e.BellFor(sokoban.EffectWin) {
		t.Error("bell disabled")
	}
}

func TestDifficulty(t *testing.T) {
	d, err := ParseDifficulty("hard")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Matches(map[string]string{"difficulty": "hard"}) {
		t.Error("hard should match hard")
	}
	if d.Matches(map[string]string{"difficulty": "easy"}) || d.Matches(nil) {
		t.Error("hard should not match easy or untagged levels")
	}
	anyPreset, _ := ParseDifficulty("")
	if !anyPreset.Matches(nil) {
		t.Error("any should match untagged levels")
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("expected error")
	}
}
