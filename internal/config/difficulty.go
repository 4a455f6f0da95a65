package config

import "fmt"

// DifficultyPreset filters levels by their "difficulty" metadata.
type DifficultyPreset string

const (
	DifficultyAny    DifficultyPreset = "any"
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty parses a preset name. The empty string means any.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyAny:
		return DifficultyAny, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return DifficultyAny, fmt.Errorf("config: unknown difficulty %q (want any, easy, medium or hard)", s)
}

// Matches reports whether a level with the given metadata passes the
// filter. Levels without a difficulty only pass "any".
func (d DifficultyPreset) Matches(metadata map[string]string) bool {
	if d == DifficultyAny || d == "" {
		return true
	}
	return metadata["difficulty"] == string(d)
}
