package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (use easy, normal or hard)", ErrInvalidConfig, s)
	}
}

// Spawn4ProbForPreset returns the chance of a spawned 4 for a preset.
// Fours fill the board faster, so a higher chance is harder.
func Spawn4ProbForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return 0.10
	}
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	cfg.Board.Spawn4Prob = Spawn4ProbForPreset(preset)
}
