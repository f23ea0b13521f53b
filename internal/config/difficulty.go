package config

import (
	"fmt"

	"github.com/vovakirdan/fibo/internal/board"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Spawn chances of a 1 used by the presets.
const (
	easySpawnOne = 0.9
	hardSpawnOne = 0.8
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalidConfig, name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.SpawnOneProbability = easySpawnOne
		cfg.Board.UndoDepth = board.MaxUndoDepth
		for key, p := range cfg.PowerUps {
			if p.MaxUses > 0 {
				p.MaxUses += 2
			}
			cfg.PowerUps[key] = p
		}
	case DifficultyHard:
		cfg.Board.SpawnOneProbability = hardSpawnOne
		cfg.Board.UndoDepth = 1
		for key, p := range cfg.PowerUps {
			if p.MaxUses > 0 {
				p.MaxUses = max(p.MaxUses-2, 1)
			}
			cfg.PowerUps[key] = p
		}
	}
}
