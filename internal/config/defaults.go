package config

import (
	_ "embed"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/powerup"
)

//go:embed defaults/fibo.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() GameConfig {
	cfg := GameConfig{
		Board: BoardConfig{
			SpawnOneProbability: board.DefaultSpawnOneProbability,
			UndoDepth:           board.DefaultUndoDepth,
			WinValue:            board.DefaultWinValue,
		},
		PowerUps: make(map[string]PowerUpConfig, len(powerup.Kinds)),
	}

	for _, k := range powerup.Kinds {
		cfg.PowerUps[k.Key()] = PowerUpConfig{
			MaxUses:         powerup.DefaultMaxUses,
			CooldownSeconds: powerup.DefaultCooldown.Seconds(),
		}
	}

	return cfg
}
