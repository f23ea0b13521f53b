// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/fibonacci"
	"github.com/vovakirdan/fibo/internal/powerup"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// GameConfig contains all configuration for a game.
type GameConfig struct {
	Board    BoardConfig              `yaml:"board"`
	PowerUps map[string]PowerUpConfig `yaml:"powerups"` // Keyed by powerup.Kind.Key()
}

// BoardConfig defines board rules.
type BoardConfig struct {
	SpawnOneProbability float64 `yaml:"spawn_one_probability"`
	UndoDepth           int     `yaml:"undo_depth"`
	WinValue            int     `yaml:"win_value"`
}

// PowerUpConfig defines uses and cooldown for one power-up.
type PowerUpConfig struct {
	MaxUses         int     `yaml:"max_uses"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
}

// Validate checks value ranges.
func (c GameConfig) Validate() error {
	b := c.Board
	if b.SpawnOneProbability <= 0 || b.SpawnOneProbability > 1 {
		return fmt.Errorf("%w: spawn_one_probability %v not in (0, 1]", ErrInvalidConfig, b.SpawnOneProbability)
	}
	if b.UndoDepth < 1 || b.UndoDepth > board.MaxUndoDepth {
		return fmt.Errorf("%w: undo_depth %d not in [1, %d]", ErrInvalidConfig, b.UndoDepth, board.MaxUndoDepth)
	}
	if !fibonacci.IsFibonacci(b.WinValue) || b.WinValue < 3 {
		return fmt.Errorf("%w: win_value %d is not a Fibonacci number above 2", ErrInvalidConfig, b.WinValue)
	}

	for key, p := range c.PowerUps {
		if _, ok := powerup.ParseKind(key); !ok {
			return fmt.Errorf("%w: unknown power-up %q", ErrInvalidConfig, key)
		}
		if p.MaxUses < 0 {
			return fmt.Errorf("%w: %s.max_uses is negative", ErrInvalidConfig, key)
		}
		if p.CooldownSeconds < 0 {
			return fmt.Errorf("%w: %s.cooldown_seconds is negative", ErrInvalidConfig, key)
		}
	}

	return nil
}

// BoardSettings converts the board section for board.New.
func (c GameConfig) BoardSettings(seed int64) board.Config {
	return board.Config{
		Seed:                seed,
		SpawnOneProbability: c.Board.SpawnOneProbability,
		UndoDepth:           c.Board.UndoDepth,
		WinValue:            c.Board.WinValue,
	}
}

// PowerUpSettings converts the powerups section for powerup.New.
// Unknown keys are skipped; Validate reports them.
func (c GameConfig) PowerUpSettings() powerup.Config {
	out := make(powerup.Config, len(c.PowerUps))
	for key, p := range c.PowerUps {
		kind, ok := powerup.ParseKind(key)
		if !ok {
			continue
		}
		out[kind] = powerup.Limits{
			MaxUses:  p.MaxUses,
			Cooldown: time.Duration(p.CooldownSeconds * float64(time.Second)),
		}
	}
	return out
}
