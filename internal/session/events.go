package session

import (
	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/powerup"
)

// Event is something that happened during a session command.
type Event interface {
	sessionEvent()
}

// Cause says why the board changed.
type Cause int

const (
	CauseMove    Cause = iota // A directional move
	CauseUndo                 // The undo command
	CausePowerUp              // A power-up effect
	CauseNewGame              // A fresh board
	CauseReset                // Board cleared on return to menu
)

func (c Cause) String() string {
	switch c {
	case CauseMove:
		return "move"
	case CauseUndo:
		return "undo"
	case CausePowerUp:
		return "powerup"
	case CauseNewGame:
		return "new game"
	case CauseReset:
		return "reset"
	default:
		return "unknown"
	}
}

// BoardChanged is emitted after any change to the cells.
type BoardChanged struct {
	Cause   Cause
	Outcome board.MoveOutcome // Set for CauseMove only
}

func (BoardChanged) sessionEvent() {}

// ScoreChanged is emitted when the score total differs from before the command.
type ScoreChanged struct {
	Score int
	Delta int
}

func (ScoreChanged) sessionEvent() {}

// HighScoreChanged is emitted when the score beats the stored high score.
type HighScoreChanged struct {
	HighScore int
}

func (HighScoreChanged) sessionEvent() {}

// WinReached is emitted the first time a game reaches the win value.
type WinReached struct {
	Score   int
	MaxTile int
}

func (WinReached) sessionEvent() {}

// GameOverReached is emitted when no move is left.
type GameOverReached struct {
	RunID   string
	Score   int
	MaxTile int
	Moves   int
	Won     bool // The win value was reached earlier in this run
}

func (GameOverReached) sessionEvent() {}

// StateChanged is emitted on every state transition.
type StateChanged struct {
	From State
	To   State
}

func (StateChanged) sessionEvent() {}

// PowerUpUsed is emitted after a successful activation.
type PowerUpUsed struct {
	Kind      powerup.Kind
	Remaining int
}

func (PowerUpUsed) sessionEvent() {}

// PowerUpDenied is emitted when an activation is refused while playing.
type PowerUpDenied struct {
	Kind powerup.Kind
}

func (PowerUpDenied) sessionEvent() {}

// MuteChanged is emitted when the audio preference flips.
type MuteChanged struct {
	Muted bool
}

func (MuteChanged) sessionEvent() {}
