package session

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/powerup"
)

// StartNewGame deals a fresh board, restores every power-up and enters
// Playing. Valid from any state.
func (s *Session) StartNewGame() []Event {
	s.board.Initialize()
	s.powerups.Reset()
	s.continued = false
	s.wonRun = false
	s.moves = 0
	s.runID = uuid.New().String()

	s.log.Debug("new game", "run", s.runID)
	s.emit(BoardChanged{Cause: CauseNewGame})
	s.emit(ScoreChanged{Score: 0})
	s.setState(Playing)
	return s.flush()
}

// ExecuteMove slides the board toward dir. Reports whether the board changed;
// outside Playing it does nothing.
func (s *Session) ExecuteMove(dir board.Direction) (bool, []Event) {
	if s.state != Playing {
		return false, nil
	}

	out := s.board.Move(dir)
	if !out.Changed {
		return false, nil
	}

	s.moves++
	s.emit(BoardChanged{Cause: CauseMove, Outcome: out})
	if out.ScoreGained > 0 {
		s.emit(ScoreChanged{Score: s.board.Score(), Delta: out.ScoreGained})
		s.checkHighScore()
	}
	s.checkEnd()
	return true, s.flush()
}

// Undo reverts the last move, restoring cells and score.
func (s *Session) Undo() (bool, []Event) {
	if s.state != Playing {
		return false, nil
	}

	before := s.board.Score()
	if !s.board.Undo() {
		return false, nil
	}

	s.emit(BoardChanged{Cause: CauseUndo})
	s.emitScoreDelta(before)
	return true, s.flush()
}

// ActivatePowerUp triggers an untargeted power-up.
func (s *Session) ActivatePowerUp(kind powerup.Kind) (bool, []Event) {
	return s.activate(kind, nil)
}

// ActivatePowerUpAt triggers a power-up aimed at pos.
func (s *Session) ActivatePowerUpAt(kind powerup.Kind, pos board.Pos) (bool, []Event) {
	return s.activate(kind, &pos)
}

func (s *Session) activate(kind powerup.Kind, target *board.Pos) (bool, []Event) {
	if s.state != Playing {
		return false, nil
	}

	before := s.board.Score()
	if !s.powerups.Activate(kind, s.board, s.now(), target) {
		s.emit(PowerUpDenied{Kind: kind})
		return false, s.flush()
	}

	remaining := 0
	if p, ok := s.powerups.Get(kind); ok {
		remaining = p.Remaining()
	}

	s.log.Debug("power-up used", "kind", kind, "remaining", remaining)
	s.emit(PowerUpUsed{Kind: kind, Remaining: remaining})
	s.emit(BoardChanged{Cause: CausePowerUp})
	s.emitScoreDelta(before)
	s.checkEnd()
	return true, s.flush()
}

// Pause moves Playing to Paused.
func (s *Session) Pause() (bool, []Event) {
	if s.state != Playing {
		return false, nil
	}
	s.setState(Paused)
	return true, s.flush()
}

// Resume moves Paused back to Playing.
func (s *Session) Resume() (bool, []Event) {
	if s.state != Paused {
		return false, nil
	}
	s.setState(Playing)
	return true, s.flush()
}

// ContinueAfterWin returns a won game to Playing. Later moves past the win
// value do not re-enter Won.
func (s *Session) ContinueAfterWin() (bool, []Event) {
	if s.state != Won {
		return false, nil
	}
	s.continued = true
	s.setState(Playing)
	s.checkEnd()
	return true, s.flush()
}

// ReturnToMenu abandons the current game and clears the board.
func (s *Session) ReturnToMenu() (bool, []Event) {
	if s.state == Menu {
		return false, nil
	}
	s.board.Clear()
	s.emit(BoardChanged{Cause: CauseReset})
	s.setState(Menu)
	return true, s.flush()
}

// SetMuted stores the audio preference.
func (s *Session) SetMuted(muted bool) []Event {
	if s.muted == muted {
		return nil
	}
	s.muted = muted
	if err := s.prefs.SaveMuted(muted); err != nil {
		s.log.Warn("cannot save mute flag", "error", err)
	}
	s.emit(MuteChanged{Muted: muted})
	return s.flush()
}

// ToggleMute flips the audio preference.
func (s *Session) ToggleMute() []Event {
	return s.SetMuted(!s.muted)
}

func (s *Session) emitScoreDelta(before int) {
	if after := s.board.Score(); after != before {
		s.emit(ScoreChanged{Score: after, Delta: after - before})
		s.checkHighScore()
	}
}

func (s *Session) checkHighScore() {
	score := s.board.Score()
	if score <= s.highScore {
		return
	}
	s.highScore = score
	if err := s.prefs.SaveHighScore(score); err != nil {
		s.log.Warn("cannot save high score", "error", err)
	}
	s.emit(HighScoreChanged{HighScore: score})
}

// checkEnd moves Playing to Won or GameOver. The win is reported once per
// run; after ContinueAfterWin only the terminal check applies.
func (s *Session) checkEnd() {
	if s.state != Playing {
		return
	}

	if s.board.HasWon() && !s.continued {
		s.wonRun = true
		s.emit(WinReached{Score: s.board.Score(), MaxTile: s.board.MaxTile()})
		s.setState(Won)
		return
	}

	if !s.board.CanMove() {
		s.emit(GameOverReached{
			RunID:   s.runID,
			Score:   s.board.Score(),
			MaxTile: s.board.MaxTile(),
			Moves:   s.moves,
			Won:     s.wonRun,
		})
		s.setState(GameOver)
	}
}
