// Package session coordinates one game: it owns the board and power-ups,
// tracks the game state and high score, and notifies observers.
package session

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/powerup"
)

// State is the session's game state.
type State int

const (
	Menu State = iota
	Playing
	Won
	GameOver
	Paused
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case GameOver:
		return "game over"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Config configures a Session. Zero values fall back to defaults.
type Config struct {
	Board    board.Config
	PowerUps powerup.Config

	Preferences Preferences
	Logger      *log.Logger
	Clock       func() time.Time
}

type subscriber struct {
	id int
	fn func(Event)
}

// Session is a single player's game. It is not safe for concurrent use.
type Session struct {
	board    *board.Board
	powerups *powerup.Catalog
	prefs    Preferences
	log      *log.Logger
	now      func() time.Time

	state     State
	continued bool // Player chose to keep going after winning
	wonRun    bool
	highScore int
	muted     bool
	runID     string
	moves     int

	subs    []subscriber
	nextSub int
	pending []Event
}

// New creates a session in the Menu state, loading the high score and mute
// flag from cfg.Preferences.
func New(cfg Config) *Session {
	if cfg.PowerUps == nil {
		cfg.PowerUps = powerup.DefaultConfig()
	}
	if cfg.Preferences == nil {
		cfg.Preferences = NewMemoryPreferences()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	s := &Session{
		board:    board.New(cfg.Board),
		powerups: powerup.New(cfg.PowerUps, cfg.Board.Seed+1),
		prefs:    cfg.Preferences,
		log:      cfg.Logger,
		now:      cfg.Clock,
		state:    Menu,
	}

	if hs, err := s.prefs.LoadHighScore(); err != nil {
		s.log.Warn("cannot load high score", "error", err)
	} else {
		s.highScore = max(hs, 0)
	}
	if muted, err := s.prefs.LoadMuted(); err != nil {
		s.log.Warn("cannot load mute flag", "error", err)
	} else {
		s.muted = muted
	}

	return s
}

// Subscribe registers fn for every event. Observers must not issue commands
// from inside fn. The returned function removes the registration.
func (s *Session) Subscribe(fn func(Event)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool {
			return sub.id == id
		})
	}
}

func (s *Session) emit(ev Event) {
	s.pending = append(s.pending, ev)
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(ev)
	}
}

// flush returns the events emitted since the last flush.
func (s *Session) flush() []Event {
	out := s.pending
	s.pending = nil
	return out
}

func (s *Session) setState(to State) {
	if s.state == to {
		return
	}
	from := s.state
	s.state = to
	s.log.Debug("state change", "from", from, "to", to, "run", s.runID)
	s.emit(StateChanged{From: from, To: to})
}

// CellValue returns the value at (row, col), or false if the cell is empty
// or off the board.
func (s *Session) CellValue(row, col int) (int, bool) {
	return s.board.TileValue(board.Pos{Row: row, Col: col})
}

// Grid returns a copy of the cells.
func (s *Session) Grid() board.Grid { return s.board.SnapshotGrid() }

func (s *Session) Score() int     { return s.board.Score() }
func (s *Session) HighScore() int { return s.highScore }
func (s *Session) State() State   { return s.state }
func (s *Session) Muted() bool    { return s.muted }
func (s *Session) RunID() string  { return s.runID }
func (s *Session) MoveCount() int { return s.moves }
func (s *Session) MaxTile() int   { return s.board.MaxTile() }
func (s *Session) CanUndo() bool  { return s.board.CanUndo() }

// UndoAvailable returns how many moves can be undone.
func (s *Session) UndoAvailable() int { return s.board.UndoAvailable() }

// WonRun reports whether the current run has reached the win value.
func (s *Session) WonRun() bool { return s.wonRun }

// PowerUps returns the current power-up statuses.
func (s *Session) PowerUps() []powerup.Status {
	return s.powerups.Statuses(s.now())
}
