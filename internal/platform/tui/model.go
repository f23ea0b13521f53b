package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/config"
	"github.com/vovakirdan/fibo/internal/powerup"
	"github.com/vovakirdan/fibo/internal/session"
	"github.com/vovakirdan/fibo/internal/storage"
)

// Options configures a game model.
type Options struct {
	Game       config.GameConfig
	Difficulty string
	Seed       int64 // 0 picks a time-based seed

	// Store records finished runs and preferences. Nil keeps everything
	// in memory.
	Store  *storage.Store
	Logger *log.Logger

	Width  int
	Height int
}

// Model is the Bubble Tea model wrapping one game session.
type Model struct {
	session *session.Session
	store   *storage.Store
	log     *log.Logger
	opts    Options

	keys GameKeyMap
	help help.Model

	width  int
	height int

	targeting  bool // A targeted power-up is waiting for a cell
	targetKind powerup.Kind
	cursor     board.Pos
	message    string
	savedRun   string // ID of the last run written to the store

	scores   *ScoreboardModel // Open scoreboard, if any
	quitting bool
}

// NewModel creates a model sitting in the menu.
func NewModel(opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = string(config.DifficultyNormal)
	}

	var prefs session.Preferences = session.NewMemoryPreferences()
	if opts.Store != nil {
		prefs = opts.Store
	}

	s := session.New(session.Config{
		Board:       opts.Game.BoardSettings(opts.Seed),
		PowerUps:    opts.Game.PowerUpSettings(),
		Preferences: prefs,
		Logger:      opts.Logger,
	})

	h := help.New()
	h.ShowAll = false

	return Model{
		session: s,
		store:   opts.Store,
		log:     opts.Logger,
		opts:    opts,
		keys:    DefaultGameKeyMap(),
		help:    h,
		width:   opts.Width,
		height:  opts.Height,
	}
}

// Session exposes the underlying game session.
func (m Model) Session() *session.Session {
	return m.session
}

// Init starts the cooldown refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(cooldownRefresh)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scores != nil {
		return m.updateScores(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, tickCmd(cooldownRefresh)
	}

	return m, nil
}

// updateScores forwards messages to the open scoreboard.
func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.help.Width = wsm.Width
	}
	if _, ok := msg.(TickMsg); ok {
		return m, tickCmd(cooldownRefresh)
	}

	next, cmd := m.scores.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok || sb.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if sb.IsGoingBack() {
		m.scores = nil
		return m, nil
	}
	m.scores = &sb
	return m, cmd
}

// handleKey processes keyboard input for the current state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.abandonRun()
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if key.Matches(msg, m.keys.Mute) {
		m.apply(m.session.ToggleMute())
		return m, nil
	}

	if m.targeting {
		return m.handleTargeting(msg)
	}

	switch m.session.State() {
	case session.Menu:
		switch {
		case key.Matches(msg, m.keys.NewGame), key.Matches(msg, m.keys.Confirm):
			m.startGame()
		case key.Matches(msg, m.keys.Scores):
			sb := NewScoreboardModel(m.store, m.width, m.height)
			sb.embedded = true
			m.scores = &sb
		}

	case session.Playing:
		m.handlePlaying(msg)

	case session.Paused:
		if key.Matches(msg, m.keys.Pause) || key.Matches(msg, m.keys.Confirm) {
			_, events := m.session.Resume()
			m.apply(events)
		} else if key.Matches(msg, m.keys.Menu) {
			m.returnToMenu()
		}

	case session.Won:
		switch {
		case key.Matches(msg, m.keys.Continue), key.Matches(msg, m.keys.Confirm):
			_, events := m.session.ContinueAfterWin()
			m.apply(events)
		case key.Matches(msg, m.keys.NewGame):
			m.abandonRun()
			m.startGame()
		case key.Matches(msg, m.keys.Menu):
			m.returnToMenu()
		}

	case session.GameOver:
		switch {
		case key.Matches(msg, m.keys.NewGame), key.Matches(msg, m.keys.Confirm):
			m.startGame()
		case key.Matches(msg, m.keys.Menu), key.Matches(msg, m.keys.Cancel):
			m.returnToMenu()
		}
	}

	return m, nil
}

// handlePlaying maps keys to session commands while a game runs.
func (m *Model) handlePlaying(msg tea.KeyMsg) {
	if dir, ok := m.keys.direction(msg); ok {
		if moved, events := m.session.ExecuteMove(dir); moved {
			m.message = ""
			m.apply(events)
		}
		return
	}
	if kind, ok := m.keys.quickPowerUp(msg); ok {
		m.usePowerUp(kind)
		return
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		if ok, events := m.session.Undo(); ok {
			m.message = "Move undone"
			m.apply(events)
		} else {
			m.message = "Nothing to undo"
		}
	case key.Matches(msg, m.keys.Hammer):
		m.usePowerUp(powerup.Hammer)
	case key.Matches(msg, m.keys.Pause):
		_, events := m.session.Pause()
		m.apply(events)
	case key.Matches(msg, m.keys.NewGame):
		m.abandonRun()
		m.startGame()
	case key.Matches(msg, m.keys.Menu):
		m.returnToMenu()
	}
}

// usePowerUp fires kind, or starts cell selection when it needs a target.
func (m *Model) usePowerUp(kind powerup.Kind) {
	if kind.Targeted() {
		m.beginTargeting(kind)
		return
	}
	_, events := m.session.ActivatePowerUp(kind)
	m.apply(events)
}

// beginTargeting puts the cursor on the first tile.
func (m *Model) beginTargeting(kind powerup.Kind) {
	for _, st := range m.session.PowerUps() {
		if st.Kind == kind && !st.Ready {
			m.message = deniedMessage(st)
			return
		}
	}

	m.targeting = true
	m.targetKind = kind
	m.cursor = board.Pos{}
	grid := m.session.Grid()
	for row := range board.Size {
		for col := range board.Size {
			if grid[row][col] != 0 {
				m.cursor = board.Pos{Row: row, Col: col}
				m.message = "Pick a tile to smash"
				return
			}
		}
	}
	m.message = "Pick a tile to smash"
}

// handleTargeting moves the cursor and fires the pending power-up.
func (m Model) handleTargeting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if dir, ok := m.keys.direction(msg); ok {
		m.cursor = moveCursor(m.cursor, dir)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Hammer):
		m.targeting = false
		m.message = ""
		_, events := m.session.ActivatePowerUpAt(m.targetKind, m.cursor)
		m.apply(events)
	case key.Matches(msg, m.keys.Cancel):
		m.targeting = false
		m.message = ""
	}
	return m, nil
}

// moveCursor steps the cursor one cell, clamped to the board.
func moveCursor(p board.Pos, dir board.Direction) board.Pos {
	switch dir {
	case board.DirUp:
		p.Row = max(p.Row-1, 0)
	case board.DirDown:
		p.Row = min(p.Row+1, board.Size-1)
	case board.DirLeft:
		p.Col = max(p.Col-1, 0)
	case board.DirRight:
		p.Col = min(p.Col+1, board.Size-1)
	}
	return p
}

func (m *Model) startGame() {
	m.targeting = false
	m.message = ""
	m.apply(m.session.StartNewGame())
}

func (m *Model) returnToMenu() {
	m.abandonRun()
	m.targeting = false
	m.message = ""
	_, events := m.session.ReturnToMenu()
	m.apply(events)
}

// abandonRun records a run that is left before it ends.
func (m *Model) abandonRun() {
	s := m.session
	switch s.State() {
	case session.Playing, session.Paused, session.Won:
	default:
		return
	}
	if s.MoveCount() == 0 {
		return
	}
	m.saveRun(storage.Run{
		ID:      s.RunID(),
		Score:   s.Score(),
		MaxTile: s.MaxTile(),
		Moves:   s.MoveCount(),
		Won:     s.WonRun(),
	})
}

// apply reacts to the events returned by a command.
func (m *Model) apply(events []session.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case session.WinReached:
			m.message = fmt.Sprintf("You reached %d!", ev.MaxTile)
		case session.GameOverReached:
			m.saveRun(storage.Run{
				ID:      ev.RunID,
				Score:   ev.Score,
				MaxTile: ev.MaxTile,
				Moves:   ev.Moves,
				Won:     ev.Won,
			})
		case session.HighScoreChanged:
			m.message = "New high score!"
		case session.PowerUpUsed:
			m.message = fmt.Sprintf("%s used (%d left)", ev.Kind, ev.Remaining)
		case session.PowerUpDenied:
			for _, st := range m.session.PowerUps() {
				if st.Kind == ev.Kind {
					m.message = deniedMessage(st)
				}
			}
		case session.MuteChanged:
			if ev.Muted {
				m.message = "Sound off"
			} else {
				m.message = "Sound on"
			}
		case session.StateChanged:
			m.log.Debug("state changed", "from", ev.From, "to", ev.To)
		}
	}
}

// saveRun writes a run to the store once.
func (m *Model) saveRun(r storage.Run) {
	if m.store == nil || r.ID == "" || r.ID == m.savedRun {
		return
	}
	r.Difficulty = m.opts.Difficulty
	if _, err := m.store.SaveRun(r); err != nil {
		m.log.Warn("cannot save run", "run", r.ID, "error", err)
		return
	}
	m.savedRun = r.ID
}

func deniedMessage(st powerup.Status) string {
	switch {
	case st.MaxUses == 0:
		return fmt.Sprintf("%s is disabled", st.Kind)
	case st.Remaining == 0:
		return fmt.Sprintf("%s: no uses left", st.Kind)
	case st.CooldownLeft > 0:
		return fmt.Sprintf("%s: ready in %ds", st.Kind, cooldownSeconds(st.CooldownLeft))
	default:
		return fmt.Sprintf("%s: nothing to do", st.Kind)
	}
}

func cooldownSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}
	if m.session.State() == session.Menu {
		return m.menuView()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("F I B O"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.hud(), m.width))
	b.WriteString("\n\n")

	var cursor *board.Pos
	if m.targeting {
		cursor = &m.cursor
	}
	b.WriteString(centerBlock(renderBoard(m.session.Grid(), cursor), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.powerUpBar(), m.width))
	b.WriteString("\n\n")

	if banner := m.banner(); banner != "" {
		b.WriteString(centerText(accentStyle.Render(banner), m.width))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(centerText(m.message, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// hud shows score, best and moves.
func (m Model) hud() string {
	s := m.session
	sound := "♪"
	if s.Muted() {
		sound = "♪ off"
	}
	return fmt.Sprintf("Score %d   Best %d   Moves %d   Undo %d   %s   %s",
		s.Score(), s.HighScore(), s.MoveCount(), s.UndoAvailable(), m.opts.Difficulty, sound)
}

// powerUpBar lists every power-up with its key and remaining uses.
func (m Model) powerUpBar() string {
	keys := make(map[powerup.Kind]string, len(quickPowerUps)+1)
	for i, kind := range quickPowerUps {
		keys[kind] = m.keys.PowerUps[i].Help().Key
	}
	keys[powerup.Hammer] = m.keys.Hammer.Help().Key

	parts := make([]string, 0, len(keys))
	for _, st := range m.session.PowerUps() {
		if st.MaxUses == 0 {
			continue
		}
		label := fmt.Sprintf("[%s] %s %d/%d", keys[st.Kind], st.Kind, st.Remaining, st.MaxUses)
		switch {
		case st.Remaining == 0:
			label = dimStyle.Render(label)
		case st.CooldownLeft > 0:
			label = dimStyle.Render(fmt.Sprintf("%s %ds", label, cooldownSeconds(st.CooldownLeft)))
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// banner describes states that wait for the player.
func (m Model) banner() string {
	switch m.session.State() {
	case session.Paused:
		return "PAUSED - p to resume, b for menu"
	case session.Won:
		return "YOU WIN! c to keep playing, n for a new game"
	case session.GameOver:
		return fmt.Sprintf("GAME OVER - final score %d. n to play again", m.session.Score())
	}
	return ""
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
