package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/powerup"
)

// GameKeyMap defines the key bindings for the game screen.
type GameKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Undo     key.Binding
	PowerUps []key.Binding // Indexed like quickPowerUps
	Hammer   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding

	Pause    key.Binding
	Continue key.Binding
	NewGame  key.Binding
	Menu     key.Binding
	Scores   key.Binding
	Mute     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// quickPowerUps are the power-ups bound to the number keys.
var quickPowerUps = []powerup.Kind{
	powerup.DestroyLowest,
	powerup.PromoteHighest,
	powerup.Shuffle,
	powerup.UndoLastMove,
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Undo, k.PowerUps[0], k.Hammer, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		append([]key.Binding{k.Undo, k.Hammer}, k.PowerUps...),
		{k.Pause, k.Continue, k.NewGame, k.Menu},
		{k.Mute, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	powerUps := make([]key.Binding, len(quickPowerUps))
	for i, kind := range quickPowerUps {
		n := string(rune('1' + i))
		powerUps[i] = key.NewBinding(
			key.WithKeys(n),
			key.WithHelp(n, kind.String()),
		)
	}

	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "z"),
			key.WithHelp("u", "undo"),
		),
		PowerUps: powerUps,
		Hammer: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hammer"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "keep playing"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n", "r"),
			key.WithHelp("n", "new game"),
		),
		Menu: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// direction maps a key to a move direction.
func (k GameKeyMap) direction(msg tea.KeyMsg) (board.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return board.DirUp, true
	case key.Matches(msg, k.Down):
		return board.DirDown, true
	case key.Matches(msg, k.Left):
		return board.DirLeft, true
	case key.Matches(msg, k.Right):
		return board.DirRight, true
	}
	return 0, false
}

// quickPowerUp maps a number key to a power-up.
func (k GameKeyMap) quickPowerUp(msg tea.KeyMsg) (powerup.Kind, bool) {
	for i, b := range k.PowerUps {
		if key.Matches(msg, b) {
			return quickPowerUps[i], true
		}
	}
	return 0, false
}
