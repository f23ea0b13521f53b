// Package tui provides the Bubble Tea front end for fibo: the game screen,
// the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cooldownRefresh is how often the power-up bar is redrawn.
const cooldownRefresh = time.Second

// TickMsg is sent to refresh cooldown timers on screen.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
