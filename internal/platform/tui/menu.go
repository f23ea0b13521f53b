package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fibo/internal/fibonacci"
)

// menuView renders the title screen shown in the Menu state.
func (m Model) menuView() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  F I B O  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Slide tiles. Merge neighbours in the sequence.", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(m.ladder(), m.width))
	b.WriteString("\n\n")

	best := fmt.Sprintf("Best %d   Difficulty %s", m.session.HighScore(), m.opts.Difficulty)
	b.WriteString(centerText(accentStyle.Render(best), m.width))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(centerText(m.message, m.width))
		b.WriteString("\n\n")
	}

	controls := "N/Enter: New game  |  Tab: Scores  |  M: Mute  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// ladder draws the tiles leading up to the win value.
func (m Model) ladder() string {
	terms := slices.Compact(fibonacci.UpTo(m.opts.Game.Board.WinValue))

	tiles := make([]string, 0, len(terms))
	for _, v := range terms {
		tiles = append(tiles, tileStyle(v).
			Width(len(strconv.Itoa(v))+2).
			Height(1).
			Render(formatTile(v)))
	}

	// Wrap into rows that fit the window
	var rows []string
	var row []string
	rowWidth := 0
	for _, t := range tiles {
		w := lipgloss.Width(t)
		if len(row) > 0 && m.width > 0 && rowWidth+w > m.width-4 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, t)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
