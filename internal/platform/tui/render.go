package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/fibonacci"
)

const (
	cellWidth  = 7
	cellHeight = 3
)

// tilePalette holds background colours by Fibonacci index; larger tiles
// reuse the last colour.
var tilePalette = []lipgloss.Color{
	"252", // 1
	"252", // 1
	"229", // 2
	"222", // 3
	"215", // 5
	"209", // 8
	"203", // 13
	"198", // 21
	"170", // 34
	"135", // 55
	"99",  // 89
	"63",  // 144
	"33",  // 233
	"39",  // 377
	"44",  // 610
	"49",  // 987
	"84",  // 1597
	"226", // 2584
	"196",
}

var (
	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(cellHeight).
			Align(lipgloss.Center, lipgloss.Center).
			MarginRight(1)

	emptyCellStyle = cellStyle.Background(lipgloss.Color("237"))

	cursorCellStyle = cellStyle.
			Background(lipgloss.Color("160")).
			Foreground(lipgloss.Color("231")).
			Bold(true)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0, 0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	accentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

// tileStyle returns the style for a tile value.
func tileStyle(value int) lipgloss.Style {
	idx, ok := fibonacci.IndexOf(value)
	if !ok {
		return emptyCellStyle
	}
	idx = min(idx, len(tilePalette)-1)

	fg := lipgloss.Color("234")
	if idx >= 10 {
		fg = lipgloss.Color("231")
	}
	return cellStyle.Background(tilePalette[idx]).Foreground(fg).Bold(true)
}

// formatTile shortens values that do not fit a cell.
func formatTile(value int) string {
	if value < 100000 {
		return strconv.Itoa(value)
	}
	units := []string{"k", "M", "G", "T", "P", "E"}
	for _, u := range units {
		value /= 1000
		if value < 1000 {
			return fmt.Sprintf("%d%s", value, u)
		}
	}
	return "∞"
}

// renderBoard draws the grid. cursor, if set, highlights one cell.
func renderBoard(g board.Grid, cursor *board.Pos) string {
	rows := make([]string, 0, board.Size)
	for row := range board.Size {
		cells := make([]string, 0, board.Size)
		for col := range board.Size {
			v := g[row][col]

			style := emptyCellStyle
			text := ""
			if v != 0 {
				style = tileStyle(v)
				text = formatTile(v)
			}
			if cursor != nil && *cursor == (board.Pos{Row: row, Col: col}) {
				style = cursorCellStyle
				if text == "" {
					text = "·"
				}
			}

			cells = append(cells, style.Render(text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = centerText(line, width)
	}
	return strings.Join(lines, "\n")
}
