package board

import "github.com/vovakirdan/fibo/internal/fibonacci"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all four directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// TileMove describes where a tile travelled during a move.
// Both tiles of a merge report the same destination with Merged set.
type TileMove struct {
	From   Pos
	To     Pos
	Value  int // Value before the move
	Merged bool
}

// Merge records one merge produced by a move.
type Merge struct {
	Pos    Pos
	Value  int // Resulting value
	Inputs [2]int
}

// Spawned is the tile added after a successful move.
type Spawned struct {
	Pos   Pos
	Value int
}

// MoveOutcome reports what a Move did.
type MoveOutcome struct {
	Changed     bool
	ScoreGained int
	Merges      []Merge
	Moves       []TileMove
	Spawned     *Spawned
	Won         bool
	GameOver    bool
}

// line returns the four cells of the i-th line for dir, ordered from the
// compaction target outward.
func line(dir Direction, i int) [Size]Pos {
	var cells [Size]Pos
	for k := range Size {
		switch dir {
		case DirLeft:
			cells[k] = Pos{Row: i, Col: k}
		case DirRight:
			cells[k] = Pos{Row: i, Col: Size - 1 - k}
		case DirUp:
			cells[k] = Pos{Row: k, Col: i}
		case DirDown:
			cells[k] = Pos{Row: Size - 1 - k, Col: i}
		}
	}
	return cells
}

// slideLine compacts and merges one line toward index 0.
// src[k] is the index in row each tile came from (-1 for empty output slots),
// which lets the caller map tiles back to board positions.
func slideLine(row [Size]int) (result [Size]int, src [Size][2]int, score int, merges int) {
	var merged [Size]bool
	writePos := 0

	for i := range Size {
		src[i] = [2]int{-1, -1}
	}

	for i := range Size {
		if row[i] == 0 {
			continue
		}

		if writePos > 0 && !merged[writePos-1] {
			if sum, ok := fibonacci.MergeResult(result[writePos-1], row[i]); ok {
				result[writePos-1] = sum
				merged[writePos-1] = true
				src[writePos-1][1] = i
				score += sum
				merges++
				continue
			}
		}

		result[writePos] = row[i]
		src[writePos][0] = i
		writePos++
	}

	return result, src, score, merges
}

// Move slides every line toward dir, merging consecutive Fibonacci pairs once
// per move. On change it records undo history, spawns a tile and evaluates
// win and terminal conditions. An unchanged move leaves the board untouched.
func (b *Board) Move(dir Direction) MoveOutcome {
	var out MoveOutcome

	switch dir {
	case DirUp, DirDown, DirLeft, DirRight:
	default:
		return out
	}

	before := b.State()
	next := b.cells

	for i := range Size {
		cells := line(dir, i)

		var row [Size]int
		for k, p := range cells {
			row[k] = b.cells[p.Row][p.Col]
		}

		result, src, score, merges := slideLine(row)

		lineChanged := merges > 0
		for k, p := range cells {
			next[p.Row][p.Col] = result[k]

			for _, from := range src[k] {
				if from < 0 {
					continue
				}
				if from != k {
					lineChanged = true
				}
				out.Moves = append(out.Moves, TileMove{
					From:   cells[from],
					To:     p,
					Value:  row[from],
					Merged: src[k][1] >= 0,
				})
			}

			if src[k][1] >= 0 {
				out.Merges = append(out.Merges, Merge{
					Pos:    p,
					Value:  result[k],
					Inputs: [2]int{row[src[k][0]], row[src[k][1]]},
				})
			}
		}

		if lineChanged {
			out.Changed = true
		}
		out.ScoreGained += score
	}

	if !out.Changed {
		return MoveOutcome{}
	}

	b.cells = next
	b.score += out.ScoreGained
	b.pushHistory(before)

	if pos, value, ok := b.Spawn(); ok {
		out.Spawned = &Spawned{Pos: pos, Value: value}
	}

	out.Won = b.HasWon()
	if !out.Won {
		out.GameOver = !b.CanMove()
	}

	return out
}
