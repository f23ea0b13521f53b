// Package board implements the 4x4 Fibonacci merge grid: tile spawning,
// directional moves, terminal and win detection, and undo history.
package board

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/fibo/internal/fibonacci"
)

// Size is the board dimension.
const Size = 4

// Defaults used when a Config field is left at its zero value.
const (
	DefaultSpawnOneProbability = 0.9
	DefaultUndoDepth           = 1
	DefaultWinValue            = 2584
	MaxUndoDepth               = 5
)

// ErrInvalidSnapshot is returned by Restore for snapshots holding
// non-Fibonacci values or a negative score.
var ErrInvalidSnapshot = errors.New("board: invalid snapshot")

// Grid holds tile values in [row][col] order. 0 marks an empty cell.
type Grid [Size][Size]int

// Pos is a cell coordinate.
type Pos struct {
	Row int
	Col int
}

// Valid reports whether the position lies on the board.
func (p Pos) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Tile is an occupied cell.
type Tile struct {
	Pos   Pos
	Value int
}

// Snapshot is the board's plain-data state, used for undo and restore.
type Snapshot struct {
	Cells Grid
	Score int
}

// Config controls spawning, undo depth and the win threshold.
type Config struct {
	Seed int64

	// SpawnOneProbability is the chance a spawned tile is 1 rather than 2.
	SpawnOneProbability float64

	// UndoDepth is how many moves can be undone in a row (1..MaxUndoDepth).
	UndoDepth int

	// WinValue is the tile value that wins the game.
	WinValue int
}

// Board is the game grid plus score. It is not safe for concurrent use.
type Board struct {
	cells   Grid
	score   int
	history []Snapshot
	rng     *rand.Rand
	cfg     Config
}

// New creates an empty board. Call Initialize to spawn the opening tiles.
func New(cfg Config) *Board {
	if cfg.SpawnOneProbability <= 0 || cfg.SpawnOneProbability > 1 {
		cfg.SpawnOneProbability = DefaultSpawnOneProbability
	}
	if cfg.UndoDepth <= 0 {
		cfg.UndoDepth = DefaultUndoDepth
	}
	if cfg.UndoDepth > MaxUndoDepth {
		cfg.UndoDepth = MaxUndoDepth
	}
	if cfg.WinValue <= 0 {
		cfg.WinValue = DefaultWinValue
	}

	return &Board{
		rng: rand.New(rand.NewSource(cfg.Seed)),
		cfg: cfg,
	}
}

// Config returns the effective configuration.
func (b *Board) Config() Config {
	return b.cfg
}

// Initialize clears the grid, resets the score and history, and spawns two tiles.
func (b *Board) Initialize() {
	b.Clear()
	b.Spawn()
	b.Spawn()
}

// Clear empties the grid and resets score and undo history.
func (b *Board) Clear() {
	b.cells = Grid{}
	b.score = 0
	b.history = b.history[:0]
}

// Spawn places a 1 or 2 on a random empty cell.
// Returns false when the grid is full.
func (b *Board) Spawn() (Pos, int, bool) {
	empty := b.EmptyPositions()
	if len(empty) == 0 {
		return Pos{}, 0, false
	}

	pos := empty[b.rng.Intn(len(empty))]

	value := 2
	if b.rng.Float64() < b.cfg.SpawnOneProbability {
		value = 1
	}

	b.cells[pos.Row][pos.Col] = value
	return pos, value, true
}

// Score returns the accumulated score.
func (b *Board) Score() int {
	return b.score
}

// SnapshotGrid returns a copy of the cell values.
func (b *Board) SnapshotGrid() Grid {
	return b.cells
}

// State returns the current cells and score.
func (b *Board) State() Snapshot {
	return Snapshot{Cells: b.cells, Score: b.score}
}

// Restore replaces cells and score and drops the undo history.
func (b *Board) Restore(s Snapshot) error {
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, s.Score)
	}
	for row := range Size {
		for col := range Size {
			v := s.Cells[row][col]
			if v != 0 && !fibonacci.IsFibonacci(v) {
				return fmt.Errorf("%w: value %d at (%d, %d)", ErrInvalidSnapshot, v, row, col)
			}
		}
	}

	b.cells = s.Cells
	b.score = s.Score
	b.history = b.history[:0]
	return nil
}

// TileValue returns the value at pos, or false if pos is off the board or empty.
func (b *Board) TileValue(pos Pos) (int, bool) {
	if !pos.Valid() {
		return 0, false
	}
	v := b.cells[pos.Row][pos.Col]
	return v, v != 0
}

// SetTileValue overwrites the value at pos. The value must be a Fibonacci term.
func (b *Board) SetTileValue(pos Pos, value int) bool {
	if !pos.Valid() || !fibonacci.IsFibonacci(value) {
		return false
	}
	b.cells[pos.Row][pos.Col] = value
	return true
}

// ClearTile empties the cell at pos. Returns false if there was nothing to clear.
func (b *Board) ClearTile(pos Pos) bool {
	if _, ok := b.TileValue(pos); !ok {
		return false
	}
	b.cells[pos.Row][pos.Col] = 0
	return true
}

// PlaceTile puts a value on an empty cell.
func (b *Board) PlaceTile(pos Pos, value int) bool {
	if !pos.Valid() || b.cells[pos.Row][pos.Col] != 0 {
		return false
	}
	return b.SetTileValue(pos, value)
}

// OccupiedPositions lists occupied cells in row-major order.
func (b *Board) OccupiedPositions() []Tile {
	var tiles []Tile
	for row := range Size {
		for col := range Size {
			if v := b.cells[row][col]; v != 0 {
				tiles = append(tiles, Tile{Pos: Pos{Row: row, Col: col}, Value: v})
			}
		}
	}
	return tiles
}

// EmptyPositions lists empty cells in row-major order.
func (b *Board) EmptyPositions() []Pos {
	var cells []Pos
	for row := range Size {
		for col := range Size {
			if b.cells[row][col] == 0 {
				cells = append(cells, Pos{Row: row, Col: col})
			}
		}
	}
	return cells
}

// MaxTile returns the highest value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for row := range Size {
		for col := range Size {
			maxVal = max(maxVal, b.cells[row][col])
		}
	}
	return maxVal
}

// HasWon reports whether any tile has reached the win value.
func (b *Board) HasWon() bool {
	return b.MaxTile() >= b.cfg.WinValue
}

// CanMove reports whether any move is possible: an empty cell exists or two
// orthogonal neighbours may merge.
func (b *Board) CanMove() bool {
	for row := range Size {
		for col := range Size {
			v := b.cells[row][col]
			if v == 0 {
				return true
			}
			if col < Size-1 && fibonacci.AreConsecutive(v, b.cells[row][col+1]) {
				return true
			}
			if row < Size-1 && fibonacci.AreConsecutive(v, b.cells[row+1][col]) {
				return true
			}
		}
	}
	return false
}
