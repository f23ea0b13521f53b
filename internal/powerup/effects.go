package powerup

import (
	"math/rand"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/fibonacci"
)

// apply runs the effect for kind. Returns false, leaving g untouched, when
// the effect has nothing to act on.
func apply(kind Kind, g Grid, rng *rand.Rand, target *board.Pos) bool {
	switch kind {
	case DestroyLowest:
		return destroyLowest(g, rng)
	case PromoteHighest:
		return promoteHighest(g)
	case Shuffle:
		return shuffle(g, rng)
	case UndoLastMove:
		return g.Undo()
	case Hammer:
		if target == nil {
			return false
		}
		return g.ClearTile(*target)
	default:
		return false
	}
}

// destroyLowest clears one of the minimum-value tiles, picked uniformly.
func destroyLowest(g Grid, rng *rand.Rand) bool {
	tiles := g.OccupiedPositions()
	if len(tiles) == 0 {
		return false
	}

	minVal := tiles[0].Value
	for _, t := range tiles[1:] {
		minVal = min(minVal, t.Value)
	}

	var lowest []board.Pos
	for _, t := range tiles {
		if t.Value == minVal {
			lowest = append(lowest, t.Pos)
		}
	}

	return g.ClearTile(lowest[rng.Intn(len(lowest))])
}

// promoteHighest replaces the first maximum in row-major order with the
// next Fibonacci term.
func promoteHighest(g Grid) bool {
	tiles := g.OccupiedPositions()
	if len(tiles) == 0 {
		return false
	}

	best := tiles[0]
	for _, t := range tiles[1:] {
		if t.Value > best.Value {
			best = t
		}
	}

	next, ok := fibonacci.NextAfter(best.Value)
	if !ok {
		return false
	}
	return g.SetTileValue(best.Pos, next)
}

// shuffle deals the occupied values back onto the same cells in a random
// order. Boards with fewer than two tiles have nothing to rearrange.
func shuffle(g Grid, rng *rand.Rand) bool {
	tiles := g.OccupiedPositions()
	if len(tiles) < 2 {
		return false
	}

	values := make([]int, len(tiles))
	for i, t := range tiles {
		values[i] = t.Value
	}
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	for _, t := range tiles {
		g.ClearTile(t.Pos)
	}
	for i, t := range tiles {
		g.PlaceTile(t.Pos, values[i])
	}
	return true
}
