// Package powerup implements the one-shot board effects a player can trigger
// during a game, each with its own use count and cooldown.
package powerup

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/fibo/internal/board"
)

// Kind identifies a power-up effect.
type Kind int

const (
	DestroyLowest  Kind = iota // Clear one of the lowest tiles
	PromoteHighest             // Raise the highest tile to the next term
	Shuffle                    // Rearrange tiles over the occupied cells
	UndoLastMove               // Revert the last move
	Hammer                     // Clear a chosen tile
)

// Kinds lists every power-up in catalog order.
var Kinds = []Kind{DestroyLowest, PromoteHighest, Shuffle, UndoLastMove, Hammer}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case DestroyLowest:
		return "Destroy Lowest"
	case PromoteHighest:
		return "Promote Highest"
	case Shuffle:
		return "Shuffle"
	case UndoLastMove:
		return "Undo"
	case Hammer:
		return "Hammer"
	default:
		return "?"
	}
}

// Key returns the identifier used in config files and on the command line.
func (k Kind) Key() string {
	switch k {
	case DestroyLowest:
		return "destroy_lowest"
	case PromoteHighest:
		return "promote_highest"
	case Shuffle:
		return "shuffle"
	case UndoLastMove:
		return "undo"
	case Hammer:
		return "hammer"
	default:
		return ""
	}
}

// ParseKind looks a kind up by its Key.
func ParseKind(key string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Key() == key {
			return k, true
		}
	}
	return 0, false
}

// Targeted reports whether the kind needs a caller-chosen cell.
func (k Kind) Targeted() bool {
	return k == Hammer
}

// Grid is the part of a board that power-up effects may touch.
type Grid interface {
	TileValue(pos board.Pos) (int, bool)
	SetTileValue(pos board.Pos, value int) bool
	ClearTile(pos board.Pos) bool
	PlaceTile(pos board.Pos, value int) bool
	OccupiedPositions() []board.Tile
	EmptyPositions() []board.Pos
	Undo() bool
}

var _ Grid = (*board.Board)(nil)

// Limits sets how often a power-up may be used.
type Limits struct {
	MaxUses  int
	Cooldown time.Duration
}

// Default limits per power-up.
const (
	DefaultMaxUses  = 3
	DefaultCooldown = 5 * time.Second
)

// PowerUp tracks uses and cooldown for one effect.
type PowerUp struct {
	Kind     Kind
	MaxUses  int
	Cooldown time.Duration

	remaining int
	lastUsed  time.Time
	used      bool
	rng       *rand.Rand
}

// Remaining returns how many uses are left.
func (p *PowerUp) Remaining() int {
	return p.remaining
}

// CooldownLeft returns the time until the power-up may be used again.
func (p *PowerUp) CooldownLeft(now time.Time) time.Duration {
	if !p.used {
		return 0
	}
	left := p.Cooldown - now.Sub(p.lastUsed)
	if left < 0 {
		return 0
	}
	return left
}

// Ready reports whether uses remain and the cooldown has elapsed.
func (p *PowerUp) Ready(now time.Time) bool {
	return p.remaining > 0 && p.CooldownLeft(now) == 0
}

// Reset restores all uses and clears the cooldown.
func (p *PowerUp) Reset() {
	p.remaining = p.MaxUses
	p.lastUsed = time.Time{}
	p.used = false
}

// TryActivate applies the effect to g. It is denied when no uses remain or
// the cooldown is still running. A use is consumed only when the effect
// changed the board; target is read by targeted kinds only.
func (p *PowerUp) TryActivate(g Grid, now time.Time, target *board.Pos) bool {
	if !p.Ready(now) {
		return false
	}
	if !apply(p.Kind, g, p.rng, target) {
		return false
	}

	p.remaining--
	p.lastUsed = now
	p.used = true
	return true
}
