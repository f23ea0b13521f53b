package powerup

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/fibo/internal/board"
)

// Config maps each kind to its limits. Kinds missing from the map get the
// default limits; a zero MaxUses disables a kind.
type Config map[Kind]Limits

// DefaultConfig returns the default limits for every kind.
func DefaultConfig() Config {
	cfg := make(Config, len(Kinds))
	for _, k := range Kinds {
		cfg[k] = Limits{MaxUses: DefaultMaxUses, Cooldown: DefaultCooldown}
	}
	return cfg
}

// Status is a read-only view of a power-up for display.
type Status struct {
	Kind         Kind
	Remaining    int
	MaxUses      int
	CooldownLeft time.Duration
	Ready        bool
}

// Catalog owns one PowerUp per kind and the random source their effects share.
type Catalog struct {
	items []*PowerUp
	rng   *rand.Rand
}

// New creates a catalog with every kind at full uses.
func New(cfg Config, seed int64) *Catalog {
	c := &Catalog{rng: rand.New(rand.NewSource(seed))}

	for _, k := range Kinds {
		limits, ok := cfg[k]
		if !ok {
			limits = Limits{MaxUses: DefaultMaxUses, Cooldown: DefaultCooldown}
		}
		p := &PowerUp{
			Kind:     k,
			MaxUses:  max(limits.MaxUses, 0),
			Cooldown: max(limits.Cooldown, 0),
			rng:      c.rng,
		}
		p.Reset()
		c.items = append(c.items, p)
	}

	return c
}

// Reset restores every power-up to full uses.
func (c *Catalog) Reset() {
	for _, p := range c.items {
		p.Reset()
	}
}

// Get returns the power-up for kind.
func (c *Catalog) Get(kind Kind) (*PowerUp, bool) {
	for _, p := range c.items {
		if p.Kind == kind {
			return p, true
		}
	}
	return nil, false
}

// Activate tries the power-up for kind against g.
func (c *Catalog) Activate(kind Kind, g Grid, now time.Time, target *board.Pos) bool {
	p, ok := c.Get(kind)
	if !ok {
		return false
	}
	return p.TryActivate(g, now, target)
}

// Statuses returns the state of every power-up in catalog order.
func (c *Catalog) Statuses(now time.Time) []Status {
	out := make([]Status, 0, len(c.items))
	for _, p := range c.items {
		out = append(out, Status{
			Kind:         p.Kind,
			Remaining:    p.remaining,
			MaxUses:      p.MaxUses,
			CooldownLeft: p.CooldownLeft(now),
			Ready:        p.Ready(now),
		})
	}
	return out
}
