// Package rng provides the random source shared by floor generation and progression rolls.
package rng

import (
	"math/rand"
	"time"
)

// Source is the subset of *rand.Rand the game depends on.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// New returns a seeded source. A seed of 0 means a random seed will be generated.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Fixed is a deterministic Source for tests: Float64 always returns Float and
// Intn returns Int clamped to [0, n).
type Fixed struct {
	Float float64
	Int   int
}

// Intn returns f.Int clamped to the valid range for n.
func (f Fixed) Intn(n int) int {
	if n <= 0 || f.Int < 0 {
		return 0
	}
	if f.Int >= n {
		return n - 1
	}
	return f.Int
}

// Float64 returns f.Float.
func (f Fixed) Float64() float64 {
	return f.Float
}

// Ensure *rand.Rand satisfies Source
var _ Source = (*rand.Rand)(nil)
