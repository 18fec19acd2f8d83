package core

import "math/rand/v2"

// Source is the random draw a simulation needs to seed its cells.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// FillBinary fills the buffer with independent fair 0/1 draws from src.
func FillBinary(src Source, buf []uint8) {
	for i := range buf {
		buf[i] = uint8(src.IntN(2))
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
