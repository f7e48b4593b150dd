package rng

import "math/rand"

// Seeded is a deterministic generator for tests.
// Never use this for a real shuffle; the table engine expects Crypto.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a Generator seeded with the provided value
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a deterministic number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}
