package rng

// Generator provides a uniform random integer source.
// The deck shuffle takes one of these so tests can swap in a seeded generator.
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}
