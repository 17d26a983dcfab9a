// Package dice provides the randomness abstraction used by structure
// generation: uniform ranges, boolean draws, and seeded weighted choice.
package dice

// Source is the randomness provider for generation.
//
// A Source is not required to be safe for concurrent use; each generation
// owns its own Source.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float64 in [0, 1).
	Float64() float64
	// Uint32 returns a uniformly distributed uint32. Generation uses it to
	// draw lottery seeds.
	Uint32() uint32
}

// Range returns a uniform int in the inclusive range [lo, hi].
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi.
func Range(src Source, lo, hi int) int {
	if lo > hi {
		panic("dice: Range called with lo > hi")
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance returns true with probability p.
//
// Postcondition: p <= 0 always yields false; p >= 1 always yields true.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly chosen element of items.
//
// Precondition: len(items) > 0.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
