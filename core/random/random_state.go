// Package random provides a seeded random source whose integer, permutation
// and uniform draws reproduce numpy's legacy RandomState bit for bit.
//
// Splits made with the same seed therefore select the same rows as
// scikit-learn's train_test_split(..., random_state=seed).
package random

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// RandomState wraps a 32-bit Mersenne Twister seeded with init_genrand.
// A RandomState is not safe for concurrent use.
type RandomState struct {
	src  *prng.MT19937
	seed uint32
}

// NewRandomState returns a generator equivalent to numpy.random.RandomState(seed).
func NewRandomState(seed uint32) *RandomState {
	src := prng.NewMT19937()
	src.Seed(uint64(seed))
	return &RandomState{src: src, seed: seed}
}

// Seed returns the seed the generator was created with.
func (r *RandomState) Seed() uint32 { return r.seed }

// Uint32 returns the next raw 32-bit output.
func (r *RandomState) Uint32() uint32 { return r.src.Uint32() }

// Interval returns a uniform integer in [0, max] by masked rejection sampling.
func (r *RandomState) Interval(max uint32) uint32 {
	if max == 0 {
		return 0
	}
	mask := max
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16

	for {
		v := r.src.Uint32() & mask
		if v <= max {
			return v
		}
	}
}

// Float64 returns a uniform float in [0, 1) with 53 bits of precision.
func (r *RandomState) Float64() float64 {
	a := r.src.Uint32() >> 5
	b := r.src.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// Shuffle permutes n elements in place through swap, walking from the last
// index down to 1.
func (r *RandomState) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i >= 1; i-- {
		j := int(r.Interval(uint32(i)))
		swap(i, j)
	}
}

// Permutation returns a shuffled copy of [0, n).
func (r *RandomState) Permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}
