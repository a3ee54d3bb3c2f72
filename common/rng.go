package common

import (
	"math/rand"
	"time"
)

// RNG wraps a seeded math/rand source so a whole session can be replayed from
// one seed.
type RNG struct {
	rng *rand.Rand
}

// NewRNG creates a generator. A zero seed uses the current time.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{rng: rand.New(rand.NewSource(seed))}
}

func (r *RNG) Intn(n int) int {
	if r == nil || n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

func (r *RNG) Float64() float64 {
	if r == nil {
		return 0
	}
	return r.rng.Float64()
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// Weighted is one entry of a weighted table.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// ChooseWeighted sums the weights, rolls in that range, and returns the entry
// the roll lands in. Entries with non-positive weight never win. ok is false
// for an empty or all-zero table.
func ChooseWeighted[T any](r *RNG, entries []Weighted[T]) (T, bool) {
	var zero T
	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return zero, false
	}

	roll := r.Intn(total)
	upto := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if upto+e.Weight > roll {
			return e.Value, true
		}
		upto += e.Weight
	}
	return entries[len(entries)-1].Value, true
}
