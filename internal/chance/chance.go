// Package chance routes random selection through an injectable source.
package chance

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the subset of *rand.Rand the generators draw from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a goroutine-safe Rand seeded with seed.
func New(seed int64) Rand {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a goroutine-safe Rand seeded with the current time.
func NewTimeSeeded() Rand {
	return New(time.Now().UnixNano())
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// Pick returns one element of pool chosen uniformly. pool must not be empty.
func Pick[T any](rnd Rand, pool []T) T {
	return pool[rnd.Intn(len(pool))]
}

// IntRange returns a uniform integer in [lo, hi].
func IntRange(rnd Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Intn(hi-lo+1)
}

// Between returns a uniform duration in [lo, hi).
func Between(rnd Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rnd.Float64()*float64(hi-lo))
}

// Hit reports whether a Bernoulli trial with probability p succeeds.
func Hit(rnd Rand, p float64) bool {
	return rnd.Float64() < p
}
