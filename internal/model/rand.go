package model

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource is the randomness used for placeholder data and backdrop choice.
// *rand.Rand satisfies it; tests pass a seeded one.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a RandSource seeded with seed, or with the clock when seed is 0.
// The returned source is safe for concurrent use.
func NewRand(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
