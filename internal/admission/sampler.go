// Package admission implements the sampling decision, the daily quota and the
// admission gate that orchestrates them.
package admission

import (
	"math/rand"
	"sync"
)

// RandSource yields uniform draws in [0,1). It is injected rather than read
// from a package-global generator so tests can supply fixed sequences.
type RandSource interface {
	Float64() float64
}

// LockedSource wraps a rand.Rand so concurrent request handlers can share it.
type LockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedSource returns a LockedSource seeded with the given seed.
func NewLockedSource(seed int64) *LockedSource {
	return &LockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// ShouldAdmit draws one value from src, scaled to [0,100), and admits iff it
// falls below ratePct. The interval is half-open, so 100 is unreachable as a
// draw value and a rate of 100 admits every record exactly, while a rate of 0
// never admits regardless of the source.
func ShouldAdmit(ratePct float64, src RandSource) bool {
	return src.Float64()*100 < ratePct
}
