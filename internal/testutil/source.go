// Package testutil provides deterministic doubles shared by package tests.
package testutil

import "sync"

// Source is a scripted dice.Source. Intn and Float64 replay their queues in
// order; once a queue is exhausted Intn returns 0 and Float64 returns Fallback.
type Source struct {
	mu       sync.Mutex
	ints     []int
	floats   []float64
	Fallback float64
}

// NewSource returns a Source replaying ints for Intn and floats for Float64.
func NewSource(ints []int, floats []float64) *Source {
	return &Source{ints: ints, floats: floats}
}

// Intn returns the next scripted int, clamped into [0, n).
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Float64 returns the next scripted float.
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return s.Fallback
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
