package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source picks random indexes. It is safe for concurrent use.
type Source struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new random source
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Source{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a value in [0, n). It returns 0 when n < 1.
func (s *Source) Intn(n int) int {
	if n < 1 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Intn(n)
}

// Pick returns a random element of items, or the zero value when items is empty.
func Pick[T any](s *Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[s.Intn(len(items))]
}

// Sample returns up to n distinct elements of items in random order.
func Sample[T any](s *Source, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return []T{}
	}

	s.mu.Lock()
	perm := s.random.Perm(len(items))
	s.mu.Unlock()

	out := make([]T, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, items[idx])
	}
	return out
}
