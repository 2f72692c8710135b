package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps one limiter per client. A bucket is discarded ttl after it was
// created, and at most size clients are tracked at once.
type Store struct {
	rate     Rate
	limiters *expirable.LRU[string, *Limiter]

	// mu makes get-or-create atomic
	mu sync.Mutex
}

// NewStore creates a limiter store.
//
// Parameters:
//   - rate: The rate applied to every client
//   - size: Maximum number of tracked clients
//   - ttl: How long a client keeps its bucket
//
// Returns:
//   - A configured limiter store
func NewStore(rate Rate, size int, ttl time.Duration) *Store {
	return &Store{
		rate:     rate,
		limiters: expirable.NewLRU[string, *Limiter](size, nil, ttl),
	}
}

// GetLimiter returns the limiter for clientID, creating it on first use.
func (s *Store) GetLimiter(clientID string) *Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, ok := s.limiters.Get(clientID); ok {
		return limiter
	}

	limiter := NewLimiter(s.rate.RequestsPerSecond, s.rate.Burst)
	s.limiters.Add(clientID, limiter)
	return limiter
}

// Allow reports whether clientID may make another request.
func (s *Store) Allow(clientID string) bool {
	return s.GetLimiter(clientID).Allow()
}

// Len returns the number of tracked clients.
func (s *Store) Len() int {
	return s.limiters.Len()
}
