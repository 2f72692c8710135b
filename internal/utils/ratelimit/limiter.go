// Package ratelimit throttles repeated requests per client with a token bucket.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket for one client. Tokens refill at a fixed rate up
// to the bucket capacity and each allowed request consumes one.
type Limiter struct {
	tokens   float64
	lastTime time.Time

	// rate is the refill rate in tokens per second
	rate     float64
	capacity float64

	mu  sync.Mutex
	now func() time.Time
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// PerMinute builds a Rate allowing n requests per minute with the given burst.
func PerMinute(n, burst int) Rate {
	return Rate{RequestsPerSecond: float64(n) / 60, Burst: burst}
}

// NewLimiter creates a full bucket.
//
// Parameters:
//   - rate: The number of tokens per second to add to the bucket
//   - burst: The maximum capacity of the bucket
//
// Returns:
//   - A configured rate limiter
func NewLimiter(rate float64, burst int) *Limiter {
	return newLimiterAt(rate, burst, time.Now)
}

func newLimiterAt(rate float64, burst int, now func() time.Time) *Limiter {
	return &Limiter{
		tokens:   float64(burst),
		lastTime: now(),
		rate:     rate,
		capacity: float64(burst),
		now:      now,
	}
}

// Allow reports whether a request may proceed and consumes a token if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.tokens += now.Sub(l.lastTime).Seconds() * l.rate
	l.lastTime = now

	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}

// ResetTokens refills the bucket.
func (l *Limiter) ResetTokens() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = l.capacity
	l.lastTime = l.now()
}
