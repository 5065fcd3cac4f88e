package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	MaxRequests int           // Maximum number of requests allowed
	WindowSize  time.Duration // Time window for rate limiting
}

// DefaultConfig returns a default configuration
func DefaultConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		MaxRequests: 10,          // 10 requests
		WindowSize:  time.Second, // per second
	}
}

// RateLimiter implements sliding window rate limiting per key. Keys are node URLs,
// so the map stays small and no cleanup goroutine is needed.
type RateLimiter struct {
	config   *RateLimiterConfig
	requests map[string][]time.Time
	mu       sync.Mutex
	now      func() time.Time
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config *RateLimiterConfig) *RateLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &RateLimiter{
		config:   config,
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// reserve records a request when the window has room. Otherwise it returns how long
// until the oldest request in the window expires.
func (rl *RateLimiter) reserve(key string) (bool, time.Duration) {
	now := rl.now()
	cutoff := now.Add(-rl.config.WindowSize)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[key][:0]
	for _, ts := range rl.requests[key] {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.config.MaxRequests {
		rl.requests[key] = valid
		return false, valid[0].Sub(cutoff)
	}
	rl.requests[key] = append(valid, now)
	return true, 0
}

// Allow checks if a request for the given key is allowed and records it
func (rl *RateLimiter) Allow(key string) bool {
	ok, _ := rl.reserve(key)
	return ok
}

// Wait blocks until a request for key is allowed or ctx is done
func (rl *RateLimiter) Wait(ctx context.Context, key string) error {
	for {
		ok, delay := rl.reserve(key)
		if ok {
			return nil
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return NewRateLimitError(key, ctx.Err())
		case <-timer.C:
		}
	}
}

// GetStats returns the number of requests in the current window for key
func (rl *RateLimiter) GetStats(key string) int {
	cutoff := rl.now().Add(-rl.config.WindowSize)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	count := 0
	for _, ts := range rl.requests[key] {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}

// Reset clears the rate limit for a specific key
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.requests, key)
}

// RateLimitError is returned when waiting for a slot is abandoned
type RateLimitError struct {
	Key string
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %v", e.Key, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

func NewRateLimitError(key string, err error) *RateLimitError {
	return &RateLimitError{Key: key, Err: err}
}
