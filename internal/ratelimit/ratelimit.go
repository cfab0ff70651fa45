// Package ratelimit provides token bucket rate limiters used to pace
// scraper requests and to throttle per-session message traffic.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter implements a token bucket rate limiter.
// It is safe for concurrent use.
//
// Tokens are added at a constant rate (refillRate per second) up to
// maxTokens; each request consumes one token. When the bucket is empty
// the request is either rejected (Allow) or blocks (Wait).
type Limiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// New creates a new rate limiter.
//
// Parameters:
//   - maxTokens: maximum number of tokens in the bucket (burst capacity)
//   - refillRate: number of tokens to add per second
//
// Example:
//
//	// One scraper request every 2 seconds, no bursting
//	limiter := ratelimit.New(1, 0.5)
func New(maxTokens, refillRate float64) *Limiter {
	return &Limiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// refill adds tokens based on elapsed time since last refill.
// Must be called with mu held.
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()

	l.tokens += elapsed * l.refillRate
	if l.tokens > l.maxTokens {
		l.tokens = l.maxTokens
	}
	l.lastRefill = now
}

// Allow checks if a request is allowed based on rate limit.
// Returns true if allowed (token consumed), false otherwise.
// This method is non-blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()

	if l.tokens >= 1.0 {
		l.tokens -= 1.0
		return true
	}

	return false
}

// Wait blocks until a token is available or the context is canceled.
// Returns nil if a token was acquired, or ctx.Err() if canceled.
//
// This method is more efficient than polling Allow() as it calculates
// the exact wait time needed.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		l.refill()

		// Check if we have a token
		if l.tokens >= 1 {
			l.tokens--
			l.mu.Unlock()
			return nil
		}

		// Calculate wait time for next token
		waitTime := time.Duration((1 - l.tokens) / l.refillRate * float64(time.Second))
		l.mu.Unlock()

		// Wait outside the lock
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
			// Retry the loop to acquire token
		}
	}
}

// Available returns the current number of available tokens.
// This is useful for monitoring and debugging.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens
}

// IsFull returns true if the bucket is at or near full capacity.
// This is used to detect inactive limiters that can be cleaned up.
func (l *Limiter) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens >= l.maxTokens
}

// Reset resets the limiter to full capacity.
// Useful for testing or when rate limit conditions change.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tokens = l.maxTokens
	l.lastRefill = time.Now()
}
