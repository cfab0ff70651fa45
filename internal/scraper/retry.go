package scraper

import (
	"context"
	"crypto/rand"
	"errors"
	"math"
	"math/big"
	"time"
)

// permanentError marks errors that will never succeed on retry
// (e.g., 404/403/401).
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// permanent wraps err so RetryWithBackoff stops immediately.
func permanent(err error) error {
	return &permanentError{err: err}
}

// RetryWithBackoff retries a function with exponential backoff and jitter.
// Stops retrying immediately if the error is a permanentError.
//
// maxRetries: maximum number of retry attempts (0 = no retry, just try once)
// initialDelay: initial delay before first retry (e.g., 4s)
//
// Backoff formula: delay = initialDelay * 2^attempt ± 25% jitter
func RetryWithBackoff(ctx context.Context, maxRetries int, initialDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var permErr *permanentError
		if errors.As(err, &permErr) {
			return permErr.Unwrap()
		}

		// Don't delay after the last attempt
		if attempt == maxRetries {
			break
		}

		delay := time.Duration(float64(initialDelay) * math.Pow(2, float64(attempt)))

		// Add jitter (±25%)
		halfDelay := int64(delay) / 2
		if halfDelay == 0 {
			halfDelay = 1
		}
		jitterBig, err := rand.Int(rand.Reader, big.NewInt(halfDelay))
		if err != nil {
			jitterBig = big.NewInt(0)
		}
		delay = delay - delay/4 + time.Duration(jitterBig.Int64())

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

// Sleep waits for the specified duration, respecting context cancellation
func Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
