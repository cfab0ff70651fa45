// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrSessionNotFound indicates the conversation session does not exist
	// or has been closed.
	ErrSessionNotFound = errors.New("session not found")

	// ErrResolutionInFlight indicates a submission arrived while the session
	// was still resolving a previous message.
	ErrResolutionInFlight = errors.New("resolution already in flight")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrContextCanceled indicates context was canceled.
	ErrContextCanceled = errors.New("context canceled")

	// ErrNoCredential indicates no LLM credential is configured, so intent
	// resolution must fall back to the local classifier.
	ErrNoCredential = errors.New("no model credential configured")

	// ErrClassification indicates the external classifier call failed.
	ErrClassification = errors.New("intent classification failed")

	// ErrMalformedToolArgs indicates the classifier returned a function call
	// whose arguments could not be decoded.
	ErrMalformedToolArgs = errors.New("malformed tool arguments")
)

// IsNotFound reports whether err wraps ErrNotFound or ErrSessionNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrSessionNotFound)
}

// IsRateLimitExceeded reports whether err wraps ErrRateLimitExceeded.
func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

// IsInvalidInput reports whether err wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRecoverable reports whether err is a degraded-mode condition after which
// the conversation can continue (classifier failure, timeout, missing
// credential). Session state must stay unchanged for these.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrClassification) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrNoCredential) ||
		errors.Is(err, ErrMalformedToolArgs)
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ScraperError represents web scraping failures with context.
type ScraperError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ScraperError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("scraper error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("scraper error (url=%s): %v", e.URL, e.Err)
}

func (e *ScraperError) Unwrap() error {
	return e.Err
}

// NewScraperError creates a new scraper error.
func NewScraperError(url string, statusCode int, err error) *ScraperError {
	return &ScraperError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}
