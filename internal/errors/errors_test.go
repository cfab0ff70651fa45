package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		checkFn  func(error) bool
		expected bool
	}{
		{
			name:     "ErrNotFound is recognized",
			err:      ErrNotFound,
			checkFn:  IsNotFound,
			expected: true,
		},
		{
			name:     "ErrSessionNotFound counts as not found",
			err:      fmt.Errorf("lookup: %w", ErrSessionNotFound),
			checkFn:  IsNotFound,
			expected: true,
		},
		{
			name:     "Wrapped ErrNotFound is recognized",
			err:      errors.Join(ErrNotFound, errors.New("additional context")),
			checkFn:  IsNotFound,
			expected: true,
		},
		{
			name:     "Different error is not ErrNotFound",
			err:      ErrRateLimitExceeded,
			checkFn:  IsNotFound,
			expected: false,
		},
		{
			name:     "ErrRateLimitExceeded is recognized",
			err:      ErrRateLimitExceeded,
			checkFn:  IsRateLimitExceeded,
			expected: true,
		},
		{
			name:     "ErrInvalidInput is recognized",
			err:      ErrInvalidInput,
			checkFn:  IsInvalidInput,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.checkFn(tt.err)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestIsRecoverable(t *testing.T) {
	recoverable := []error{
		ErrClassification,
		ErrTimeout,
		ErrNoCredential,
		ErrMalformedToolArgs,
		fmt.Errorf("gemini call: %w", ErrClassification),
	}
	for _, err := range recoverable {
		if !IsRecoverable(err) {
			t.Errorf("expected %v to be recoverable", err)
		}
	}

	fatal := []error{
		ErrSessionNotFound,
		ErrResolutionInFlight,
		ErrRateLimitExceeded,
		errors.New("disk on fire"),
	}
	for _, err := range fatal {
		if IsRecoverable(err) {
			t.Errorf("expected %v to not be recoverable", err)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("campus", "unknown campus")

	if err.Field != "campus" {
		t.Errorf("expected field 'campus', got '%s'", err.Field)
	}

	expected := "validation failed on campus: unknown campus"
	if err.Error() != expected {
		t.Errorf("expected error '%s', got '%s'", expected, err.Error())
	}
}

func TestScraperError(t *testing.T) {
	baseErr := errors.New("connection timeout")
	err := NewScraperError("https://news.dhu.edu.cn", 500, baseErr)

	if err.StatusCode != 500 {
		t.Errorf("expected status code 500, got %d", err.StatusCode)
	}

	if !errors.Is(err, baseErr) {
		t.Error("expected error to wrap base error")
	}

	if NewScraperError("https://news.dhu.edu.cn", 0, baseErr).Error() == "" {
		t.Error("expected non-empty error message")
	}
}
