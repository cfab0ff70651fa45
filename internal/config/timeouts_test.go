package config

import (
	"testing"
	"time"
)

// TestResolutionTimeouts verifies the intent resolution timeout budget.
func TestResolutionTimeouts(t *testing.T) {
	tests := []struct {
		name     string
		got      time.Duration
		expected time.Duration
	}{
		{"ResolutionTimeout", ResolutionTimeout, 15 * time.Second},
		{"ResolutionHTTPRead", ResolutionHTTPRead, 10 * time.Second},
		{"ResolutionHTTPWrite", ResolutionHTTPWrite, 20 * time.Second},
		{"ResolutionHTTPIdle", ResolutionHTTPIdle, 120 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// The write timeout must cover a full resolution plus serialization.
	if ResolutionHTTPWrite <= ResolutionTimeout {
		t.Error("ResolutionHTTPWrite must exceed ResolutionTimeout")
	}
}

// TestScraperTimeouts verifies scraper-related timeout constants.
func TestScraperTimeouts(t *testing.T) {
	if ScraperRequest != 30*time.Second {
		t.Errorf("ScraperRequest = %v, want 30s", ScraperRequest)
	}
	if ScraperRetryInitial != 4*time.Second {
		t.Errorf("ScraperRetryInitial = %v, want 4s", ScraperRetryInitial)
	}
	if ScraperRateLimit != 2*time.Second {
		t.Errorf("ScraperRateLimit = %v, want 2s", ScraperRateLimit)
	}
}

// TestBackgroundIntervals sanity-checks the background job cadence.
func TestBackgroundIntervals(t *testing.T) {
	if SessionSweepInterval <= 0 || NoticeRefreshInterval <= 0 {
		t.Error("background intervals must be positive")
	}
	if NoticeRefreshInitialDelay >= NoticeRefreshInterval {
		t.Error("initial delay should be shorter than the refresh interval")
	}
}
