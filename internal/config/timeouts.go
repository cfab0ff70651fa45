// Package config provides centralized timeout constants for the application.
//
// These values are tuned for the conversational flow of the portal widget:
// the front-end shows a typing indicator while a message resolves, so the
// resolution timeout is short, and everything else is background work.
package config

import "time"

// Intent resolution timeouts
const (
	// ResolutionTimeout bounds one intent resolution, including the
	// external classifier call. The widget shows a typing indicator for
	// the whole wait, so this stays short.
	ResolutionTimeout = 15 * time.Second

	// ResolutionHTTPWrite is the HTTP server write timeout. Covers
	// ResolutionTimeout plus response serialization.
	ResolutionHTTPWrite = 20 * time.Second

	// ResolutionHTTPRead is the HTTP server read timeout. Message
	// payloads are small JSON bodies.
	ResolutionHTTPRead = 10 * time.Second

	// ResolutionHTTPIdle is the HTTP server idle timeout for keep-alive
	// connections.
	ResolutionHTTPIdle = 120 * time.Second
)

// Scraper timeouts
const (
	// ScraperRequest is the timeout for a single HTTP request to the
	// university news site.
	ScraperRequest = 30 * time.Second

	// ScraperRetryInitial is the initial delay before retrying a failed
	// request. Uses exponential backoff.
	ScraperRetryInitial = 4 * time.Second

	// ScraperRateLimit is the minimum delay between consecutive scraping
	// requests.
	ScraperRateLimit = 2 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value.
	DatabaseBusyTimeout = 30 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database
	// connections.
	DatabaseConnMaxLifetime = time.Hour
)

// Background job intervals
const (
	// SessionSweepInterval is how often expired sessions are discarded.
	SessionSweepInterval = 5 * time.Minute

	// NoticeRefreshInterval is how often the notice board is re-scraped.
	NoticeRefreshInterval = 6 * time.Hour

	// NoticeRefreshInitialDelay lets the server settle before the first
	// scrape.
	NoticeRefreshInitialDelay = time.Minute

	// MetricsUpdateInterval is how often gauge metrics are refreshed.
	MetricsUpdateInterval = 5 * time.Minute

	// RateLimiterCleanupInterval is how often inactive per-session rate
	// limiters are cleaned.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second
)
