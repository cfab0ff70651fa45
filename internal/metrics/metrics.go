package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Intent resolution metrics
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec
	IntentsTotal       *prometheus.CounterVec

	// Session metrics
	SessionsActive      prometheus.Gauge
	SessionsTotal       *prometheus.CounterVec
	MessagesTotal       *prometheus.CounterVec
	BookingsTotal       *prometheus.CounterVec
	LateWritesDiscarded prometheus.Counter

	// Scraper metrics
	ScraperRequestsTotal   *prometheus.CounterVec
	ScraperDurationSeconds *prometheus.HistogramVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
	RateLimitersActive prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Intent resolution metrics
		ResolutionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_resolutions_total",
				Help: "Total intent resolutions by provider and status",
			},
			[]string{"provider", "status"}, // provider: gemini, openai, fallback; status: success, error, timeout
		),

		ResolutionDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dhu_resolution_duration_seconds",
				Help:    "Intent resolution duration in seconds by provider",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 15}, // Matches the 15s resolution timeout
			},
			[]string{"provider"},
		),

		IntentsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_intents_total",
				Help: "Total resolved intents by kind",
			},
			[]string{"kind"}, // kind: sports, meeting, classroom, library, counseling, canteen, entity_link, apology
		),

		// Session metrics
		SessionsActive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "dhu_sessions_active",
				Help: "Number of open conversation sessions",
			},
		),

		SessionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_sessions_total",
				Help: "Total sessions by lifecycle event",
			},
			[]string{"event"}, // event: opened, closed, expired
		),

		MessagesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_messages_total",
				Help: "Total conversation messages by sender",
			},
			[]string{"sender"}, // sender: user, assistant, system
		),

		BookingsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_bookings_total",
				Help: "Total booking confirmations by category",
			},
			[]string{"category"},
		),

		LateWritesDiscarded: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "dhu_late_writes_discarded_total",
				Help: "Resolutions that finished after their session was closed or reset",
			},
		),

		// Scraper metrics
		ScraperRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_scraper_requests_total",
				Help: "Total number of scraper requests by source and status",
			},
			[]string{"source", "status"}, // status: success, error, timeout
		),

		ScraperDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dhu_scraper_duration_seconds",
				Help:    "Scraper request duration in seconds by source",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"source"},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_http_errors_total",
				Help: "Total HTTP errors by type and module",
			},
			[]string{"error_type", "module"}, // error_type: timeout, rate_limit, conflict, not_found, etc.
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhu_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: session, scraper
		),

		RateLimitersActive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "dhu_rate_limiters_active",
				Help: "Number of per-session rate limiters currently tracked",
			},
		),
	}

	return m
}

// RecordResolution records one intent resolution with its outcome
func (m *Metrics) RecordResolution(provider, status string, duration float64) {
	m.ResolutionsTotal.WithLabelValues(provider, status).Inc()
	m.ResolutionDuration.WithLabelValues(provider).Observe(duration)
}

// RecordIntent records the kind of a resolved intent
func (m *Metrics) RecordIntent(kind string) {
	m.IntentsTotal.WithLabelValues(kind).Inc()
}

// RecordSessionEvent records a session lifecycle event
func (m *Metrics) RecordSessionEvent(event string) {
	m.SessionsTotal.WithLabelValues(event).Inc()
}

// RecordMessage records an appended conversation message
func (m *Metrics) RecordMessage(sender string) {
	m.MessagesTotal.WithLabelValues(sender).Inc()
}

// RecordBooking records a booking confirmation
func (m *Metrics) RecordBooking(category string) {
	m.BookingsTotal.WithLabelValues(category).Inc()
}

// RecordLateWriteDiscarded records a resolution result dropped by the
// session generation guard
func (m *Metrics) RecordLateWriteDiscarded() {
	m.LateWritesDiscarded.Inc()
}

// RecordScraperRequest records a scraper request with status
func (m *Metrics) RecordScraperRequest(source, status string, duration float64) {
	m.ScraperRequestsTotal.WithLabelValues(source, status).Inc()
	m.ScraperDurationSeconds.WithLabelValues(source).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, module string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, module).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// SetActiveRateLimiters updates the tracked rate limiter gauge
func (m *Metrics) SetActiveRateLimiters(count int) {
	m.RateLimitersActive.Set(float64(count))
}

// SetActiveSessions updates the open session gauge
func (m *Metrics) SetActiveSessions(count int) {
	m.SessionsActive.Set(float64(count))
}
