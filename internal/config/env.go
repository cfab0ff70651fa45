// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "DHU_PORT"
	EnvLogLevel        = "DHU_LOG_LEVEL"
	EnvShutdownTimeout = "DHU_SHUTDOWN_TIMEOUT"
	EnvTrustedProxies  = "DHU_TRUSTED_PROXIES"

	// Data
	EnvDataDir = "DHU_DATA_DIR"

	// Session
	EnvSessionTTL        = "DHU_SESSION_TTL"
	EnvSessionRateBurst  = "DHU_SESSION_RATE_BURST"
	EnvSessionRateRefill = "DHU_SESSION_RATE_REFILL"

	// LLM Feature
	EnvLLMProvider      = "DHU_LLM_PROVIDER"
	EnvGeminiAPIKey     = "DHU_GEMINI_API_KEY"
	EnvGeminiModel      = "DHU_GEMINI_MODEL"
	EnvOpenAIAPIKey     = "DHU_OPENAI_API_KEY"
	EnvOpenAIBaseURL    = "DHU_OPENAI_BASE_URL"
	EnvOpenAIModel      = "DHU_OPENAI_MODEL"
	EnvLLMTimeout       = "DHU_LLM_TIMEOUT"
	EnvLLMMaxConcurrent = "DHU_LLM_MAX_CONCURRENT"

	// Notice scraper
	EnvNoticeURL             = "DHU_NOTICE_URL"
	EnvNoticeRefreshInterval = "DHU_NOTICE_REFRESH_INTERVAL"
	EnvScraperTimeout        = "DHU_SCRAPER_TIMEOUT"
	EnvScraperMaxRetries     = "DHU_SCRAPER_MAX_RETRIES"

	// Sentry Feature
	EnvSentryToken       = "DHU_SENTRY_TOKEN"
	EnvSentryHost        = "DHU_SENTRY_HOST"
	EnvSentryEnvironment = "DHU_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "DHU_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "DHU_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "DHU_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsUsername = "DHU_METRICS_USERNAME"
	EnvMetricsPassword = "DHU_METRICS_PASSWORD"
)
