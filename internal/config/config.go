// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, session handling, LLM providers and the notice scraper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
// Supported LLM providers.
const (
	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"
)

type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	TrustedProxies  []string

	// Data Configuration
	DataDir string // Data directory for the SQLite database

	// Session Configuration
	SessionTTL        time.Duration // Idle lifetime of a conversation session
	SessionRateBurst  float64       // Token bucket burst per session
	SessionRateRefill float64       // Tokens refilled per second per session

	// LLM Configuration
	LLMProvider      string // "gemini" or "openai"
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	OpenAIBaseURL    string // OpenAI-compatible endpoint, empty = api.openai.com
	OpenAIModel      string
	LLMTimeout       time.Duration
	LLMMaxConcurrent int64 // Global cap on concurrent classifier calls

	// Notice Scraper Configuration
	NoticeURL             string
	NoticeRefreshInterval time.Duration
	ScraperTimeout        time.Duration
	ScraperMaxRetries     int

	// Sentry Configuration
	SentryToken       string
	SentryHost        string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		TrustedProxies:  splitEnv(EnvTrustedProxies),

		DataDir: getEnv(EnvDataDir, getDefaultDataDir()),

		SessionTTL:        getDurationEnv(EnvSessionTTL, 30*time.Minute),
		SessionRateBurst:  getFloatEnv(EnvSessionRateBurst, 6.0),
		SessionRateRefill: getFloatEnv(EnvSessionRateRefill, 0.5), // 1 per 2s

		LLMProvider:      getEnv(EnvLLMProvider, "gemini"),
		GeminiAPIKey:     getEnv(EnvGeminiAPIKey, ""),
		GeminiModel:      getEnv(EnvGeminiModel, "gemini-2.5-flash"),
		OpenAIAPIKey:     getEnv(EnvOpenAIAPIKey, ""),
		OpenAIBaseURL:    getEnv(EnvOpenAIBaseURL, ""),
		OpenAIModel:      getEnv(EnvOpenAIModel, "gpt-4o-mini"),
		LLMTimeout:       getDurationEnv(EnvLLMTimeout, ResolutionTimeout),
		LLMMaxConcurrent: int64(getIntEnv(EnvLLMMaxConcurrent, 8)),

		NoticeURL:             getEnv(EnvNoticeURL, "https://news.dhu.edu.cn/"),
		NoticeRefreshInterval: getDurationEnv(EnvNoticeRefreshInterval, NoticeRefreshInterval),
		ScraperTimeout:        getDurationEnv(EnvScraperTimeout, ScraperRequest),
		ScraperMaxRetries:     getIntEnv(EnvScraperMaxRetries, 5),

		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, "errors.betterstack.com"),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.LLMProvider != LLMProviderGemini && c.LLMProvider != LLMProviderOpenAI {
		errs = append(errs, fmt.Errorf("%s must be gemini or openai, got %q", EnvLLMProvider, c.LLMProvider))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSessionTTL, c.SessionTTL))
	}
	if c.SessionRateBurst <= 0 || c.SessionRateRefill <= 0 {
		errs = append(errs, errors.New("session rate limits must be positive"))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvLLMTimeout, c.LLMTimeout))
	}
	if c.LLMMaxConcurrent <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvLLMMaxConcurrent, c.LLMMaxConcurrent))
	}
	if c.ScraperTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvScraperTimeout, c.ScraperTimeout))
	}
	if c.ScraperMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvScraperMaxRetries, c.ScraperMaxRetries))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// splitEnv retrieves a comma-separated environment variable as a slice.
func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "portal.db")
}

// HasLLMCredential returns true if the configured provider has an API key.
func (c *Config) HasLLMCredential() bool {
	if c.LLMProvider == LLMProviderOpenAI {
		return c.OpenAIAPIKey != ""
	}
	return c.GeminiAPIKey != ""
}
