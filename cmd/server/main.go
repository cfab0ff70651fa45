// Package main provides the campus portal server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dhuhelper/dhu-portal-go/internal/api"
	"github.com/dhuhelper/dhu-portal-go/internal/buildinfo"
	"github.com/dhuhelper/dhu-portal-go/internal/config"
	"github.com/dhuhelper/dhu-portal-go/internal/intent"
	"github.com/dhuhelper/dhu-portal-go/internal/logger"
	"github.com/dhuhelper/dhu-portal-go/internal/metrics"
	"github.com/dhuhelper/dhu-portal-go/internal/portal"
	"github.com/dhuhelper/dhu-portal-go/internal/scraper"
	"github.com/dhuhelper/dhu-portal-go/internal/sentry"
	"github.com/dhuhelper/dhu-portal-go/internal/session"
	"github.com/dhuhelper/dhu-portal-go/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (optionally shipping to Better Stack)
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting DHU Portal Server")

	// Initialize error tracking (no-op without a token)
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
	}
	defer sentry.Flush(2 * time.Second)

	// Connect to database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry with runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Scraper client for the notice board
	scraperClient := scraper.NewClient(cfg.ScraperTimeout, cfg.ScraperMaxRetries)

	credRepo := storage.NewCredentialRepository(db)
	noticeRepo := storage.NewNoticeRepository(db)
	board := portal.NewNoticeBoard(noticeRepo, scraperClient, cfg.NoticeURL, log, m)

	// Session manager and intent engine
	sessions := session.NewManager(cfg, log, m)
	engine := intent.NewEngine(cfg, log, m, credRepo)
	if cfg.HasLLMCredential() {
		log.WithField("provider", cfg.LLMProvider).Info("LLM intent resolution enabled")
	} else {
		log.Info("No LLM credential configured, using local intent classification")
	}

	handler := api.NewHandler(cfg, log, m, sessions, engine, credRepo, board)

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.WithError(err).Error("Invalid trusted proxies")
			os.Exit(1)
		}
	}

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(sentryMiddleware())
	router.Use(loggingMiddleware(log))

	// Setup routes
	setupRoutes(router, handler, db, registry, cfg)

	// HTTP server timeouts cover one resolution round trip
	// See internal/config/timeouts.go for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.ResolutionHTTPRead,
		WriteTimeout: config.ResolutionHTTPWrite,
		IdleTimeout:  config.ResolutionHTTPIdle,
	}

	// Start background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	// Notice board refresher
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in notice refresher goroutine")
			}
		}()
		board.RunRefresher(ctx, cfg.NoticeRefreshInterval)
	}()

	// Session gauge updater
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in session metrics goroutine")
			}
		}()
		updateSessionMetrics(ctx, sessions, m)
	}()

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop the session manager's sweep loop and rate limiter
	sessions.Stop()

	// Cancel context to stop background goroutines
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	// Shutdown server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}
