// Package main provides the campus portal server entry point.
package main

import (
	"context"
	"time"

	"github.com/dhuhelper/dhu-portal-go/internal/config"
	"github.com/dhuhelper/dhu-portal-go/internal/metrics"
	"github.com/dhuhelper/dhu-portal-go/internal/session"
)

// updateSessionMetrics keeps the active-session gauge fresh even when
// no session events fire, so the dashboard never shows stale counts.
func updateSessionMetrics(ctx context.Context, sessions *session.Manager, m *metrics.Metrics) {
	ticker := time.NewTicker(config.MetricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SetActiveSessions(sessions.ActiveCount())
		}
	}
}
