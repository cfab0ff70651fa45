// Package api implements the HTTP handlers for the portal: the
// conversational widget endpoints, the availability views, the runtime
// credential endpoint and the dashboard content.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dhuhelper/dhu-portal-go/internal/config"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/intent"
	"github.com/dhuhelper/dhu-portal-go/internal/logger"
	"github.com/dhuhelper/dhu-portal-go/internal/metrics"
	"github.com/dhuhelper/dhu-portal-go/internal/portal"
	"github.com/dhuhelper/dhu-portal-go/internal/session"
	"github.com/dhuhelper/dhu-portal-go/internal/storage"
)

// Handler bundles the dependencies the HTTP handlers share.
type Handler struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	sessions *session.Manager
	engine   *intent.Engine
	creds    *storage.CredentialRepository
	board    *portal.NoticeBoard

	// now is swapped in tests to pin availability output.
	now func() time.Time
}

// NewHandler creates the handler set. creds may be nil when no database
// is wired; the credential endpoint then reports service unavailable.
func NewHandler(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, sessions *session.Manager, engine *intent.Engine, creds *storage.CredentialRepository, board *portal.NoticeBoard) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log.WithModule("api"),
		metrics:  m,
		sessions: sessions,
		engine:   engine,
		creds:    creds,
		board:    board,
		now:      time.Now,
	}
}

// Register mounts the portal API on router.
func (h *Handler) Register(router *gin.Engine) {
	agent := router.Group("/api/agent")
	{
		agent.POST("/sessions", h.OpenSession)
		agent.DELETE("/sessions/:id", h.CloseSession)
		agent.GET("/sessions/:id/messages", h.ListMessages)
		agent.POST("/sessions/:id/messages", h.PostMessage)
		agent.POST("/sessions/:id/bookings", h.PostBooking)
		agent.PUT("/credential", h.PutCredential)
	}

	router.GET("/api/availability/:category", h.GetAvailability)

	p := router.Group("/api/portal")
	{
		p.GET("/notices", h.GetNotices)
		p.GET("/calendar", h.GetCalendar)
		p.GET("/apps", h.GetApps)
		p.GET("/services", h.GetServices)
		p.GET("/entities", h.GetEntities)
	}
}

// respondError maps domain errors to HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		h.recordHTTPError("not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrResolutionInFlight):
		h.recordHTTPError("resolution_in_flight")
		c.JSON(http.StatusConflict, gin.H{"error": "a previous message is still being processed"})
	case apperrors.IsInvalidInput(err):
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsRateLimitExceeded(err):
		h.recordHTTPError("rate_limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, apperrors.ErrNoCredential):
		h.recordHTTPError("no_credential")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "credential store not available"})
	default:
		h.recordHTTPError("internal")
		h.log.WithError(err).Error("request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream failure"})
	}
}

func (h *Handler) recordHTTPError(errorType string) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError(errorType, "api")
	}
}
