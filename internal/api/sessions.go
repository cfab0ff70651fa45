package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dhuhelper/dhu-portal-go/internal/availability"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/intent"
	"github.com/dhuhelper/dhu-portal-go/internal/session"
)

type messageRequest struct {
	Text string `json:"text"`
}

type bookingRequest struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Time     string `json:"time"`
}

// OpenSession creates a fresh session seeded with the greeting.
func (h *Handler) OpenSession(c *gin.Context) {
	s := h.sessions.Open()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"messages":   s.Messages(),
	})
}

// CloseSession discards the session and everything in it.
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMessages returns the session's message log in order.
func (h *Handler) ListMessages(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": s.Messages()})
}

// PostMessage submits one user message and returns the assistant reply.
// While resolution is in flight further submissions get 409; resolution
// failures return the transient busy text without touching the log.
func (h *Handler) PostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.sessions.Allow(s.ID) {
		h.recordHTTPError("rate_limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}

	h.resolve(c, s, text)
}

// PostBooking marks an item booked and routes the confirmation through
// the intent engine. Booking the same item again is a no-op.
func (h *Handler) PostBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ItemID == "" || req.ItemName == "" {
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id and item_name are required"})
		return
	}
	if !availability.Category(req.Category).Valid() {
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !s.Book(req.ItemID) {
		// Already booked in this session; no second confirmation.
		c.JSON(http.StatusOK, gin.H{"duplicate": true})
		return
	}
	if h.metrics != nil {
		h.metrics.RecordBooking(req.Category)
	}

	event := fmt.Sprintf("%s User booked %s: %s at %s.",
		intent.BookingEventPrefix, req.Category, req.ItemName, req.Time)
	h.resolve(c, s, event)
}

// resolve runs one resolution round trip against the session.
func (h *Handler) resolve(c *gin.Context, s *session.Session, text string) {
	gen, history, err := s.BeginResolution(text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordMessage(session.SenderUser)
	}

	res, err := h.engine.Resolve(c.Request.Context(), intent.Request{
		Text:            text,
		History:         history,
		PreferredCampus: s.PreferredCampus(),
	})
	if err != nil {
		s.FailResolution(gen)
		if !apperrors.IsRecoverable(err) {
			h.respondError(c, err)
			return
		}
		// Degraded mode: show the busy text, keep the log untouched so
		// the user can simply retry.
		h.log.WithSessionID(s.ID).WithError(err).Warn("resolution degraded")
		c.JSON(http.StatusOK, gin.H{
			"reply":     gin.H{"sender": session.SenderAssistant, "text": intent.SystemBusyText()},
			"transient": true,
		})
		return
	}

	msg, ok := s.CompleteResolution(gen, res)
	if !ok {
		// Session closed while the call was in flight.
		if h.metrics != nil {
			h.metrics.RecordLateWriteDiscarded()
		}
		h.respondError(c, apperrors.ErrSessionNotFound)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordMessage(session.SenderAssistant)
	}

	c.JSON(http.StatusOK, gin.H{"reply": msg})
}
