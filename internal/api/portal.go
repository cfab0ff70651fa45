package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/directory"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/portal"
)

// GetNotices returns the notice board.
func (h *Handler) GetNotices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notices": h.board.List(c.Request.Context())})
}

// GetCalendar returns the calendar widget grid.
func (h *Handler) GetCalendar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"days": portal.Calendar()})
}

// GetApps returns the app-favorites shortcuts.
func (h *Handler) GetApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": portal.Apps()})
}

// GetServices returns the recommended-services entries.
func (h *Handler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": portal.Services()})
}

// GetEntities returns the unit directory, optionally filtered by campus.
func (h *Handler) GetEntities(c *gin.Context) {
	var camp campus.Campus
	if q := c.Query("campus"); q != "" {
		parsed, ok := campus.Parse(q)
		if !ok {
			h.respondError(c, fmt.Errorf("%w: unknown campus %q", apperrors.ErrInvalidInput, q))
			return
		}
		camp = parsed
	}
	c.JSON(http.StatusOK, gin.H{"entities": directory.ByCampus(camp)})
}
