package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/storage"
)

type credentialRequest struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// PutCredential stores a runtime API key for the configured provider.
// The key takes effect on the next resolution; no restart needed.
func (h *Handler) PutCredential(c *gin.Context) {
	if h.creds == nil {
		h.respondError(c, apperrors.ErrNoCredential)
		return
	}

	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.creds.Save(c.Request.Context(), storage.Credential{
		Provider: h.cfg.LLMProvider,
		APIKey:   req.APIKey,
		Model:    req.Model,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Infof("runtime credential updated for provider %s", h.cfg.LLMProvider)
	c.Status(http.StatusNoContent)
}
