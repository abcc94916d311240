// Package parse serves the public recipe extraction endpoint.
package parse

import (
	"errors"
	"net/http"
	"strings"

	"fridgechef/internal/core/extract"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler serves GET /api/parse.
type Handler struct {
	orchestrator *extract.Orchestrator
}

// NewHandler creates a parse handler.
func NewHandler(orchestrator *extract.Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// Parse extracts a recipe from the URL in the query string. The response is
// always a full recipe payload on 200; extraction strategies that fail are
// absorbed upstream and degrade the payload, not the status.
func (h *Handler) Parse(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" || !strings.HasPrefix(rawURL, "http") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid url"})
		return
	}

	recipe, err := h.orchestrator.Resolve(c.Request.Context(), rawURL)
	if err != nil {
		var ce *common.CustomError
		if errors.As(err, &ce) {
			c.JSON(ce.Status, gin.H{"error": ce.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}
