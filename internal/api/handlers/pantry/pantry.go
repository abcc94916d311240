// Package pantry serves kitchen inventory endpoints.
package pantry

import (
	"errors"
	"net/http"
	"strings"

	"fridgechef/internal/pkg/common"
	"fridgechef/internal/storage/postgres"

	"github.com/gin-gonic/gin"
)

// UserID resolves the caller's identity from the X-User-ID header. The API
// has no auth layer; clients self-identify, and absent headers share one
// default namespace.
func UserID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-User-ID")); id != "" {
		return id
	}
	return "default"
}

// Handler serves the kitchen inventory CRUD.
type Handler struct {
	kitchen *postgres.KitchenRepo
}

// NewHandler creates a pantry handler.
func NewHandler(kitchen *postgres.KitchenRepo) *Handler {
	return &Handler{kitchen: kitchen}
}

// List returns the caller's inventory.
func (h *Handler) List(c *gin.Context) {
	items, err := h.kitchen.ListByUser(c.Request.Context(), UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create adds one inventory item.
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}

	item := common.KitchenInventoryItem{Name: name}
	if err := h.kitchen.Create(c.Request.Context(), UserID(c), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Delete removes one inventory item.
func (h *Handler) Delete(c *gin.Context) {
	err := h.kitchen.Delete(c.Request.Context(), UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrNotFound.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
