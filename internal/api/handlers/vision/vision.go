// Package vision serves ingredient detection from photos and video frames.
package vision

import (
	"net/http"

	"fridgechef/internal/core/ai/interpret"
	"fridgechef/internal/core/ai/service"
	"fridgechef/internal/core/image"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxFrames bounds one frames request; each frame is a separate model call.
const maxFrames = 10

// Handler serves the vision endpoints.
type Handler struct {
	aiService   *service.Service
	imageSvc    *image.Service
	interpreter *interpret.Interpreter
}

// NewHandler creates a vision handler.
func NewHandler(aiService *service.Service, imageSvc *image.Service, interpreter *interpret.Interpreter) *Handler {
	return &Handler{
		aiService:   aiService,
		imageSvc:    imageSvc,
		interpreter: interpreter,
	}
}

// Detect identifies grocery items in a single photo.
func (h *Handler) Detect(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Error()})
		return
	}

	input, err := h.imageSvc.Normalize(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := h.aiService.DetectIngredients(c.Request.Context(), input.Base64, input.MimeType)
	if err != nil {
		respondAIError(c, err)
		return
	}

	result := h.interpreter.VisionResponse(raw)
	c.JSON(http.StatusOK, gin.H{
		"items": result.Items,
		"steps": result.Steps,
	})
}

// DetectFrames identifies grocery items across several video frames and
// merges the per-frame detections. Frames run sequentially: one video's
// frames hitting the model in parallel would trip its rate limits.
func (h *Handler) DetectFrames(c *gin.Context) {
	var req struct {
		Frames []string `json:"frames" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Error()})
		return
	}
	if len(req.Frames) > maxFrames {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many frames"})
		return
	}

	perFrame := make([][]common.DetectedGroceryItem, 0, len(req.Frames))
	for i, frame := range req.Frames {
		input, err := h.imageSvc.Normalize(frame)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		raw, err := h.aiService.DetectIngredients(c.Request.Context(), input.Base64, input.MimeType)
		if err != nil {
			if common.IsQuotaExceeded(err) {
				respondAIError(c, err)
				return
			}
			// One bad frame should not sink the batch.
			common.LogWarn("frame analysis failed",
				zap.Int("frame", i),
				zap.Error(err),
			)
			continue
		}
		perFrame = append(perFrame, h.interpreter.VisionResponse(raw).Items)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": interpret.MergeDetections(perFrame...),
	})
}

func respondAIError(c *gin.Context, err error) {
	if ce, ok := err.(*common.CustomError); ok {
		c.JSON(ce.Status, gin.H{"error": ce.Message, "code": ce.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
