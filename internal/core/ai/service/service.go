// Package service fronts the Gemini client with response caching.
package service

import (
	"context"
	"time"

	"fridgechef/internal/core/ai"
	"fridgechef/internal/core/ai/cache"
	"fridgechef/internal/core/ai/gemini"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service runs model calls through the cache.
type Service struct {
	config *config.Config
	client *gemini.Client
	cache  *cache.Service
}

// NewService creates an AI service backed by Gemini and the given cache.
func NewService(cfg *config.Config, cacheService *cache.Service) *Service {
	return &Service{
		config: cfg,
		client: gemini.NewClient(&cfg.Gemini),
		cache:  cacheService,
	}
}

// AnalyzeVideo runs full-video recipe analysis on a public video URL and
// returns the raw model text.
func (s *Service) AnalyzeVideo(ctx context.Context, videoURL string) (string, error) {
	return s.withCache(ctx, ai.VideoPrompt, videoURL, func() (string, error) {
		return s.client.AnalyzeVideo(ctx, videoURL, ai.VideoPrompt)
	})
}

// AnalyzeImage runs aisle-labeled ingredient extraction on a preview image
// with optional page text as context.
func (s *Service) AnalyzeImage(ctx context.Context, base64Image, mimeType, contextText string) (string, error) {
	media := mimeType + "\x00" + base64Image + "\x00" + contextText
	return s.withCache(ctx, ai.PreviewImagePrompt, media, func() (string, error) {
		return s.client.AnalyzeImage(ctx, base64Image, mimeType, contextText, ai.PreviewImagePrompt)
	})
}

// DetectIngredients runs ingredient detection on a single frame or photo.
func (s *Service) DetectIngredients(ctx context.Context, base64Image, mimeType string) (string, error) {
	media := mimeType + "\x00" + base64Image
	return s.withCache(ctx, ai.FrameDetectionPrompt, media, func() (string, error) {
		return s.client.AnalyzeImage(ctx, base64Image, mimeType, "", ai.FrameDetectionPrompt)
	})
}

func (s *Service) withCache(ctx context.Context, prompt, media string, call func() (string, error)) (string, error) {
	if resp, err := s.cache.Get(ctx, prompt, media); err == nil {
		common.LogDebug("AI cache hit", zap.Int("content_length", len(resp.Content)))
		return resp.Content, nil
	}

	start := time.Now()
	content, err := call()
	common.LogAICall(time.Since(start), err, requestIDFrom(ctx))
	if err != nil {
		return "", err
	}

	s.cache.Set(ctx, prompt, media, &ai.Response{Content: content})
	return content, nil
}

// requestIDFrom recovers the request ID when the context originated from a
// gin handler.
func requestIDFrom(ctx context.Context) string {
	if c, ok := ctx.(*gin.Context); ok {
		return requestid.Get(c)
	}
	return ""
}
