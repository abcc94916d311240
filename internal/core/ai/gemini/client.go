// Package gemini is a thin client for the Gemini generateContent API.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta"

const (
	imageMaxOutputTokens = 2048
	videoMaxOutputTokens = 4096

	// Low temperature keeps the JSON output stable across retries.
	generationTemperature = 0.2
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	client *resty.Client
	config *config.GeminiConfig
}

// NewClient creates a Gemini client from config.
func NewClient(cfg *config.GeminiConfig) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{client: client, config: cfg}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type fileData struct {
	FileURI string `json:"file_uri"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
	FileData   *fileData   `json:"file_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type request struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type response struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AnalyzeImage sends an inline image with an optional context text and the
// prompt. The image part goes first, context in the middle, prompt last.
func (c *Client) AnalyzeImage(ctx context.Context, base64Image, mimeType, contextText, prompt string) (string, error) {
	parts := []part{
		{InlineData: &inlineData{MimeType: mimeType, Data: base64Image}},
	}
	if text := strings.TrimSpace(contextText); text != "" {
		if len(text) > 1500 {
			text = text[:1500]
		}
		parts = append(parts, part{Text: "Optional context from the page:\n" + text + "\n\n"})
	}
	parts = append(parts, part{Text: prompt})

	return c.generate(ctx, parts, imageMaxOutputTokens)
}

// AnalyzeVideo sends a video URL for full analysis. The API requires the
// video part before the text prompt.
func (c *Client) AnalyzeVideo(ctx context.Context, videoURL, prompt string) (string, error) {
	parts := []part{
		{FileData: &fileData{FileURI: videoURL}},
		{Text: prompt},
	}
	return c.generate(ctx, parts, videoMaxOutputTokens)
}

func (c *Client) generate(ctx context.Context, parts []part, maxTokens int) (string, error) {
	body := request{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:      generationTemperature,
			MaxOutputTokens:  maxTokens,
			ResponseMimeType: "application/json",
		},
	}

	start := time.Now()
	var result response
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.config.APIKey).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/models/" + c.config.Model + ":generateContent")
	if err != nil {
		common.LogError("Failed to send request to AI service",
			zap.Error(err),
			zap.String("model", c.config.Model),
		)
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		common.LogWarn("AI quota exceeded",
			zap.String("model", c.config.Model),
		)
		return "", common.ErrAIQuotaExceeded
	}
	if resp.IsError() {
		message := ""
		if result.Error != nil {
			message = result.Error.Message
		}
		common.LogError("AI service returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.config.Model),
			zap.String("message", message),
		)
		return "", fmt.Errorf("AI service error (status %d): %s", resp.StatusCode(), message)
	}
	if result.Error != nil && result.Error.Message != "" {
		return "", fmt.Errorf("AI service error: %s", result.Error.Message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		common.LogError("Empty candidates in AI service response",
			zap.String("model", c.config.Model),
		)
		return "", fmt.Errorf("empty candidates in response")
	}
	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		common.LogError("Empty content in AI service response",
			zap.String("model", c.config.Model),
			zap.String("finish_reason", result.Candidates[0].FinishReason),
		)
		return "", fmt.Errorf("empty content in response")
	}

	common.LogInfo("Successfully generated response from AI service",
		zap.String("model", c.config.Model),
		zap.Int("content_length", len(text)),
		zap.Duration("duration", time.Since(start)),
	)
	return text, nil
}
