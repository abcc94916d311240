package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"fridgechef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// browserHeaders make the fetch look like a real browser. Several hosts
// (Instagram, TikTok, Facebook) serve empty or stripped pages to non-browser
// agents, so this is required behavior, not an optimization.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// Fetcher retrieves pages and preview images with browser-like headers.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(browserHeaders)
	return &Fetcher{client: client}
}

// FetchPage retrieves a page body. Non-2xx status or a transport failure is
// an error; this is the only fetch in the pipeline whose failure is fatal to
// an extraction.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("page fetch returned HTTP %d", resp.StatusCode())
	}
	return string(resp.Body()), nil
}

// FetchImageBase64 retrieves an image and returns it base64-encoded. Any
// failure returns empty; a missing preview image only skips one strategy.
func (f *Fetcher) FetchImageBase64(ctx context.Context, imageURL string) string {
	resp, err := f.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		common.LogWarn("preview image fetch failed", zap.Error(err))
		return ""
	}
	if resp.IsError() {
		common.LogWarn("preview image fetch failed",
			zap.Int("status", resp.StatusCode()),
		)
		return ""
	}
	body := resp.Body()
	if len(body) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(body)
}
