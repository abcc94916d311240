// Package image normalizes client-supplied image payloads for the vision
// API.
package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"regexp"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Input is a validated image payload ready for the vision API.
type Input struct {
	Base64   string
	MimeType string
}

// Service validates and normalizes image input.
type Service struct {
	maxSizeBytes int64
}

// NewService creates an image service with the given payload size cap.
func NewService(maxSizeBytes int64) *Service {
	return &Service{maxSizeBytes: maxSizeBytes}
}

var dataURL = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// Normalize accepts a raw base64 string or a data URL and returns the raw
// base64 with its mime type. The payload must decode as a supported image
// (JPEG, PNG, GIF, WebP) and fit the size cap.
func (s *Service) Normalize(imageData string) (*Input, error) {
	trimmed := strings.TrimSpace(imageData)
	if trimmed == "" {
		return nil, fmt.Errorf("image data is empty")
	}

	encoded := trimmed
	if m := dataURL.FindStringSubmatch(trimmed); m != nil {
		encoded = m[2]
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	if int64(len(decoded)) > s.maxSizeBytes {
		return nil, fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}

	_, format, err := image.Decode(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	mimeType, ok := supportedFormats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	return &Input{Base64: encoded, MimeType: mimeType}, nil
}

var supportedFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}
