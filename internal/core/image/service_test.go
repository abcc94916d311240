package image

import (
	"bytes"
	"encoding/base64"
	goimage "image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNGBase64(t *testing.T) string {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNormalizeRawBase64(t *testing.T) {
	svc := NewService(1 << 20)
	encoded := tinyPNGBase64(t)

	input, err := svc.Normalize(encoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, input.Base64)
	assert.Equal(t, "image/png", input.MimeType)
}

func TestNormalizeDataURL(t *testing.T) {
	svc := NewService(1 << 20)
	encoded := tinyPNGBase64(t)

	input, err := svc.Normalize("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, input.Base64)
	assert.Equal(t, "image/png", input.MimeType)
}

func TestNormalizeDataURLMimeMismatch(t *testing.T) {
	// The mime type comes from the decoded bytes, not the data URL label.
	svc := NewService(1 << 20)
	encoded := tinyPNGBase64(t)

	input, err := svc.Normalize("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/png", input.MimeType)
}

func TestNormalizeEmpty(t *testing.T) {
	svc := NewService(1 << 20)

	_, err := svc.Normalize("")
	assert.Error(t, err)

	_, err = svc.Normalize("   ")
	assert.Error(t, err)
}

func TestNormalizeInvalidBase64(t *testing.T) {
	svc := NewService(1 << 20)

	_, err := svc.Normalize("not-base64!!!")
	assert.Error(t, err)
}

func TestNormalizeNotAnImage(t *testing.T) {
	svc := NewService(1 << 20)
	encoded := base64.StdEncoding.EncodeToString([]byte("plain text payload"))

	_, err := svc.Normalize(encoded)
	assert.Error(t, err)
}

func TestNormalizeSizeLimit(t *testing.T) {
	svc := NewService(4)
	encoded := tinyPNGBase64(t)

	_, err := svc.Normalize(encoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size exceeds")
}
