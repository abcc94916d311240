package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVideoOrSocialURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc123", true},
		{"https://youtu.be/abc123", true},
		{"https://www.tiktok.com/@chef/video/123", true},
		{"https://www.instagram.com/reel/xyz/", true},
		{"https://www.facebook.com/watch/?v=123", true},
		{"https://fb.watch/abc/", true},
		{"https://m.youtube.com/watch?v=abc", true},
		{"https://www.seriouseats.com/pasta-recipe", false},
		{"https://example.com/youtube.com-article", false},
		{"://bad url", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsVideoOrSocialURL(tt.url), tt.url)
	}
}

func TestIsYouTubeVideoURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc123", true},
		{"https://youtube.com/watch?v=abc123", true},
		{"https://youtu.be/abc123", true},
		{"https://www.youtube.com/", false},
		{"https://www.youtube.com/channel/xyz", false},
		{"https://youtu.be/", false},
		{"https://www.tiktok.com/@chef/video/123", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsYouTubeVideoURL(tt.url), tt.url)
	}
}
