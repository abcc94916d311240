package extract

import (
	"net/url"
	"strings"
)

// videoOrSocialHosts are host fragments whose pages never carry trustworthy
// on-page ingredient lists.
var videoOrSocialHosts = []string{
	"youtube.com",
	"youtu.be",
	"tiktok.com",
	"instagram.com",
	"facebook.com",
	"fb.watch",
	"fb.com",
}

// IsVideoOrSocialURL reports whether the URL points at a video or social
// platform. Unparseable URLs are not.
func IsVideoOrSocialURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range videoOrSocialHosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// IsYouTubeVideoURL reports whether the URL is a public YouTube watch or
// short link, the forms the model accepts as direct video input.
func IsYouTubeVideoURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	switch host {
	case "www.youtube.com", "youtube.com":
		return u.Path == "/watch" && u.Query().Has("v")
	case "youtu.be":
		return len(u.Path) > 1
	}
	return false
}
