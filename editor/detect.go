package editor

import (
	"net/url"
	"regexp"
	"strings"
)

var imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)$`)

// imageHosts are services whose URLs are treated as images even without a
// recognizable file extension.
var imageHosts = []string{"unsplash.com", "imgur.com"}

// IsYouTubeURL reports whether raw looks like a YouTube link.
func IsYouTubeURL(raw string) bool {
	return strings.Contains(raw, "youtube.com") || strings.Contains(raw, "youtu.be")
}

// IsImageURL reports whether raw looks like a direct image link.
func IsImageURL(raw string) bool {
	if imageExtPattern.MatchString(raw) {
		return true
	}
	for _, host := range imageHosts {
		if strings.Contains(raw, host) {
			return true
		}
	}
	return false
}

// ExtractVideoID pulls the video identifier out of a YouTube URL: the last
// path segment for youtu.be short links, the v query parameter for
// youtube.com. Returns "" when no identifier can be found.
func ExtractVideoID(raw string) string {
	if strings.Contains(raw, "youtu.be") {
		segment := raw
		if i := strings.LastIndex(segment, "/"); i >= 0 {
			segment = segment[i+1:]
		}
		if i := strings.Index(segment, "?"); i >= 0 {
			segment = segment[:i]
		}
		return segment
	}

	if strings.Contains(raw, "youtube.com") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return u.Query().Get("v")
	}

	return ""
}

// LastToken returns the final whitespace-delimited token of text, or ""
// when the text is blank. Typing-time URL detection operates on this token.
func LastToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
