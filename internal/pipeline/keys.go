package pipeline

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

const maxKeyLength = 50

var keyCharRe = regexp.MustCompile(`[^a-z0-9-]+`)

// SanitizeArtifactKey turns an arbitrary source label (file name or URL)
// into a short lowercase slug suitable as an artifact key suffix.
// URLs are reduced to their last one or two path segments first.
func SanitizeArtifactKey(source string) string {
	s := strings.TrimSpace(source)

	if u, err := url.Parse(s); err == nil && u.Host != "" {
		trimmed := strings.Trim(u.Path, "/")
		if trimmed != "" {
			segments := strings.Split(trimmed, "/")
			if len(segments) > 2 {
				segments = segments[len(segments)-2:]
			}
			s = strings.Join(segments, "-")
		} else {
			s = u.Host
		}
	} else {
		s = path.Base(s)
	}

	s = strings.ToLower(s)
	s = keyCharRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxKeyLength {
		s = strings.Trim(s[:maxKeyLength], "-")
	}
	if s == "" {
		return "source"
	}
	return s
}
