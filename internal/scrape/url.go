package scrape

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeJobURL validates a LinkedIn job URL and rewrites search-style
// URLs to their canonical detail-page form. Search URLs carry the listing
// ID in the currentJobId query parameter; its absence is fatal.
// Normalization runs before any browser session is opened.
func NormalizeJobURL(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", &InvalidURLError{URL: rawURL, Message: "malformed URL"}
	}

	if !strings.Contains(strings.ToLower(parsed.Host), "linkedin.com") {
		return "", &InvalidURLError{URL: rawURL, Message: "not a LinkedIn URL"}
	}

	switch {
	case strings.HasPrefix(parsed.Path, "/jobs/search"):
		jobID := parsed.Query().Get("currentJobId")
		if jobID == "" {
			return "", &InvalidURLError{
				URL:     rawURL,
				Message: "search URL provided, but currentJobId parameter is missing",
			}
		}
		return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s/", jobID), nil
	case strings.HasPrefix(parsed.Path, "/jobs/view/"):
		return parsed.String(), nil
	default:
		return "", &InvalidURLError{
			URL:     rawURL,
			Message: "not a jobs/search or jobs/view URL",
		}
	}
}

// IsHTTPURL reports whether the input looks like a well-formed http(s) URL.
// Used to classify a job description input as URL vs file path.
func IsHTTPURL(input string) bool {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return false
	}
	parsed, err := url.Parse(trimmed)
	return err == nil && parsed.Host != ""
}
