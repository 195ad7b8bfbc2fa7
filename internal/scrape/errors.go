// Package scrape fetches job listing descriptions by driving a headless
// browser against the job board's detail pages.
package scrape

import "fmt"

// InvalidURLError indicates the listing URL is malformed or does not point
// at a recognizable job listing.
type InvalidURLError struct {
	URL     string
	Message string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid job URL %q: %s", e.URL, e.Message)
}

// ScrapeError indicates the browser session failed to produce the
// description text (timeout, missing element, empty content).
type ScrapeError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape failed for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scrape failed for %s: %s", e.URL, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}
