package scrape

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	brRe       = regexp.MustCompile(`(?i)<br\s*/?>`)
	liCloseRe  = regexp.MustCompile(`(?i)</li>`)
	liOpenRe   = regexp.MustCompile(`(?i)<li[^>]*>`)
	blockEndRe = regexp.MustCompile(`(?i)</p>|</h[1-6]>`)
	strongRe   = regexp.MustCompile(`(?i)</?strong>`)
	anchorRe   = regexp.MustCompile(`(?is)<a[^>]*?href="([^"]*)"[^>]*>(.*?)</a>`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n\s*\n`)
)

// CleanHTMLFragment converts a description HTML fragment to readable plain
// text: line breaks for block tags, bullet markers for list items, bold
// markers for emphasis, link text with its URL, then tag stripping,
// whitespace collapsing, and entity unescaping.
func CleanHTMLFragment(fragment string) string {
	if fragment == "" {
		return ""
	}

	text := brRe.ReplaceAllString(fragment, "\n")
	text = liCloseRe.ReplaceAllString(text, "\n")
	text = liOpenRe.ReplaceAllString(text, "* ")
	text = blockEndRe.ReplaceAllString(text, "\n\n")
	text = strongRe.ReplaceAllString(text, "**")
	text = anchorRe.ReplaceAllString(text, "$2 ($1)")
	text = tagRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = html.UnescapeString(text)

	return strings.TrimSpace(text)
}

// VisibleText extracts the plain visible text of an HTML fragment.
// Fallback for fragments the markup cleanup cannot handle.
func VisibleText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	lines := strings.Split(doc.Text(), "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
