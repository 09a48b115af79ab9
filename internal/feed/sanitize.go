package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanBody converts an HTML listing body to plain text. Struck-through
// markup is removed first: sellers strike lines for items that are sold or
// withdrawn, and those must not reach the extractor as live offers.
func CleanBody(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Not parseable as HTML; treat it as already-plain text.
		return normalizeWhitespace(html)
	}

	doc.Find("del, s, strike").Remove()

	// Keep line structure so the extractor sees one offer per line.
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div, tr").AppendHtml("\n")

	return normalizeWhitespace(doc.Text())
}

// normalizeWhitespace collapses runs of blank lines and trims each line.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
