package textmatch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockTags end a line when a job description is flattened to text.
const blockTags = "p, li, br, div, h1, h2, h3, h4, h5, h6, tr"

// PlainText flattens an HTML job description into text: scripts and styles are
// dropped, block elements become line breaks and runs of spaces collapse.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find(blockTags).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
