package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// FirstText returns the cleaned text of the first non-empty match among
// the candidate selectors.
func FirstText(doc *goquery.Document, candidates ...string) string {
	for _, sel := range candidates {
		if t := CleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// Statements collects the cleaned, non-empty text of every node matching sel,
// in document order.
func Statements(doc *goquery.Document, sel string) []string {
	var out []string
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		if t := CleanText(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}
