package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractField resolves a candidate chain against an item fragment and returns
// the value of the first candidate that is present and non-empty. Pure function
// of its inputs; a miss on every candidate reports ok=false.
func ExtractField(s *goquery.Selection, spec FieldSpec) (string, bool) {
	for _, cand := range spec {
		sel := s.Find(cand.Selector)
		if sel.Length() == 0 {
			continue
		}

		if cand.Attr != "" {
			if value, exists := sel.First().Attr(cand.Attr); exists {
				value = strings.TrimSpace(value)
				if value != "" {
					return value, true
				}
			}
			continue
		}

		text := strings.TrimSpace(sel.First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}
