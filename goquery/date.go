package goquery

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order once month names have been replaced by
// their numbers.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"2/1/2006",
	"2 1 2006",
}

var dateNoise = regexp.MustCompile(`[^\p{L}\p{N}_\-/\s]`)

var frenchMonths = strings.NewReplacer(
	"janvier", "01",
	"février", "02",
	"mars", "03",
	"avril", "04",
	"mai", "05",
	"juin", "06",
	"juillet", "07",
	"août", "08",
	"septembre", "09",
	"octobre", "10",
	"novembre", "11",
	"décembre", "12",
)

var dateSelectors = []string{
	"time[datetime]",
	".entry-date",
	".post-date",
	".published",
	`meta[property="article:published_time"]`,
}

var dateStrategies = func() []Strategy[string] {
	s := make([]Strategy[string], 0, len(dateSelectors))
	for _, sel := range dateSelectors {
		s = append(s, dateFrom(sel))
	}
	return s
}()

// ExtractDate returns the publication date as YYYY-MM-DD, or "" when no
// candidate parses.
func ExtractDate(doc *Document) string {
	return Cascade(doc, dateStrategies)
}

func dateFrom(selector string) Strategy[string] {
	return func(doc *Document) (string, bool) {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			return "", false
		}
		raw := el.AttrOr("datetime", "")
		if raw == "" {
			raw = el.AttrOr("content", "")
		}
		if raw == "" {
			raw = el.Text()
		}
		return ParseDate(raw)
	}
}

// ParseDate normalizes a raw date string such as "2024-01-15T10:30:00+01:00"
// or "15 janvier 2024" to YYYY-MM-DD. It reports false when no layout
// matches.
func ParseDate(raw string) (string, bool) {
	s, _, _ := strings.Cut(strings.TrimSpace(raw), "T")
	s = dateNoise.ReplaceAllString(s, "")
	s = frenchMonths.Replace(strings.ToLower(s))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
