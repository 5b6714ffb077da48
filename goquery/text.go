package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	entityReplacer = strings.NewReplacer("&nbsp;", " ", "&amp;", "&")
	multiNewline   = regexp.MustCompile(`\n{3,}`)
	multiBlank     = regexp.MustCompile(`[ \t]+`)
)

// normalizeText collapses whitespace runs to single spaces, trims, and
// decodes the two entities that survive double-escaped markup.
func normalizeText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(entityReplacer.Replace(s))
}

// truncateRunes cuts s to n runes and appends an ellipsis when it was longer.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// tidyBody applies the final cleanup to joined content blocks.
func tidyBody(s string) string {
	s = multiNewline.ReplaceAllString(s, "\n\n")
	s = multiBlank.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
