package goquery

import (
	"regexp"
	"strings"
)

var authorPrefix = regexp.MustCompile(`(?i)^(?:(?:par|by)\s+|author:\s*)`)

var authorStrategies = []Strategy[string]{
	authorText(".entry-author"),
	authorText(".post-author"),
	authorText(".author"),
	attrOf(`meta[name="author"]`, "content"),
	authorText(".byline"),
	authorText(`[rel="author"]`),
}

// ExtractAuthor returns the author's name without a leading "par", "by" or
// "author:" label.
func ExtractAuthor(doc *Document) string {
	return Cascade(doc, authorStrategies)
}

func authorText(selector string) Strategy[string] {
	return func(doc *Document) (string, bool) {
		text, ok := textOf(selector)(doc)
		if !ok {
			return "", false
		}
		name := strings.TrimSpace(authorPrefix.ReplaceAllString(text, ""))
		return name, name != ""
	}
}
