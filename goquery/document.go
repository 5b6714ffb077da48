// Package goquery implements article and listing extraction over parsed
// HTML using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Document is a parsed HTML page. Extractors only read from it.
type Document = goquery.Document

// NewDocument parses raw HTML into a Document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// Strategy extracts one candidate value from a document. It reports false
// when it found nothing usable.
type Strategy[T any] func(doc *Document) (T, bool)

// Cascade returns the value of the first strategy that succeeds, or the
// zero value when none does.
func Cascade[T any](doc *Document, strategies []Strategy[T]) T {
	for _, s := range strategies {
		if v, ok := s(doc); ok {
			return v
		}
	}
	var zero T
	return zero
}

// textOf returns the normalized text of the first element matching selector.
func textOf(selector string) Strategy[string] {
	return func(doc *Document) (string, bool) {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			return "", false
		}
		text := normalizeText(sel.Text())
		return text, text != ""
	}
}

// attrOf returns an attribute of the first element matching selector.
func attrOf(selector, attr string) Strategy[string] {
	return func(doc *Document) (string, bool) {
		v := strings.TrimSpace(doc.Find(selector).First().AttrOr(attr, ""))
		return v, v != ""
	}
}
