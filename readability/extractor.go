// Package readability extracts the main content of a page when the
// site-specific content selectors find nothing.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements harvest.Extractor at compile time.
var _ harvest.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability. Relative links and image sources in the
// extracted content are resolved against the base URL.
type Extractor struct {
	base *url.URL
}

// NewExtractor creates a new Extractor for pages under baseURL. An empty or
// unparsable baseURL leaves relative references untouched.
func NewExtractor(baseURL string) *Extractor {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		base = nil
	}
	return &Extractor{base: base}
}

// Extract returns the page title and the main content as HTML.
func (e *Extractor) Extract(rawHTML string) (*harvest.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.base)
	if err != nil {
		return nil, err
	}

	return &harvest.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
