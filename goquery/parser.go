package goquery

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Ensure Parser implements harvest.ArticleParser at compile time.
var _ harvest.ArticleParser = (*Parser)(nil)

var titleStrategies = []Strategy[string]{
	textOf("h1.entry-title"),
	textOf("h1.post-title"),
	textOf("h1"),
	textOf(".entry-title"),
	textOf(".post-title"),
}

const (
	tagRegion         = "#section-meta, .meta-container"
	tagLinks          = ".tags-list a.post-tags"
	thumbnailFallback = `meta[property="og:image"]`
)

var thumbnailSelectors = []string{
	".post-thumbnail img",
	".entry-image img",
	".featured-image img",
}

var categoryFallbacks = []Strategy[string]{
	textOf(".favtag"),
	textOf(".post-category"),
	textOf(".entry-category"),
	textOf(".category"),
}

// Parser assembles an Article from an article page.
type Parser struct {
	// BaseURL completes root-relative image and thumbnail URLs.
	BaseURL string

	// Images numbers extracted images. Defaults to IndexDense.
	Images ImageIndexing

	// Fallback and Converter, when both set, produce the body for pages
	// where none of the content regions match. Optional.
	Fallback  harvest.Extractor
	Converter harvest.Converter

	// Logger is optional.
	Logger *slog.Logger

	// Now returns the scrape timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewParser creates a Parser for pages of the site at baseURL.
func NewParser(baseURL string) *Parser {
	return &Parser{BaseURL: baseURL}
}

// ParseArticle extracts all article fields from html.
// Returns EINVALID when the page has no title.
func (p *Parser) ParseArticle(pageURL, html string) (*harvest.Article, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	title := Cascade(doc, titleStrategies)
	if title == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "no title found at %s", pageURL)
	}

	category, subcategories := extractCategories(doc)

	content := ExtractContent(doc)
	if content == "" {
		content = p.fallbackContent(pageURL, html)
	}

	images := &ImageExtractor{BaseURL: p.BaseURL, Indexing: p.Images, Logger: p.Logger}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	return &harvest.Article{
		URL:             pageURL,
		Title:           title,
		Thumbnail:       p.extractThumbnail(doc),
		Category:        category,
		Subcategories:   subcategories,
		TableOfContents: ExtractTableOfContents(doc),
		Summary:         ExtractSummary(doc),
		PublicationDate: ExtractDate(doc),
		Author:          ExtractAuthor(doc),
		Content:         content,
		Images:          images.Extract(doc),
		ScrapedAt:       now().UTC(),
	}, nil
}

func (p *Parser) extractThumbnail(doc *Document) string {
	for _, sel := range thumbnailSelectors {
		if img := doc.Find(sel).First(); img.Length() > 0 {
			if src := imageSource(img); src != "" {
				return absoluteURL(p.BaseURL, src)
			}
		}
	}
	if v := strings.TrimSpace(doc.Find(thumbnailFallback).First().AttrOr("content", "")); v != "" {
		return absoluteURL(p.BaseURL, v)
	}
	return ""
}

// fallbackContent runs the generic extractor and renders its output as
// markdown. Failures leave the body empty.
func (p *Parser) fallbackContent(pageURL, html string) string {
	if p.Fallback == nil || p.Converter == nil {
		return ""
	}
	res, err := p.Fallback.Extract(html)
	if err != nil || strings.TrimSpace(res.ContentHTML) == "" {
		p.debug("content fallback found nothing", "url", pageURL, "err", err)
		return ""
	}
	md, err := p.Converter.Convert(res.ContentHTML)
	if err != nil {
		p.debug("content fallback conversion failed", "url", pageURL, "err", err)
		return ""
	}
	var blocks []string
	for _, block := range strings.Split(md, "\n\n") {
		if b := normalizeText(block); b != "" {
			blocks = append(blocks, b)
		}
	}
	return tidyBody(strings.Join(blocks, "\n\n"))
}

func (p *Parser) debug(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Debug(msg, args...)
	}
}

// extractCategories reads the tag list of the metadata block. The first tag
// is the category, later distinct tags are subcategories. When the block
// yields no category, generic category selectors are tried instead.
func extractCategories(doc *Document) (string, []string) {
	var tags []string
	doc.Find(tagRegion).First().Find(tagLinks).Each(func(_ int, a *goquery.Selection) {
		if t := normalizeText(a.Text()); t != "" {
			tags = append(tags, t)
		}
	})

	subcategories := []string{}
	if len(tags) == 0 {
		return Cascade(doc, categoryFallbacks), subcategories
	}

	category := tags[0]
	seen := map[string]bool{category: true}
	for _, t := range tags[1:] {
		if seen[t] {
			continue
		}
		seen[t] = true
		subcategories = append(subcategories, t)
	}
	return category, subcategories
}
