package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Ensure ListingParser implements harvest.ListingParser at compile time.
var _ harvest.ListingParser = (*ListingParser)(nil)

// ListingParser reads the category index and paginated category listings.
type ListingParser struct{}

// NewListingParser creates a new ListingParser.
func NewListingParser() *ListingParser {
	return &ListingParser{}
}

// ParseCategories returns every link of the index page's tag list. The
// name comes from the link's title attribute, falling back to its text.
func (p *ListingParser) ParseCategories(html, baseURL string) ([]harvest.Category, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	var categories []harvest.Category
	doc.Find("ul.tags-list").First().Find("a").Each(func(_ int, a *goquery.Selection) {
		href := resolveURL(base, a.AttrOr("href", ""))
		if href == "" {
			return
		}
		name, ok := a.Attr("title")
		if !ok {
			name = a.Text()
		}
		categories = append(categories, harvest.Category{
			Name: strings.TrimSpace(name),
			URL:  href,
		})
	})
	return categories, nil
}

// ParseArticleLinks returns the first link of each article teaser on a
// listing page, along with the number of teasers. Teasers without a link
// are counted but contribute no URL. Zero teasers marks the end of
// pagination.
func (p *ListingParser) ParseArticleLinks(html, pageURL string) ([]string, int, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, 0, harvest.Errorf(harvest.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := NewDocument(html)
	if err != nil {
		return nil, 0, err
	}

	links := []string{}
	teasers := doc.Find("article")
	teasers.Each(func(_ int, article *goquery.Selection) {
		if href := resolveURL(base, article.Find("a[href]").First().AttrOr("href", "")); href != "" {
			links = append(links, href)
		}
	})
	return links, teasers.Length(), nil
}
