package mock

import "github.com/fwojciec/harvest"

var (
	_ harvest.ArticleParser = (*ArticleParser)(nil)
	_ harvest.ListingParser = (*ListingParser)(nil)
)

// ArticleParser is a mock implementation of harvest.ArticleParser.
type ArticleParser struct {
	ParseArticleFn func(pageURL, html string) (*harvest.Article, error)
}

func (p *ArticleParser) ParseArticle(pageURL, html string) (*harvest.Article, error) {
	return p.ParseArticleFn(pageURL, html)
}

// ListingParser is a mock implementation of harvest.ListingParser.
type ListingParser struct {
	ParseCategoriesFn   func(html, baseURL string) ([]harvest.Category, error)
	ParseArticleLinksFn func(html, pageURL string) ([]string, int, error)
}

func (p *ListingParser) ParseCategories(html, baseURL string) ([]harvest.Category, error) {
	return p.ParseCategoriesFn(html, baseURL)
}

func (p *ListingParser) ParseArticleLinks(html, pageURL string) ([]string, int, error) {
	return p.ParseArticleLinksFn(html, pageURL)
}
