package harvest

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// It backs the optional content fallback used when the site-specific
// content selectors find nothing.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// ArticleParser turns a fetched article page into an Article.
type ArticleParser interface {
	// ParseArticle extracts every article field from html.
	// Missing fields are left empty. Returns EINVALID when no title
	// can be found, since such an article cannot be stored.
	ParseArticle(pageURL, html string) (*Article, error)
}

// ListingParser reads the category index and category listing pages.
type ListingParser interface {
	// ParseCategories returns the categories linked from the index page,
	// with URLs resolved against baseURL.
	ParseCategories(html, baseURL string) ([]Category, error)

	// ParseArticleLinks returns one URL per linked article teaser on a
	// listing page, resolved against pageURL, in document order, and the
	// number of teasers on the page.
	ParseArticleLinks(html, pageURL string) (links []string, articles int, err error)
}
