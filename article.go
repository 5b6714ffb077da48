package harvest

import (
	"context"
	"time"
)

// Image is a content image discovered inside an article body.
// Width and Height hold the raw attribute values, empty when absent.
type Image struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	Alt         string `json:"alt"`
	Width       string `json:"width"`
	Height      string `json:"height"`
}

// Article is a normalized blog article extracted from a single page.
type Article struct {
	ID              string           `json:"id"`
	URL             string           `json:"url"`
	Title           string           `json:"title"`
	Thumbnail       string           `json:"thumbnail"`
	Category        string           `json:"category"`
	Subcategories   []string         `json:"subcategories"`
	TableOfContents []string         `json:"tableOfContents"`
	Summary         string           `json:"summary"`
	PublicationDate string           `json:"publicationDate"`
	Author          string           `json:"author"`
	Content         string           `json:"content"`
	ContentHash     string           `json:"contentHash"`
	Images          map[string]Image `json:"images"`
	SourceCategory  string           `json:"sourceCategory"`
	ScrapedAt       time.Time        `json:"scrapedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	return nil
}

// ArticleService represents a service for managing stored articles.
// Titles are unique: the store never holds two articles with the same title.
type ArticleService interface {
	// FindArticleByTitle retrieves an article by its exact title.
	// Returns ENOTFOUND if no article has that title.
	FindArticleByTitle(ctx context.Context, title string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// CountArticles returns the number of stored articles.
	CountArticles(ctx context.Context) (int, error)

	// CreateArticle stores a new article, assigning its ID and content hash.
	// Returns ECONFLICT if an article with the same title already exists.
	CreateArticle(ctx context.Context, article *Article) error
}

// ArticleFilter represents a filter for FindArticles.
// Category and Subcategory match case-insensitively.
type ArticleFilter struct {
	Category    *string `json:"category"`
	Subcategory *string `json:"subcategory"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
