package harvest

import (
	"net/url"
	"time"
)

// Default crawl settings for the reference site.
const (
	DefaultBaseURL                = "https://www.blogdumoderateur.com"
	DefaultCategoryIndexPath      = "/liste-des-dossiers/"
	DefaultUserAgent              = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout                = 10 * time.Second
	DefaultMaxCategories          = 5
	DefaultMaxPagesPerCategory    = 3
	DefaultMaxArticlesPerCategory = 15
	DefaultListingDelay           = 1 * time.Second
	DefaultArticleDelay           = 2 * time.Second
	DefaultCategoryDelay          = 3 * time.Second
)

// Config holds the crawl settings shared by the fetcher, parsers and
// crawler. The zero value is not usable; start from DefaultConfig.
type Config struct {
	BaseURL           string        `yaml:"base_url"`
	CategoryIndexPath string        `yaml:"category_index_path"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`

	MaxCategories          int `yaml:"max_categories"`
	MaxPagesPerCategory    int `yaml:"max_pages_per_category"`
	MaxArticlesPerCategory int `yaml:"max_articles_per_category"`

	ListingDelay  time.Duration `yaml:"listing_delay"`
	ArticleDelay  time.Duration `yaml:"article_delay"`
	CategoryDelay time.Duration `yaml:"category_delay"`

	// RetryDelays lists the waits between fetch attempts. Empty means a
	// single attempt per URL.
	RetryDelays []time.Duration `yaml:"retry_delays"`

	// RequestsPerSecond caps the request rate per domain on top of the
	// fixed delays. Zero disables the cap.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	RespectRobots bool `yaml:"respect_robots"`

	// ContentFallback enables readability-based extraction when none of
	// the content selectors match.
	ContentFallback bool `yaml:"content_fallback"`
}

// DefaultConfig returns the settings used against the reference site.
func DefaultConfig() Config {
	return Config{
		BaseURL:                DefaultBaseURL,
		CategoryIndexPath:      DefaultCategoryIndexPath,
		UserAgent:              DefaultUserAgent,
		Timeout:                DefaultTimeout,
		MaxCategories:          DefaultMaxCategories,
		MaxPagesPerCategory:    DefaultMaxPagesPerCategory,
		MaxArticlesPerCategory: DefaultMaxArticlesPerCategory,
		ListingDelay:           DefaultListingDelay,
		ArticleDelay:           DefaultArticleDelay,
		CategoryDelay:          DefaultCategoryDelay,
	}
}

// CategoryIndexURL returns the absolute URL of the category index page.
func (c Config) CategoryIndexURL() string {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return c.BaseURL + c.CategoryIndexPath
	}
	ref, err := url.Parse(c.CategoryIndexPath)
	if err != nil {
		return c.BaseURL + c.CategoryIndexPath
	}
	return base.ResolveReference(ref).String()
}

// Validate returns an error if the configuration cannot drive a crawl.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if c.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "base URL must be an absolute URL, got %q", c.BaseURL)
	}
	if c.MaxCategories <= 0 {
		return Errorf(EINVALID, "max categories must be positive")
	}
	if c.MaxPagesPerCategory <= 0 {
		return Errorf(EINVALID, "max pages per category must be positive")
	}
	if c.MaxArticlesPerCategory <= 0 {
		return Errorf(EINVALID, "max articles per category must be positive")
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	if c.ListingDelay < 0 || c.ArticleDelay < 0 || c.CategoryDelay < 0 {
		return Errorf(EINVALID, "delays cannot be negative")
	}
	for _, d := range c.RetryDelays {
		if d < 0 {
			return Errorf(EINVALID, "retry delays cannot be negative")
		}
	}
	if c.RequestsPerSecond < 0 {
		return Errorf(EINVALID, "requests per second cannot be negative")
	}
	return nil
}
