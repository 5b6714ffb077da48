package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/cron"
	"github.com/fwojciec/harvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   harvest.Config
	DB       *sqlite.DB
	Articles harvest.ArticleService

	// NewFetcher builds the page fetcher for a run from the effective
	// configuration.
	NewFetcher func(cfg harvest.Config) harvest.Fetcher

	Scheduler *cron.Scheduler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB         string `name:"db" env:"HARVEST_DB" type:"path" help:"Database path (default: $XDG_DATA_HOME/harvest/harvest.db)"`
	ConfigFile string `name:"config" env:"HARVEST_CONFIG" type:"path" help:"Config file (default: $XDG_CONFIG_HOME/harvest/config.yaml)"`
	BaseURL    string `name:"base-url" env:"HARVEST_BASE_URL" help:"Site to crawl"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`

	Crawl      CrawlCmd      `cmd:"" help:"Crawl categories and store new articles"`
	Categories CategoriesCmd `cmd:"" help:"List the categories found on the category index"`
	List       ListCmd       `cmd:"" help:"List stored articles"`
	Show       ShowCmd       `cmd:"" help:"Show a stored article"`
	Feed       FeedCmd       `cmd:"" help:"Write stored articles as an RSS feed"`
	Export     ExportCmd     `cmd:"" help:"Write stored articles as markdown files"`
	Config     ConfigCmd     `cmd:"" help:"Print the effective configuration"`
}

// CrawlCmd is the "crawl" subcommand. Zero or empty flag values keep the
// configured setting.
type CrawlCmd struct {
	MaxCategories     int             `env:"HARVEST_MAX_CATEGORIES" help:"Number of categories to visit"`
	MaxPages          int             `env:"HARVEST_MAX_PAGES" help:"Listing pages per category"`
	MaxArticles       int             `env:"HARVEST_MAX_ARTICLES" help:"Articles per category"`
	ListingDelay      string          `env:"HARVEST_LISTING_DELAY" help:"Wait between listing pages (e.g. 1s)"`
	ArticleDelay      string          `env:"HARVEST_ARTICLE_DELAY" help:"Wait between article pages (e.g. 2s)"`
	CategoryDelay     string          `env:"HARVEST_CATEGORY_DELAY" help:"Wait between categories (e.g. 3s)"`
	RetryDelays       []time.Duration `env:"HARVEST_RETRY_DELAYS" help:"Waits between fetch attempts (e.g. 2s,5s)"`
	RequestsPerSecond float64         `name:"rps" env:"HARVEST_RPS" help:"Cap on requests per second"`
	RespectRobots     bool            `env:"HARVEST_RESPECT_ROBOTS" help:"Skip URLs excluded by robots.txt"`
	ContentFallback   bool            `env:"HARVEST_CONTENT_FALLBACK" help:"Use readability when no content region matches"`
	PositionalImages  bool            `help:"Number images by position in the article, keeping gaps"`
	Schedule          string          `env:"HARVEST_SCHEDULE" help:"Repeat the crawl on a cron schedule (e.g. \"0 6 * * *\")"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Category    string `short:"c" help:"Only articles of this category (case-insensitive)"`
	Subcategory string `short:"s" help:"Only articles tagged with this subcategory (case-insensitive)"`
	Limit       int    `short:"n" default:"50" help:"Maximum number of articles"`
	Offset      int    `help:"Number of articles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Title string `arg:"" help:"Exact article title"`
	JSON  bool   `help:"Print the article as JSON"`
}

// FeedCmd is the "feed" subcommand.
type FeedCmd struct {
	Output   string `short:"o" type:"path" help:"Output file (default: stdout)"`
	Category string `short:"c" help:"Only articles of this category"`
	Limit    int    `short:"n" default:"50" help:"Maximum number of items"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir      string `arg:"" type:"path" help:"Target directory, replaced on success"`
	Category string `short:"c" help:"Only articles of this category"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct{}
