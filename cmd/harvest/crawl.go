package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/cron"
	"github.com/fwojciec/harvest/goquery"
	"github.com/fwojciec/harvest/htmltomarkdown"
	"github.com/fwojciec/harvest/readability"
	hslog "github.com/fwojciec/harvest/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg, err := c.apply(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if c.Schedule != "" {
		if err := cron.ValidateSchedule(c.Schedule); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Crawling on schedule %q. Press Ctrl+C to stop.\n", c.Schedule)
		return deps.Scheduler.Run(deps.Ctx, c.Schedule, func(ctx context.Context) error {
			return c.crawlOnce(ctx, deps, cfg)
		})
	}

	err = c.crawlOnce(deps.Ctx, deps, cfg)
	if harvest.ErrorCode(err) == harvest.EINTERRUPTED {
		fmt.Fprintln(deps.Stdout, "Crawl interrupted.")
		return nil
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	return nil
}

// crawlOnce runs one crawl, stores new articles and prints the run report.
// The report is printed even when the run ends early.
func (c *CrawlCmd) crawlOnce(ctx context.Context, deps *Dependencies, cfg harvest.Config) error {
	fetcher := deps.NewFetcher(cfg)
	defer fetcher.Close()

	var state harvest.CrawlState
	logProgress := hslog.ProgressLogger(deps.Logger)
	crawler := c.newCrawler(deps, cfg, fetcher)
	crawler.Progress = func(e crawl.ProgressEvent) {
		if e.Type == crawl.ProgressFinished {
			state = e.State
		}
		logProgress(e)
	}

	// Store calls outlive cancellation so the article in flight when the
	// run is interrupted is still saved.
	result, err := crawl.Ingest(context.WithoutCancel(ctx), crawler.Crawl(ctx), deps.Articles, hslog.IngestLogger(deps.Logger))

	fmt.Fprintf(deps.Stdout, "Visited %d categories, extracted %d articles\n", state.Categories, state.Articles)
	fmt.Fprintf(deps.Stdout, "  Inserted %d, duplicates %d, failed %d\n", result.Inserted, result.Duplicates, result.Failed)

	return err
}

func (c *CrawlCmd) newCrawler(deps *Dependencies, cfg harvest.Config, fetcher harvest.Fetcher) *crawl.Crawler {
	parser := goquery.NewParser(cfg.BaseURL)
	parser.Logger = deps.Logger
	if c.PositionalImages {
		parser.Images = goquery.IndexPositional
	}
	if cfg.ContentFallback {
		parser.Fallback = readability.NewExtractor(cfg.BaseURL)
		parser.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(cfg.BaseURL))
	}

	crawler := &crawl.Crawler{
		Fetcher:  hslog.NewLoggingFetcher(fetcher, deps.Logger),
		Listings: goquery.NewListingParser(),
		Articles: hslog.NewLoggingArticleParser(parser, deps.Logger),
		Config:   cfg,
	}
	if cfg.RequestsPerSecond > 0 {
		crawler.RateLimiter = crawl.NewDomainLimiter(cfg.RequestsPerSecond)
	}
	return crawler
}

// apply overlays the command's flags onto cfg and validates the result.
func (c *CrawlCmd) apply(cfg harvest.Config) (harvest.Config, error) {
	if c.MaxCategories != 0 {
		cfg.MaxCategories = c.MaxCategories
	}
	if c.MaxPages != 0 {
		cfg.MaxPagesPerCategory = c.MaxPages
	}
	if c.MaxArticles != 0 {
		cfg.MaxArticlesPerCategory = c.MaxArticles
	}

	for _, d := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"listing delay", c.ListingDelay, &cfg.ListingDelay},
		{"article delay", c.ArticleDelay, &cfg.ArticleDelay},
		{"category delay", c.CategoryDelay, &cfg.CategoryDelay},
	} {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return cfg, harvest.Errorf(harvest.EINVALID, "invalid %s %q", d.name, d.value)
		}
		*d.dst = v
	}

	if len(c.RetryDelays) > 0 {
		cfg.RetryDelays = c.RetryDelays
	}
	if c.RequestsPerSecond != 0 {
		cfg.RequestsPerSecond = c.RequestsPerSecond
	}
	cfg.RespectRobots = cfg.RespectRobots || c.RespectRobots
	cfg.ContentFallback = cfg.ContentFallback || c.ContentFallback

	return cfg, cfg.Validate()
}
