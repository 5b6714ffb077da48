// Package crawl drives a crawl run over a blog: it enumerates categories,
// pages through their listings, and turns each discovered article page into
// a harvest.Article, one fetch at a time.
package crawl

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/bloom"
)

// minSeenCapacity is the smallest number of URLs the default seen set is
// sized for.
const minSeenCapacity = 1024

// Crawler walks categories and yields the articles found in them.
type Crawler struct {
	Fetcher  harvest.Fetcher
	Listings harvest.ListingParser
	Articles harvest.ArticleParser
	Config   harvest.Config

	// Seen records article URLs emitted during a run. A fresh Bloom
	// filter is used per run when nil.
	Seen func() harvest.URLSet

	// RateLimiter, when set, is consulted before every request.
	RateLimiter harvest.DomainLimiter

	// Progress, when set, receives events as the run proceeds.
	Progress ProgressFunc

	// Sleep waits between requests. Defaults to a timer that returns
	// early with the context's error.
	Sleep func(ctx context.Context, d time.Duration) error
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type      ProgressType
	Category  string
	URL       string
	Attempt   int
	Completed int
	Total     int
	Error     error
	State     harvest.CrawlState
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressStarted carries the number of categories to visit in Total.
	ProgressStarted ProgressType = iota
	// ProgressCategoryStarted marks the start of a category.
	ProgressCategoryStarted
	// ProgressListed carries the number of article URLs found in Total.
	ProgressListed
	// ProgressRetrying reports a failed attempt that will be retried.
	ProgressRetrying
	// ProgressCompleted reports an article about to be yielded.
	ProgressCompleted
	// ProgressSkipped reports an article URL already yielded in this run.
	ProgressSkipped
	// ProgressFailed reports a page or article that was skipped.
	ProgressFailed
	// ProgressCategoryFinished carries the category's article count.
	ProgressCategoryFinished
	// ProgressFinished carries the final CrawlState.
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl returns a sequence of the articles of the first MaxCategories
// categories. Nothing is fetched until the sequence is ranged over, and
// stopping the range stops the crawl.
//
// Per-page failures are reported to Progress and skipped. The sequence
// yields a non-nil error at most once, as its last element: when the
// category index cannot be read, when it lists no categories, or with code
// EINTERRUPTED when ctx is done.
func (c *Crawler) Crawl(ctx context.Context) iter.Seq2[*harvest.Article, error] {
	return func(yield func(*harvest.Article, error) bool) {
		r := &run{
			Crawler: c,
			ctx:     ctx,
			yield:   yield,
			seen:    c.newSeen(),
		}
		defer func() {
			r.emit(ProgressEvent{Type: ProgressFinished, State: r.state})
		}()
		r.crawl()
	}
}

func (c *Crawler) newSeen() harvest.URLSet {
	if c.Seen != nil {
		return c.Seen()
	}
	n := uint(c.Config.MaxCategories * c.Config.MaxArticlesPerCategory)
	return bloom.NewURLSet(max(n, minSeenCapacity))
}

// ListCategories fetches the category index and returns every category it
// links to.
func (c *Crawler) ListCategories(ctx context.Context) ([]harvest.Category, error) {
	indexURL := c.Config.CategoryIndexURL()
	html, err := c.Fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("category index: %w", err)
	}
	categories, err := c.Listings.ParseCategories(html, c.Config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("category index: %w", err)
	}
	if len(categories) == 0 {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "no categories found at %s", indexURL)
	}
	return categories, nil
}

// run holds the state of a single pass over the site.
type run struct {
	*Crawler
	ctx   context.Context
	yield func(*harvest.Article, error) bool
	seen  harvest.URLSet
	state harvest.CrawlState
}

func (r *run) crawl() {
	if !r.check() {
		return
	}
	categories, err := r.ListCategories(r.ctx)
	if err != nil {
		if r.ctx.Err() != nil {
			r.interrupt()
			return
		}
		r.yield(nil, err)
		return
	}
	if len(categories) > r.Config.MaxCategories {
		categories = categories[:r.Config.MaxCategories]
	}
	r.emit(ProgressEvent{Type: ProgressStarted, Total: len(categories)})

	for i, cat := range categories {
		if i > 0 && !r.pause(r.Config.CategoryDelay) {
			return
		}
		if !r.crawlCategory(cat) {
			return
		}
		r.state.Categories++
	}
}

// crawlCategory reports false when the run must stop.
func (r *run) crawlCategory(cat harvest.Category) bool {
	r.emit(ProgressEvent{Type: ProgressCategoryStarted, Category: cat.Name, URL: cat.URL})

	urls, ok := r.discover(cat)
	if !ok {
		return false
	}
	if len(urls) > r.Config.MaxArticlesPerCategory {
		urls = urls[:r.Config.MaxArticlesPerCategory]
	}
	r.emit(ProgressEvent{Type: ProgressListed, Category: cat.Name, Total: len(urls)})

	completed := 0
	fetched := false
	for _, u := range urls {
		if r.seen.Test(u) {
			r.emit(ProgressEvent{Type: ProgressSkipped, Category: cat.Name, URL: u})
			continue
		}
		if fetched && !r.pause(r.Config.ArticleDelay) {
			return false
		}
		fetched = true

		html, err := r.fetch(u)
		if err != nil {
			if r.ctx.Err() != nil {
				r.interrupt()
				return false
			}
			r.emit(ProgressEvent{Type: ProgressFailed, Category: cat.Name, URL: u, Error: err})
			continue
		}

		article, err := r.Articles.ParseArticle(u, html)
		if err != nil {
			r.emit(ProgressEvent{Type: ProgressFailed, Category: cat.Name, URL: u, Error: err})
			continue
		}
		article.SourceCategory = cat.Name

		r.seen.Add(u)
		r.state.Articles++
		completed++
		r.emit(ProgressEvent{Type: ProgressCompleted, Category: cat.Name, URL: u, Completed: completed, Total: len(urls)})
		if !r.yield(article, nil) {
			return false
		}
	}

	r.emit(ProgressEvent{Type: ProgressCategoryFinished, Category: cat.Name, Completed: completed, Total: len(urls)})
	return true
}

// discover pages through a category listing and returns its article URLs
// in order of first appearance. Pagination ends at the page cap, at the
// first page that fails, or at the first page without articles.
func (r *run) discover(cat harvest.Category) ([]string, bool) {
	var urls []string
	seen := make(map[string]bool)

	for page := 1; page <= r.Config.MaxPagesPerCategory; page++ {
		if page > 1 && !r.pause(r.Config.ListingDelay) {
			return nil, false
		}

		pageURL := ListingPageURL(cat.URL, page)
		html, err := r.fetch(pageURL)
		if err != nil {
			if r.ctx.Err() != nil {
				r.interrupt()
				return nil, false
			}
			r.emit(ProgressEvent{Type: ProgressFailed, Category: cat.Name, URL: pageURL, Error: err})
			break
		}

		links, articles, err := r.Listings.ParseArticleLinks(html, pageURL)
		if err != nil {
			r.emit(ProgressEvent{Type: ProgressFailed, Category: cat.Name, URL: pageURL, Error: err})
			break
		}
		if articles == 0 {
			break
		}
		for _, l := range links {
			if !seen[l] {
				seen[l] = true
				urls = append(urls, l)
			}
		}
	}
	return urls, true
}

func (r *run) fetch(rawURL string) (string, error) {
	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(r.ctx, hostOf(rawURL)); err != nil {
			return "", err
		}
	}
	onRetry := func(u string, attempt int, err error) {
		r.emit(ProgressEvent{Type: ProgressRetrying, URL: u, Attempt: attempt, Error: err})
	}
	return FetchWithRetryDelays(r.ctx, rawURL, r.Fetcher.Fetch, onRetry, r.Config.RetryDelays)
}

// pause waits d, reporting false after yielding an interruption when the
// context ends first.
func (r *run) pause(d time.Duration) bool {
	sleep := r.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	if err := sleep(r.ctx, d); err != nil {
		r.interrupt()
		return false
	}
	return true
}

// check yields an interruption if the context is already done.
func (r *run) check() bool {
	if r.ctx.Err() != nil {
		r.interrupt()
		return false
	}
	return true
}

func (r *run) interrupt() {
	r.yield(nil, harvest.Errorf(harvest.EINTERRUPTED, "crawl interrupted after %d articles: %v", r.state.Articles, r.ctx.Err()))
}

func (r *run) emit(e ProgressEvent) {
	if r.Progress != nil {
		r.Progress(e)
	}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ListingPageURL returns the URL of page n of a category listing.
// Page 1 is the category URL itself.
func ListingPageURL(categoryURL string, n int) string {
	if n <= 1 {
		return categoryURL
	}
	if !strings.HasSuffix(categoryURL, "/") {
		categoryURL += "/"
	}
	return categoryURL + "page/" + strconv.Itoa(n) + "/"
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
