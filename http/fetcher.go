// Package http provides an HTTP-based implementation of harvest.Fetcher.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/harvest"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// ErrDisallowed is wrapped by the FetchError returned for URLs that the
// site's robots.txt excludes.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content with plain GET requests over one
// long-lived client.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	robots    bool
	checker   *RobotsChecker
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRobots makes the fetcher refuse URLs excluded by robots.txt.
func WithRobots() Option {
	return func(f *Fetcher) {
		f.robots = true
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: harvest.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}
	if f.robots {
		f.checker = NewRobotsChecker(f.client, f.userAgent, 0)
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Any failure, including a non-2xx status, is returned as *harvest.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.checker != nil {
		allowed, err := f.checker.IsAllowed(ctx, url)
		if err != nil {
			return "", &harvest.FetchError{URL: url, Err: err}
		}
		if !allowed {
			return "", &harvest.FetchError{URL: url, Err: ErrDisallowed}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &harvest.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &harvest.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &harvest.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &harvest.FetchError{URL: url, Err: err}
	}

	return string(body), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
