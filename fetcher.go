package harvest

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Failures are reported as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases connection resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
