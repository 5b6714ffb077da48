package harvest

import "context"

// URLSet records URLs already handled during a run.
type URLSet interface {
	// Add records the URL.
	Add(url string)

	// Test reports whether the URL may have been added.
	Test(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
