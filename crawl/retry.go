package crawl

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/harvest"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the number of the upcoming
// attempt and the error of the previous one.
type RetryFunc func(url string, attempt int, err error)

// FetchWithRetryDelays fetches url, retrying after each listed delay.
// With no delays it makes a single attempt. Client errors other than
// 429 Too Many Requests are not retried.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(err) {
			break
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		if err := Sleep(ctx, delays[attempt]); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var fe *harvest.FetchError
	if errors.As(err, &fe) && fe.StatusCode >= 400 && fe.StatusCode < 500 {
		return fe.StatusCode == http.StatusTooManyRequests
	}
	return true
}
