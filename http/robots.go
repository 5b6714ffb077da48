package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// defaultRobotsCacheTTL is how long a parsed robots.txt is reused.
const defaultRobotsCacheTTL = 24 * time.Hour

// maxRobotsBodyBytes limits the size of robots.txt responses we will read.
const maxRobotsBodyBytes = 512 * 1024

// RobotsChecker checks URLs against robots.txt, caching rules per host.
type RobotsChecker struct {
	client    *http.Client
	userAgent string
	ttl       time.Duration

	mu    sync.RWMutex
	cache map[string]robotsEntry
}

type robotsEntry struct {
	data      *robotstxt.RobotsData // nil means allow all
	fetchedAt time.Time
}

// NewRobotsChecker creates a RobotsChecker. A zero ttl uses 24 hours.
func NewRobotsChecker(client *http.Client, userAgent string, ttl time.Duration) *RobotsChecker {
	if ttl == 0 {
		ttl = defaultRobotsCacheTTL
	}
	return &RobotsChecker{
		client:    client,
		userAgent: userAgent,
		ttl:       ttl,
		cache:     make(map[string]robotsEntry),
	}
}

// IsAllowed reports whether the user agent may fetch rawURL.
// A missing or unreadable robots.txt allows everything.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("robots: parse url: %w", err)
	}
	host := strings.ToLower(u.Host)
	if host == "" {
		return false, fmt.Errorf("robots: empty host in url %q", rawURL)
	}

	entry, ok := r.cached(host)
	if !ok {
		entry = r.fetch(ctx, u.Scheme, host)
		if err := ctx.Err(); err != nil {
			return false, err
		}
		r.mu.Lock()
		r.cache[host] = entry
		r.mu.Unlock()
	}

	if entry.data == nil {
		return true, nil
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return entry.data.TestAgent(path, r.userAgent), nil
}

func (r *RobotsChecker) cached(host string) (robotsEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[host]
	if !ok || time.Since(entry.fetchedAt) > r.ttl {
		return robotsEntry{}, false
	}
	return entry, true
}

func (r *RobotsChecker) fetch(ctx context.Context, scheme, host string) robotsEntry {
	entry := robotsEntry{fetchedAt: time.Now()}
	if scheme == "" {
		scheme = "https"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheme+"://"+host+"/robots.txt", http.NoBody)
	if err != nil {
		return entry
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return entry
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entry
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if err != nil {
		return entry
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return entry
	}
	entry.data = data
	return entry
}
