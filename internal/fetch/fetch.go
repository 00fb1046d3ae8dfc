// Package fetch performs HTTP retrieval for the pipeline: filesystem
// TTL caching, per-host rate limiting, retry with exponential backoff,
// and an escalation path to headless browser rendering.
package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mweston/tahoe-conditions/internal/logging"
)

const (
	// DefaultUserAgent identifies the bot to upstream sites. NWS requires
	// a contact address in the User-Agent.
	DefaultUserAgent = "TahoeConditionsBot/1.0 (tahoe-conditions-bot@example.com)"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 15 * time.Second

	// DefaultHostDelay is the minimum interval between requests to the
	// same destination host.
	DefaultHostDelay = 1500 * time.Millisecond

	// DefaultMaxAttempts is the total number of transport attempts for a
	// retryable failure.
	DefaultMaxAttempts = 3

	// DefaultBackoffBase and DefaultBackoffMax bound the exponential
	// retry wait.
	DefaultBackoffBase = 1 * time.Second
	DefaultBackoffMax  = 30 * time.Second

	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptJSON = "application/geo+json,application/json"
)

// Config holds client construction options. Zero values use defaults.
type Config struct {
	CacheDir  string
	UserAgent string
	Timeout   time.Duration

	// HostDelay is the minimum interval between requests to one host.
	// Zero means DefaultHostDelay; negative disables rate limiting.
	HostDelay time.Duration
	MaxAttempts int
	BackoffBase time.Duration
	BackoffMax  time.Duration

	// Renderer overrides the headless browser used by FetchRendered.
	// When nil a chromedp-backed renderer is used if Chrome/Chromium is
	// installed.
	Renderer Renderer

	Logger *zap.SugaredLogger
}

// Client fetches URLs with caching, rate limiting, and retries. The
// per-host limiter table is the only shared mutable state and is guarded
// by mu, so a client is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	cacheDir    string
	userAgent   string
	hostDelay   time.Duration
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	renderer    Renderer
	log         *zap.SugaredLogger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	// now is swappable for cache-freshness tests.
	now func() time.Time
}

// New creates a fetch client.
func New(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HostDelay == 0 {
		cfg.HostDelay = DefaultHostDelay
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BackoffBase == 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}
	if cfg.BackoffMax == 0 {
		cfg.BackoffMax = DefaultBackoffMax
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.S()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = newChromeRenderer(cfg.UserAgent, cfg.Timeout)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		cacheDir:    cfg.CacheDir,
		userAgent:   cfg.UserAgent,
		hostDelay:   cfg.HostDelay,
		maxAttempts: cfg.MaxAttempts,
		backoffBase: cfg.BackoffBase,
		backoffMax:  cfg.BackoffMax,
		renderer:    cfg.Renderer,
		log:         cfg.Logger,
		limiters:    make(map[string]*rate.Limiter),
		now:         time.Now,
	}
}

// Options configures a single Fetch call.
type Options struct {
	// TTL is the maximum cache entry age accepted as fresh.
	TTL time.Duration
	// CacheSuffix disambiguates distinct representations of the same URL
	// (plain vs rendered vs JSON).
	CacheSuffix string
	// NoCache bypasses both cache read and write.
	NoCache bool
}

// Fetch retrieves the body of url, serving from cache when a fresh entry
// exists. On a miss it rate-limits against the destination host, fetches
// with retries, and writes the cache best-effort.
func (c *Client) Fetch(ctx context.Context, rawURL string, opts Options) (string, error) {
	cachePath := c.cachePath(rawURL, opts.CacheSuffix)

	if !opts.NoCache {
		if body, ok := c.readCache(cachePath, opts.TTL); ok {
			c.log.Debugw("cache hit", "url", rawURL)
			return body, nil
		}
	}

	if err := c.waitHost(ctx, rawURL); err != nil {
		return "", &Error{URL: rawURL, Message: "rate limit wait interrupted", Cause: err}
	}

	body, err := c.doWithRetry(ctx, rawURL, acceptHTML)
	if err != nil {
		return "", err
	}

	if !opts.NoCache {
		c.writeCache(cachePath, body)
	}
	return body, nil
}

// FetchJSON retrieves url and unmarshals the body into v. Cached entries
// that no longer parse are treated as misses and refetched.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, ttl time.Duration, v any) error {
	cachePath := c.cachePath(rawURL, "_json")

	if body, ok := c.readCache(cachePath, ttl); ok {
		if err := json.Unmarshal([]byte(body), v); err == nil {
			c.log.Debugw("cache hit (json)", "url", rawURL)
			return nil
		}
		// Corrupted cache entry, refetch.
	}

	if err := c.waitHost(ctx, rawURL); err != nil {
		return &Error{URL: rawURL, Message: "rate limit wait interrupted", Cause: err}
	}

	body, err := c.doWithRetry(ctx, rawURL, acceptJSON)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(body), v); err != nil {
		return &Error{URL: rawURL, Message: "invalid JSON response", Cause: err}
	}

	c.writeCache(cachePath, body)
	return nil
}

// doWithRetry issues GETs until success, a permanent failure, or attempt
// exhaustion. Transport errors and 5xx responses are retried; 4xx is
// permanent since client errors are not transient.
func (c *Client) doWithRetry(ctx context.Context, rawURL, accept string) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.backoffBase
	bo.MaxInterval = c.backoffMax

	retries := uint64(0)
	if c.maxAttempts > 1 {
		retries = uint64(c.maxAttempts - 1)
	}

	body, err := backoff.RetryWithData(func() (string, error) {
		return c.doOnce(ctx, rawURL, accept)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx))

	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			return "", fe
		}
		return "", &Error{URL: rawURL, Message: "request failed after retries", Cause: err, Retryable: true}
	}
	return body, nil
}

func (c *Client) doOnce(ctx context.Context, rawURL, accept string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", backoff.Permanent(&Error{URL: rawURL, Message: "failed to create request", Cause: err})
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	c.log.Debugw("fetching", "url", rawURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("server error: HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return "", backoff.Permanent(&Error{
			URL:     rawURL,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		})
	}

	return string(bodyBytes), nil
}

// waitHost enforces the minimum inter-request delay for the destination
// host of rawURL. Limiters are created lazily, one per host.
func (c *Client) waitHost(ctx context.Context, rawURL string) error {
	if c.hostDelay <= 0 {
		return nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil // the request itself will surface the bad URL
	}
	host := parsed.Host

	c.mu.Lock()
	lim, ok := c.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(c.hostDelay), 1)
		c.limiters[host] = lim
	}
	c.mu.Unlock()

	return lim.Wait(ctx)
}

// cachePath derives the cache file for a URL: coarse date bucket plus a
// short hash of the URL plus the caller's variant suffix.
func (c *Client) cachePath(rawURL, suffix string) string {
	sum := md5.Sum([]byte(rawURL))
	urlHash := hex.EncodeToString(sum[:])[:16]
	dateKey := c.now().UTC().Format("20060102")
	return filepath.Join(c.cacheDir, fmt.Sprintf("%s_%s%s.cache", dateKey, urlHash, suffix))
}

// readCache returns the cached body if the entry exists and its age is
// within ttl. Expiry is evaluated at read time; stale files are ignored.
func (c *Client) readCache(path string, ttl time.Duration) (string, bool) {
	if c.cacheDir == "" || ttl <= 0 {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if c.now().Sub(info.ModTime()) > ttl {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Debugw("cache read error", "path", path, "error", err)
		return "", false
	}
	return string(data), true
}

// writeCache stores a response body. Failures are logged and swallowed:
// a cache-write problem must not fail a successful fetch.
func (c *Client) writeCache(path, body string) {
	if c.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		c.log.Debugw("cache write error", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		c.log.Debugw("cache write error", "path", path, "error", err)
	}
}
