// Package fetch - browser.go provides headless browser rendering for
// script-driven conditions pages.
package fetch

import (
	"context"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultSettleTime is how long the renderer waits for scripts to finish
// after the page body is ready, when no selector is given.
const DefaultSettleTime = 3 * time.Second

// DefaultSelectorTimeout bounds the wait for a caller-specified content
// marker before giving up and capturing whatever rendered.
const DefaultSelectorTimeout = 10 * time.Second

// Renderer retrieves a page's markup after full script execution.
type Renderer interface {
	// Available reports whether a rendering engine is present.
	Available() bool
	// Render navigates to url, waits for waitFor (a CSS selector) or the
	// settle time when waitFor is empty, and returns the rendered HTML.
	Render(ctx context.Context, url, waitFor string, waitTimeout time.Duration) (string, error)
}

// RenderOptions configures a single FetchRendered call.
type RenderOptions struct {
	TTL         time.Duration
	CacheSuffix string
	NoCache     bool

	// WaitForSelector is a CSS selector that marks the content as
	// rendered. Empty means wait a fixed settle time instead.
	WaitForSelector string
	// WaitTimeout bounds the selector wait. Zero uses the default.
	WaitTimeout time.Duration
}

// RendererAvailable reports whether rendered fetches can be performed.
func (c *Client) RendererAvailable() bool {
	return c.renderer != nil && c.renderer.Available()
}

// FetchRendered retrieves url through the headless browser, with the
// same caching and rate limiting as Fetch. It fails closed with a
// descriptive error when no rendering engine is present; it never falls
// back to an unrendered fetch.
func (c *Client) FetchRendered(ctx context.Context, rawURL string, opts RenderOptions) (string, error) {
	suffix := opts.CacheSuffix
	if suffix == "" {
		suffix = "_rendered"
	}
	cachePath := c.cachePath(rawURL, suffix)

	if !opts.NoCache {
		if body, ok := c.readCache(cachePath, opts.TTL); ok {
			c.log.Debugw("cache hit (rendered)", "url", rawURL)
			return body, nil
		}
	}

	if !c.RendererAvailable() {
		return "", &Error{
			URL:     rawURL,
			Message: "headless rendering unavailable: no Chrome/Chromium binary found",
		}
	}

	if err := c.waitHost(ctx, rawURL); err != nil {
		return "", &Error{URL: rawURL, Message: "rate limit wait interrupted", Cause: err}
	}

	waitTimeout := opts.WaitTimeout
	if waitTimeout == 0 {
		waitTimeout = DefaultSelectorTimeout
	}

	c.log.Debugw("fetching (rendered)", "url", rawURL)
	body, err := c.renderer.Render(ctx, rawURL, opts.WaitForSelector, waitTimeout)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "headless fetch failed", Cause: err}
	}

	if !opts.NoCache {
		c.writeCache(cachePath, body)
	}
	return body, nil
}

// chromeRenderer runs pages in headless Chrome via chromedp.
type chromeRenderer struct {
	userAgent string
	timeout   time.Duration
}

func newChromeRenderer(userAgent string, timeout time.Duration) *chromeRenderer {
	return &chromeRenderer{userAgent: userAgent, timeout: timeout}
}

var chromeBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

func (r *chromeRenderer) Available() bool {
	for _, name := range chromeBinaries {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func (r *chromeRenderer) Render(ctx context.Context, url, waitFor string, waitTimeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(r.userAgent),
			chromedp.WindowSize(1280, 720),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// Page-load timeout covers navigation plus rendering waits.
	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout+waitTimeout+DefaultSettleTime)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}

	if waitFor != "" {
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, waitTimeout)
			defer cancel()
			// The marker not appearing is not fatal; capture whatever
			// rendered by then.
			_ = chromedp.WaitVisible(waitFor).Do(waitCtx)
			return nil
		}))
	} else {
		actions = append(actions, chromedp.Sleep(DefaultSettleTime))
	}

	// Give scripts a final moment, then capture the full markup.
	var html string
	actions = append(actions,
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", err
	}
	return html, nil
}
