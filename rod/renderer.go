// Package rod provides a browser-backed implementation of linkwish.Renderer
// using Chrome automation. The browser is the only process-wide mutable
// shared resource in the system; the Renderer serializes access behind a
// small concurrency limit and recycles the browser periodically.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/linkwish/linkwish"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxPages is the default number of pages rendered before the
// browser is recycled. Chrome accumulates memory over time and the baseline
// never returns to initial levels even with proper page cleanup.
const DefaultMaxPages = 75

// DefaultMaxConcurrent caps simultaneous page renders. A full-page
// screenshot holds a renderer process; unbounded concurrency risks
// exhausting memory on the host.
const DefaultMaxConcurrent = 2

// Ensure Renderer implements linkwish.Renderer at compile time.
var _ linkwish.Renderer = (*Renderer)(nil)

// Renderer produces full-page screenshots of rendered URLs.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	sem      *semaphore.Weighted
	maxPages int64

	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	closed    atomic.Bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithMaxPages sets the page count after which the browser is recycled.
// Defaults to DefaultMaxPages if not specified.
func WithMaxPages(n int64) RendererOption {
	return func(r *Renderer) {
		r.maxPages = n
	}
}

// WithMaxConcurrent sets the number of simultaneous renders allowed.
// Defaults to DefaultMaxConcurrent if not specified.
func WithMaxConcurrent(n int64) RendererOption {
	return func(r *Renderer) {
		r.sem = semaphore.NewWeighted(n)
	}
}

// NewRenderer launches a headless Chrome browser and returns a Renderer.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		maxPages: DefaultMaxPages,
		sem:      semaphore.NewWeighted(DefaultMaxConcurrent),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.launchBrowser(); err != nil {
		return nil, err
	}
	return r, nil
}

// Render navigates to the URL, waits for the page to load, and captures a
// full-page PNG screenshot.
func (r *Renderer) Render(ctx context.Context, url string) ([]byte, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	browser, err := r.acquireBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	image, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&r.pageCount, 1)
	return image, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeBrowser()
}

// acquireBrowser returns the current browser, recycling it once the page
// count reaches the threshold.
func (r *Renderer) acquireBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed.Load() {
		return nil, linkwish.Errorf(linkwish.EUNAVAILABLE, "renderer is closed")
	}

	if atomic.LoadInt64(&r.pageCount) >= r.maxPages {
		r.recycleBrowser()
	}
	return r.browser, nil
}

// launchBrowser starts a new browser instance with stability flags.
func (r *Renderer) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	r.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (r *Renderer) closeBrowser() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one. If the new
// launch fails the old browser is kept so in-flight work can proceed.
// Must be called with mu held.
func (r *Renderer) recycleBrowser() {
	oldBrowser := r.browser
	oldLauncher := r.launcher
	r.browser = nil
	r.launcher = nil

	if err := r.launchBrowser(); err != nil {
		r.browser = oldBrowser
		r.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&r.pageCount, 0)
}
