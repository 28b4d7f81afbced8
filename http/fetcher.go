// Package http provides an HTTP-based implementation of linkwish.Fetcher
// used by the structural extraction strategy. It fetches static markup only;
// JavaScript-rendered pages are handled by the rendering path.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/linkwish/linkwish"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxRedirects caps how many redirects a fetch may follow.
const DefaultMaxRedirects = 5

// DefaultMaxBodyBytes caps the page body size. Product pages larger than
// this are overwhelmingly script payloads, not metadata.
const DefaultMaxBodyBytes = 2 << 20 // 2 MiB

// userAgent identifies the fetcher to origin servers.
const userAgent = "linkwish/1.0 (+https://github.com/linkwish/linkwish)"

// Ensure Fetcher implements linkwish.Fetcher at compile time.
var _ linkwish.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	maxBodyBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets the redirect cap.
// Defaults to DefaultMaxRedirects if not specified.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithMaxBodyBytes sets the response body size cap.
// Defaults to DefaultMaxBodyBytes if not specified.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return linkwish.Errorf(linkwish.EUNAVAILABLE, "stopped after %d redirects", f.maxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", linkwish.Errorf(linkwish.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", linkwish.Errorf(linkwish.ETIMEOUT, "fetch %s: deadline exceeded", url)
		}
		return "", linkwish.Errorf(linkwish.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", linkwish.Errorf(linkwish.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", linkwish.Errorf(linkwish.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
