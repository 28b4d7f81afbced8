package linkwish

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations do not execute JavaScript; pages that require rendering
// are handled by the Renderer path instead.
type Fetcher interface {
	// Fetch retrieves the page body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
