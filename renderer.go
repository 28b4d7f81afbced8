package linkwish

import "context"

// Renderer produces a full-page image of a rendered URL.
// Implementations may use browser automation; the browser is a shared,
// lazily-initialized resource, so Close must be called on shutdown.
type Renderer interface {
	// Render navigates to the URL, waits for the page to settle,
	// and returns a screenshot of the full page.
	Render(ctx context.Context, url string) (image []byte, err error)

	// Close releases browser resources.
	Close() error
}
