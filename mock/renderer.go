package mock

import (
	"context"

	"github.com/linkwish/linkwish"
)

var _ linkwish.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of linkwish.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) ([]byte, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) ([]byte, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}
