package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/linkwish/linkwish"
)

// Ensure LoggingRenderer implements linkwish.Renderer.
var _ linkwish.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with render timing logs.
type LoggingRenderer struct {
	next   linkwish.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next linkwish.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (image []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("page render",
			"url", url,
			"bytes", len(image),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
