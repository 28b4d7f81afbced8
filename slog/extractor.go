// Package slog provides logging decorators for linkwish interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/linkwish/linkwish"
)

// Ensure LoggingExtractor implements linkwish.Extractor.
var _ linkwish.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-attempt logging.
type LoggingExtractor struct {
	next   linkwish.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next linkwish.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// CanExtract delegates to the wrapped extractor.
func (e *LoggingExtractor) CanExtract(url string) bool {
	return e.next.CanExtract(url)
}

// Extract delegates to the wrapped extractor and logs the attempt.
func (e *LoggingExtractor) Extract(ctx context.Context, url string) (record *linkwish.ExtractionRecord, err error) {
	defer func(begin time.Time) {
		fields := 0
		if record != nil {
			fields = record.FieldCount()
		}
		e.logger.Info("extraction attempt",
			"strategy", string(e.next.Strategy()),
			"url", url,
			"fields", fields,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, url)
}

// ExtractHTML delegates a raw HTML extraction if the wrapped extractor
// supports it, falling back to a network Extract otherwise.
func (e *LoggingExtractor) ExtractHTML(ctx context.Context, url, html string) (record *linkwish.ExtractionRecord, err error) {
	he, ok := e.next.(linkwish.HTMLExtractor)
	if !ok {
		return e.Extract(ctx, url)
	}
	defer func(begin time.Time) {
		fields := 0
		if record != nil {
			fields = record.FieldCount()
		}
		e.logger.Info("extraction attempt",
			"strategy", string(e.next.Strategy()),
			"url", url,
			"raw_html", true,
			"fields", fields,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return he.ExtractHTML(ctx, url, html)
}

// Priority delegates to the wrapped extractor.
func (e *LoggingExtractor) Priority() int {
	return e.next.Priority()
}

// Strategy delegates to the wrapped extractor.
func (e *LoggingExtractor) Strategy() linkwish.Strategy {
	return e.next.Strategy()
}
