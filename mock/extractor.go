package mock

import (
	"context"

	"github.com/linkwish/linkwish"
)

var _ linkwish.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of linkwish.Extractor.
type Extractor struct {
	CanExtractFn func(url string) bool
	ExtractFn    func(ctx context.Context, url string) (*linkwish.ExtractionRecord, error)
	PriorityFn   func() int
	StrategyFn   func() linkwish.Strategy
}

func (e *Extractor) CanExtract(url string) bool {
	return e.CanExtractFn(url)
}

func (e *Extractor) Extract(ctx context.Context, url string) (*linkwish.ExtractionRecord, error) {
	return e.ExtractFn(ctx, url)
}

func (e *Extractor) Priority() int {
	return e.PriorityFn()
}

func (e *Extractor) Strategy() linkwish.Strategy {
	return e.StrategyFn()
}

var (
	_ linkwish.Extractor     = (*HTMLExtractor)(nil)
	_ linkwish.HTMLExtractor = (*HTMLExtractor)(nil)
)

// HTMLExtractor is a mock implementation of an extractor that also supports
// caller-supplied HTML.
type HTMLExtractor struct {
	Extractor
	ExtractHTMLFn func(ctx context.Context, url, html string) (*linkwish.ExtractionRecord, error)
}

func (e *HTMLExtractor) ExtractHTML(ctx context.Context, url, html string) (*linkwish.ExtractionRecord, error) {
	return e.ExtractHTMLFn(ctx, url, html)
}
