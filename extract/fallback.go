package extract

import (
	"context"
	"net/url"

	"github.com/linkwish/linkwish"
)

// Ensure FallbackExtractor implements linkwish.Extractor at compile time.
var _ linkwish.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor derives a minimal record from the URL alone. It always
// succeeds, guaranteeing the pipeline never fails outright when it runs.
type FallbackExtractor struct{}

// NewFallbackExtractor creates a new FallbackExtractor.
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

// CanExtract always returns true.
func (e *FallbackExtractor) CanExtract(string) bool { return true }

// Extract builds a stub record from the URL's host.
func (e *FallbackExtractor) Extract(_ context.Context, rawURL string) (*linkwish.ExtractionRecord, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return nil, linkwish.Errorf(linkwish.EINVALID, "invalid URL %q", rawURL)
	}

	host := u.Hostname()
	return &linkwish.ExtractionRecord{
		Title:       "Page from " + host,
		SiteName:    host,
		ContentType: "webpage",
	}, nil
}

// Priority orders the fallback strategy last.
func (e *FallbackExtractor) Priority() int { return 3 }

// Strategy returns the strategy tag.
func (e *FallbackExtractor) Strategy() linkwish.Strategy { return linkwish.StrategyFallback }
