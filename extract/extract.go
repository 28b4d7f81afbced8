// Package extract provides the extraction pipeline orchestration.
// It runs registered strategies against a single URL in priority order,
// applies the quality gate, and returns the first acceptable result.
package extract

import (
	"context"
	"errors"
	"net/url"
	"sort"

	"github.com/linkwish/linkwish"
)

// Request describes a single extraction request.
type Request struct {
	// URL is the raw URL to extract from. Required.
	URL string

	// RawHTML, when set, is used by strategies that can parse
	// caller-supplied markup instead of fetching the page.
	RawHTML string
}

// Pipeline runs extraction strategies in priority order against one URL.
// Strategies execute strictly sequentially: the cheap structural path must
// get a chance to short-circuit before the expensive AI path runs.
//
// Pipeline carries no per-request state and is safe for concurrent use.
type Pipeline struct {
	Extractors []linkwish.Extractor
	Limiter    linkwish.DomainLimiter // optional outbound politeness
}

// Run executes the pipeline for a single request.
//
// Strategy errors are absorbed and only the last one is surfaced, and only
// if no strategy produced an accepted result. Records rejected by the
// quality gate are not errors; the pipeline simply moves on. The fallback
// strategy is exempt from the gate since its synthesized title may be
// shorter than the gate's threshold for short hostnames.
func (p *Pipeline) Run(ctx context.Context, req Request) (*linkwish.ExtractionOutcome, error) {
	canonical, err := linkwish.Canonicalize(req.URL)
	if err != nil {
		return nil, err
	}
	if err := linkwish.ValidateTarget(canonical); err != nil {
		return nil, err
	}

	extractors := make([]linkwish.Extractor, len(p.Extractors))
	copy(extractors, p.Extractors)
	sort.SliceStable(extractors, func(i, j int) bool {
		return extractors[i].Priority() < extractors[j].Priority()
	})

	var lastErr error
	ran := false
	for _, ex := range extractors {
		if err := deadlineErr(ctx); err != nil {
			return nil, err
		}
		if !ex.CanExtract(canonical) {
			continue
		}
		ran = true

		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx, domainOf(canonical)); err != nil {
				return nil, deadlineOr(ctx, err)
			}
		}

		record, err := p.invoke(ctx, ex, canonical, req.RawHTML)
		if err != nil {
			lastErr = err
			continue
		}
		if ex.Strategy() != linkwish.StrategyFallback && !linkwish.Acceptable(record) {
			continue
		}

		return &linkwish.ExtractionOutcome{
			Record:       record,
			Strategy:     ex.Strategy(),
			Confidence:   linkwish.Score(record, ex.Strategy()),
			CanonicalURL: canonical,
		}, nil
	}

	if !ran {
		return nil, linkwish.Errorf(linkwish.EUNAVAILABLE, "no extractor available for %s", canonical)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, linkwish.Errorf(linkwish.EINTERNAL, "no acceptable extraction for %s", canonical)
}

// invoke runs one strategy, preferring the raw-HTML path when the caller
// supplied markup and the strategy supports it.
func (p *Pipeline) invoke(ctx context.Context, ex linkwish.Extractor, canonical, rawHTML string) (*linkwish.ExtractionRecord, error) {
	if rawHTML != "" {
		if he, ok := ex.(linkwish.HTMLExtractor); ok {
			return he.ExtractHTML(ctx, canonical, rawHTML)
		}
	}
	return ex.Extract(ctx, canonical)
}

// deadlineErr maps an expired context to the application error taxonomy.
func deadlineErr(ctx context.Context) error {
	switch err := ctx.Err(); {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return linkwish.Errorf(linkwish.ETIMEOUT, "extraction deadline exceeded")
	default:
		return err
	}
}

// deadlineOr returns the timeout error if the context expired, otherwise
// the given error.
func deadlineOr(ctx context.Context, err error) error {
	if derr := deadlineErr(ctx); derr != nil {
		return derr
	}
	return err
}

func domainOf(canonical string) string {
	u, err := url.Parse(canonical)
	if err != nil {
		return canonical
	}
	return u.Hostname()
}
