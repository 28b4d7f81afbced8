package extract

import (
	"context"
	"sync"

	"github.com/linkwish/linkwish"
	"golang.org/x/time/rate"
)

var _ linkwish.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles outbound fetches per target domain with a token
// bucket each, so extractions for different sites proceed concurrently while
// no single site is hit faster than the configured rate.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain. Buckets have a burst of 1, so requests are evenly spaced.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the domain's bucket permits a request, or until ctx is
// canceled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
