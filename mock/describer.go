package mock

import (
	"context"

	"github.com/linkwish/linkwish"
)

var _ linkwish.Describer = (*Describer)(nil)

// Describer is a mock implementation of linkwish.Describer.
type Describer struct {
	DescribeFn   func(ctx context.Context, image []byte, prompt string) (string, error)
	ConfiguredFn func() bool
}

func (d *Describer) Describe(ctx context.Context, image []byte, prompt string) (string, error) {
	return d.DescribeFn(ctx, image, prompt)
}

func (d *Describer) Configured() bool {
	if d.ConfiguredFn == nil {
		return true
	}
	return d.ConfiguredFn()
}
