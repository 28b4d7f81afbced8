package rod

import (
	"context"
	"testing"

	"github.com/linkwish/linkwish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"
)

// Launching a real browser is covered by integration tests; these exercise
// the lifecycle guards that do not need Chrome.

func TestRendererClosed(t *testing.T) {
	t.Parallel()

	r := &Renderer{
		maxPages: DefaultMaxPages,
		sem:      semaphore.NewWeighted(DefaultMaxConcurrent),
	}
	r.closed.Store(true)

	_, err := r.Render(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, linkwish.EUNAVAILABLE, linkwish.ErrorCode(err))
}

func TestRendererCloseIdempotent(t *testing.T) {
	t.Parallel()

	r := &Renderer{
		maxPages: DefaultMaxPages,
		sem:      semaphore.NewWeighted(DefaultMaxConcurrent),
	}

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestRendererOptions(t *testing.T) {
	t.Parallel()

	r := &Renderer{
		maxPages: DefaultMaxPages,
		sem:      semaphore.NewWeighted(DefaultMaxConcurrent),
	}
	WithMaxPages(10)(r)
	assert.Equal(t, int64(10), r.maxPages)

	WithMaxConcurrent(4)(r)
	assert.True(t, r.sem.TryAcquire(4))
	assert.False(t, r.sem.TryAcquire(1))
}
