package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/linkwish/linkwish"
	main "github.com/linkwish/linkwish/cmd/linkwish"
	"github.com/linkwish/linkwish/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists entries with ID, title, and price", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Wishlist = &mock.WishlistService{
			FindEntriesFn: func(_ context.Context, _ linkwish.WishlistFilter) ([]*linkwish.WishlistEntry, error) {
				return []*linkwish.WishlistEntry{
					{
						ID: "entry-123",
						Record: linkwish.ExtractionRecord{
							Title:    "Sony WH-1000XM5 Wireless Headphones",
							Price:    "348.00",
							Currency: "USD",
						},
					},
					{
						ID:           "entry-456",
						CanonicalURL: "https://example.com/untitled",
					},
				}, nil
			},
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "entry-123")
		assert.Contains(t, output, "Sony WH-1000XM5 Wireless Headphones")
		assert.Contains(t, output, "348.00 USD")
		// Entries without a title fall back to the canonical URL.
		assert.Contains(t, output, "https://example.com/untitled")
	})

	t.Run("passes site filter and pagination", func(t *testing.T) {
		t.Parallel()

		var gotFilter linkwish.WishlistFilter
		deps, _, _ := newDeps()
		deps.Wishlist = &mock.WishlistService{
			FindEntriesFn: func(_ context.Context, filter linkwish.WishlistFilter) ([]*linkwish.WishlistEntry, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		cmd := &main.ListCmd{Site: "Example Store", Limit: 5, Offset: 10}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter.SiteName)
		assert.Equal(t, "Example Store", *gotFilter.SiteName)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Equal(t, 10, gotFilter.Offset)
	})

	t.Run("shows helpful message when wishlist is empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Wishlist = &mock.WishlistService{
			FindEntriesFn: func(_ context.Context, _ linkwish.WishlistFilter) ([]*linkwish.WishlistEntry, error) {
				return nil, nil
			},
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No entries")
	})

	t.Run("returns error when FindEntries fails", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Wishlist = &mock.WishlistService{
			FindEntriesFn: func(_ context.Context, _ linkwish.WishlistFilter) ([]*linkwish.WishlistEntry, error) {
				return nil, linkwish.Errorf(linkwish.EINTERNAL, "database error")
			},
		}

		cmd := &main.ListCmd{}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})
}
