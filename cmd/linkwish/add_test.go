package main_test

import (
	"context"
	"testing"

	"github.com/linkwish/linkwish"
	main "github.com/linkwish/linkwish/cmd/linkwish"
	"github.com/linkwish/linkwish/extract"
	"github.com/linkwish/linkwish/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts then saves the entry", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Pipeline = runnerFunc(func(_ context.Context, req extract.Request) (*linkwish.ExtractionOutcome, error) {
			assert.Equal(t, "https://example.com/p", req.URL)
			return &linkwish.ExtractionOutcome{
				Record:       &linkwish.ExtractionRecord{Title: "Sony WH-1000XM5 Wireless Headphones"},
				Strategy:     linkwish.StrategyStructural,
				Confidence:   0.85,
				CanonicalURL: "https://example.com/p",
			}, nil
		})

		var created *linkwish.WishlistEntry
		deps.Wishlist = &mock.WishlistService{
			CreateEntryFn: func(_ context.Context, entry *linkwish.WishlistEntry) error {
				entry.ID = "entry-1"
				created = entry
				return nil
			},
		}

		// Scheme gets prepended before the pipeline sees the URL.
		cmd := &main.AddCmd{URL: "example.com/p"}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, created)
		assert.Equal(t, "https://example.com/p", created.CanonicalURL)
		assert.Contains(t, stdout.String(), "Saved")
		assert.Contains(t, stdout.String(), "entry-1")
	})

	t.Run("reports duplicates distinctly", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Pipeline = runnerFunc(func(_ context.Context, req extract.Request) (*linkwish.ExtractionOutcome, error) {
			return &linkwish.ExtractionOutcome{
				Record:       &linkwish.ExtractionRecord{Title: "Sony WH-1000XM5 Wireless Headphones"},
				Strategy:     linkwish.StrategyStructural,
				Confidence:   0.85,
				CanonicalURL: "https://example.com/p",
			}, nil
		})
		deps.Wishlist = &mock.WishlistService{
			CreateEntryFn: func(_ context.Context, entry *linkwish.WishlistEntry) error {
				return linkwish.Errorf(linkwish.ECONFLICT, "entry already exists for %s", entry.CanonicalURL)
			},
		}

		cmd := &main.AddCmd{URL: "https://example.com/p"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "already saved")
	})

	t.Run("returns extraction errors without saving", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Pipeline = runnerFunc(func(_ context.Context, req extract.Request) (*linkwish.ExtractionOutcome, error) {
			return nil, linkwish.Errorf(linkwish.EINVALID, "URL has no host")
		})
		deps.Wishlist = &mock.WishlistService{
			CreateEntryFn: func(_ context.Context, entry *linkwish.WishlistEntry) error {
				t.Fatal("CreateEntry should not be called")
				return nil
			},
		}

		cmd := &main.AddCmd{URL: "http://"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestRemoveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("removes the entry", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Wishlist = &mock.WishlistService{
			DeleteEntryFn: func(_ context.Context, id string) error {
				assert.Equal(t, "entry-1", id)
				return nil
			},
		}

		cmd := &main.RemoveCmd{ID: "entry-1"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Removed entry-1")
	})

	t.Run("surfaces missing entries", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Wishlist = &mock.WishlistService{
			DeleteEntryFn: func(_ context.Context, id string) error {
				return linkwish.Errorf(linkwish.ENOTFOUND, "entry not found")
			},
		}

		cmd := &main.RemoveCmd{ID: "nope"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "not found")
	})
}
