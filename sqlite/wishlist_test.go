package sqlite_test

import (
	"context"
	"testing"

	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(url, canonical string) *linkwish.WishlistEntry {
	return &linkwish.WishlistEntry{
		URL:          url,
		CanonicalURL: canonical,
		Record: linkwish.ExtractionRecord{
			Title:       "Sony WH-1000XM5 Wireless Headphones",
			ImageURL:    "https://example.com/main.jpg",
			Images:      []string{"https://example.com/main.jpg", "https://example.com/alt.jpg"},
			Price:       "348.00",
			Currency:    "USD",
			SiteName:    "Example Store",
			Features:    []string{"noise canceling", "30h battery"},
			ContentType: "product",
		},
	}
}

func TestWishlistService_CreateEntry(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)

		entry := newEntry("https://www.example.com/p?utm_source=x", "https://example.com/p")
		require.NoError(t, s.CreateEntry(context.Background(), entry))

		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
		assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
	})

	t.Run("rejects duplicate canonical URL", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateEntry(ctx, newEntry("https://example.com/p", "https://example.com/p")))

		err := s.CreateEntry(ctx, newEntry("https://www.example.com/p#top", "https://example.com/p"))
		require.Error(t, err)
		assert.Equal(t, linkwish.ECONFLICT, linkwish.ErrorCode(err))
	})

	t.Run("rejects entry without canonical URL", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)

		err := s.CreateEntry(context.Background(), &linkwish.WishlistEntry{URL: "https://example.com"})
		require.Error(t, err)
		assert.Equal(t, linkwish.EINVALID, linkwish.ErrorCode(err))
	})
}

func TestWishlistService_FindEntryByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips all record fields", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)
		ctx := context.Background()

		entry := newEntry("https://example.com/p", "https://example.com/p")
		require.NoError(t, s.CreateEntry(ctx, entry))

		got, err := s.FindEntryByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.URL, got.URL)
		assert.Equal(t, entry.CanonicalURL, got.CanonicalURL)
		assert.Equal(t, entry.Record, got.Record)
	})

	t.Run("returns ENOTFOUND for missing entry", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)

		_, err := s.FindEntryByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, linkwish.ENOTFOUND, linkwish.ErrorCode(err))
	})
}

func TestWishlistService_FindEntries(t *testing.T) {
	t.Parallel()

	t.Run("filters by canonical URL and site name", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)
		ctx := context.Background()

		a := newEntry("https://a.example.com/1", "https://a.example.com/1")
		b := newEntry("https://b.example.com/2", "https://b.example.com/2")
		b.Record.SiteName = "Other Store"
		require.NoError(t, s.CreateEntry(ctx, a))
		require.NoError(t, s.CreateEntry(ctx, b))

		canonical := "https://a.example.com/1"
		got, err := s.FindEntries(ctx, linkwish.WishlistFilter{CanonicalURL: &canonical})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, a.ID, got[0].ID)

		site := "Other Store"
		got, err = s.FindEntries(ctx, linkwish.WishlistFilter{SiteName: &site})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, b.ID, got[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			url := "https://example.com/p/" + string(rune('a'+i))
			require.NoError(t, s.CreateEntry(ctx, newEntry(url, url)))
		}

		got, err := s.FindEntries(ctx, linkwish.WishlistFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = s.FindEntries(ctx, linkwish.WishlistFilter{Limit: 10, Offset: 4})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestWishlistService_UpdateEntry(t *testing.T) {
	t.Parallel()

	t.Run("persists changed fields", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)
		ctx := context.Background()

		entry := newEntry("https://example.com/p", "https://example.com/p")
		require.NoError(t, s.CreateEntry(ctx, entry))

		title := "Renamed headphones"
		price := "299.00"
		updated, err := s.UpdateEntry(ctx, entry.ID, linkwish.WishlistUpdate{Title: &title, Price: &price})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Record.Title)

		got, err := s.FindEntryByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, title, got.Record.Title)
		assert.Equal(t, price, got.Record.Price)
	})

	t.Run("skips write when nothing changes", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)
		ctx := context.Background()

		entry := newEntry("https://example.com/p", "https://example.com/p")
		require.NoError(t, s.CreateEntry(ctx, entry))

		// Backdate updated_at so a real write would be visible.
		_, err := db.ExecContext(ctx,
			"UPDATE wishlist_entries SET updated_at = ? WHERE id = ?",
			"2020-01-01T00:00:00Z", entry.ID)
		require.NoError(t, err)

		sameTitle := entry.Record.Title
		_, err = s.UpdateEntry(ctx, entry.ID, linkwish.WishlistUpdate{Title: &sameTitle})
		require.NoError(t, err)

		var updatedAt string
		err = db.QueryRowContext(ctx,
			"SELECT updated_at FROM wishlist_entries WHERE id = ?", entry.ID).Scan(&updatedAt)
		require.NoError(t, err)
		assert.Equal(t, "2020-01-01T00:00:00Z", updatedAt)
	})

	t.Run("returns ENOTFOUND for missing entry", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)

		title := "x"
		_, err := s.UpdateEntry(context.Background(), "no-such-id", linkwish.WishlistUpdate{Title: &title})
		require.Error(t, err)
		assert.Equal(t, linkwish.ENOTFOUND, linkwish.ErrorCode(err))
	})
}

func TestWishlistService_DeleteEntry(t *testing.T) {
	t.Parallel()

	t.Run("removes the entry", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)
		ctx := context.Background()

		entry := newEntry("https://example.com/p", "https://example.com/p")
		require.NoError(t, s.CreateEntry(ctx, entry))
		require.NoError(t, s.DeleteEntry(ctx, entry.ID))

		_, err := s.FindEntryByID(ctx, entry.ID)
		assert.Equal(t, linkwish.ENOTFOUND, linkwish.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing entry", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewWishlistService(db)

		err := s.DeleteEntry(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, linkwish.ENOTFOUND, linkwish.ErrorCode(err))
	})
}
