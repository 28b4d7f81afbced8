package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkwish/linkwish"
)

// Compile-time interface verification.
var _ linkwish.WishlistService = (*WishlistService)(nil)

// WishlistService implements linkwish.WishlistService using SQLite.
type WishlistService struct {
	db *DB
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(db *DB) *WishlistService {
	return &WishlistService{db: db}
}

const entryColumns = `id, url, canonical_url, title, image_url, images, price, currency,
	original_price, discount, site_name, description, category, brand, rating,
	review_count, availability, features, offers, content_type, created_at, updated_at`

// CreateEntry creates a new entry. The canonical URL uniqueness is enforced
// by the schema; a violation surfaces as ECONFLICT.
func (s *WishlistService) CreateEntry(ctx context.Context, entry *linkwish.WishlistEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = entry.CreatedAt

	images, err := encodeStrings(entry.Record.Images)
	if err != nil {
		return err
	}
	features, err := encodeStrings(entry.Record.Features)
	if err != nil {
		return err
	}
	offers, err := encodeStrings(entry.Record.Offers)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wishlist_entries (id, url, canonical_url, title, image_url, images,
			price, currency, original_price, discount, site_name, description, category,
			brand, rating, review_count, availability, features, offers, content_type,
			content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.URL, entry.CanonicalURL, entry.Record.Title, entry.Record.ImageURL, images,
		entry.Record.Price, entry.Record.Currency, entry.Record.OriginalPrice, entry.Record.Discount,
		entry.Record.SiteName, entry.Record.Description, entry.Record.Category, entry.Record.Brand,
		entry.Record.Rating, entry.Record.ReviewCount, entry.Record.Availability, features, offers,
		entry.Record.ContentType, entry.Record.Hash(),
		entry.CreatedAt.Format(time.RFC3339), entry.UpdatedAt.Format(time.RFC3339))

	if isUniqueViolation(err) {
		return linkwish.Errorf(linkwish.ECONFLICT, "entry already exists for %s", entry.CanonicalURL)
	}
	return err
}

// FindEntryByID retrieves an entry by ID.
func (s *WishlistService) FindEntryByID(ctx context.Context, id string) (*linkwish.WishlistEntry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM wishlist_entries WHERE id = ?", id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, linkwish.Errorf(linkwish.ENOTFOUND, "entry not found")
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntries retrieves entries matching the filter, newest first.
func (s *WishlistService) FindEntries(ctx context.Context, filter linkwish.WishlistFilter) ([]*linkwish.WishlistEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + entryColumns + " FROM wishlist_entries WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CanonicalURL != nil {
		query.WriteString(" AND canonical_url = ?")
		args = append(args, *filter.CanonicalURL)
	}
	if filter.SiteName != nil {
		query.WriteString(" AND site_name = ?")
		args = append(args, *filter.SiteName)
	}

	query.WriteString(" ORDER BY created_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*linkwish.WishlistEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// UpdateEntry applies a partial update to an existing entry. A write is
// skipped entirely when the update leaves the record unchanged.
func (s *WishlistService) UpdateEntry(ctx context.Context, id string, upd linkwish.WishlistUpdate) (*linkwish.WishlistEntry, error) {
	entry, err := s.FindEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := entry.Record.Hash()

	if upd.Title != nil {
		entry.Record.Title = *upd.Title
	}
	if upd.Description != nil {
		entry.Record.Description = *upd.Description
	}
	if upd.Price != nil {
		entry.Record.Price = *upd.Price
	}
	if upd.Currency != nil {
		entry.Record.Currency = *upd.Currency
	}
	if upd.Category != nil {
		entry.Record.Category = *upd.Category
	}

	after := entry.Record.Hash()
	if after == before {
		return entry, nil
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	entry.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE wishlist_entries
		SET title = ?, description = ?, price = ?, currency = ?, category = ?,
			content_hash = ?, updated_at = ?
		WHERE id = ?
	`, entry.Record.Title, entry.Record.Description, entry.Record.Price,
		entry.Record.Currency, entry.Record.Category, after,
		entry.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry permanently removes an entry.
func (s *WishlistService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM wishlist_entries WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return linkwish.Errorf(linkwish.ENOTFOUND, "entry not found")
	}

	return nil
}

// scanner abstracts over sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry reads one wishlist row in entryColumns order.
func scanEntry(sc scanner) (*linkwish.WishlistEntry, error) {
	var entry linkwish.WishlistEntry
	var images, features, offers string
	var createdAt, updatedAt string

	err := sc.Scan(&entry.ID, &entry.URL, &entry.CanonicalURL,
		&entry.Record.Title, &entry.Record.ImageURL, &images,
		&entry.Record.Price, &entry.Record.Currency, &entry.Record.OriginalPrice,
		&entry.Record.Discount, &entry.Record.SiteName, &entry.Record.Description,
		&entry.Record.Category, &entry.Record.Brand, &entry.Record.Rating,
		&entry.Record.ReviewCount, &entry.Record.Availability, &features, &offers,
		&entry.Record.ContentType, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if entry.Record.Images, err = decodeStrings(images, "images"); err != nil {
		return nil, err
	}
	if entry.Record.Features, err = decodeStrings(features, "features"); err != nil {
		return nil, err
	}
	if entry.Record.Offers, err = decodeStrings(offers, "offers"); err != nil {
		return nil, err
	}

	if entry.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &entry, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
