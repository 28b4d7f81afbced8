package linkwish

import (
	"context"
	"time"
)

// WishlistEntry is a saved link with its extracted metadata. Entries are
// created on a successful add, updated only by explicit edits, and never
// mutated by the extraction pipeline.
//
// Invariant: no two entries share a canonical URL.
type WishlistEntry struct {
	ID           string           `json:"id"`
	URL          string           `json:"url"`
	CanonicalURL string           `json:"canonicalUrl"`
	Record       ExtractionRecord `json:"record"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *WishlistEntry) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "entry URL required")
	}
	if e.CanonicalURL == "" {
		return Errorf(EINVALID, "entry canonical URL required")
	}
	return nil
}

// WishlistService represents a service for managing wishlist entries.
type WishlistService interface {
	// CreateEntry creates a new entry.
	// Returns ECONFLICT if an entry with the same canonical URL exists.
	CreateEntry(ctx context.Context, entry *WishlistEntry) error

	// FindEntryByID retrieves an entry by ID.
	// Returns ENOTFOUND if the entry does not exist.
	FindEntryByID(ctx context.Context, id string) (*WishlistEntry, error)

	// FindEntries retrieves entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter WishlistFilter) ([]*WishlistEntry, error)

	// UpdateEntry applies a partial update to an existing entry.
	// Returns ENOTFOUND if the entry does not exist.
	UpdateEntry(ctx context.Context, id string, upd WishlistUpdate) (*WishlistEntry, error)

	// DeleteEntry permanently removes an entry.
	// Returns ENOTFOUND if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}

// WishlistFilter represents a filter for FindEntries.
type WishlistFilter struct {
	ID           *string `json:"id"`
	CanonicalURL *string `json:"canonicalUrl"`
	SiteName     *string `json:"siteName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// WishlistUpdate represents fields that can be updated on an entry.
type WishlistUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Currency    *string `json:"currency"`
	Category    *string `json:"category"`
}
