package mock

import (
	"context"

	"github.com/linkwish/linkwish"
)

var _ linkwish.WishlistService = (*WishlistService)(nil)

// WishlistService is a mock implementation of linkwish.WishlistService.
type WishlistService struct {
	CreateEntryFn   func(ctx context.Context, entry *linkwish.WishlistEntry) error
	FindEntryByIDFn func(ctx context.Context, id string) (*linkwish.WishlistEntry, error)
	FindEntriesFn   func(ctx context.Context, filter linkwish.WishlistFilter) ([]*linkwish.WishlistEntry, error)
	UpdateEntryFn   func(ctx context.Context, id string, upd linkwish.WishlistUpdate) (*linkwish.WishlistEntry, error)
	DeleteEntryFn   func(ctx context.Context, id string) error
}

func (s *WishlistService) CreateEntry(ctx context.Context, entry *linkwish.WishlistEntry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *WishlistService) FindEntryByID(ctx context.Context, id string) (*linkwish.WishlistEntry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *WishlistService) FindEntries(ctx context.Context, filter linkwish.WishlistFilter) ([]*linkwish.WishlistEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *WishlistService) UpdateEntry(ctx context.Context, id string, upd linkwish.WishlistUpdate) (*linkwish.WishlistEntry, error) {
	return s.UpdateEntryFn(ctx, id, upd)
}

func (s *WishlistService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}
