package repository

import (
	"context"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// WishlistMutateFunc is applied to a user's wishlist inside an atomic
// read-modify-write. The record is always written back afterwards.
type WishlistMutateFunc func(wishlist *domain.Wishlist) error

// WishlistRepository defines the interface for personal wishlist data access.
// Wishlists are keyed by username and independent of any group.
type WishlistRepository interface {
	// Get retrieves a user's wishlist; returns (nil, nil) when absent
	Get(ctx context.Context, username string) (*domain.Wishlist, error)
	// ListAll retrieves every wishlist record (full scan, by design)
	ListAll(ctx context.Context) ([]*domain.Wishlist, error)
	// Mutate runs fn against the wishlist under the store's single-record
	// transaction, creating the record with an empty favorite set when
	// absent. domain.ErrAborted when conflict retries are exhausted.
	Mutate(ctx context.Context, username string, fn WishlistMutateFunc) error
}
