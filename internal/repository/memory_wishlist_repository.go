package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// MemoryWishlistRepository is an in-memory WishlistRepository for tests and
// local development.
type MemoryWishlistRepository struct {
	mu        sync.RWMutex
	wishlists map[string]*domain.Wishlist // username -> wishlist
}

// NewMemoryWishlistRepository creates a new in-memory wishlist repository
func NewMemoryWishlistRepository() *MemoryWishlistRepository {
	return &MemoryWishlistRepository{
		wishlists: make(map[string]*domain.Wishlist),
	}
}

func copyWishlist(w *domain.Wishlist) *domain.Wishlist {
	cp := *w
	cp.Favorites = slices.Clone(w.Favorites)
	return &cp
}

// Get retrieves a user's wishlist
func (r *MemoryWishlistRepository) Get(ctx context.Context, username string) (*domain.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlist, ok := r.wishlists[username]
	if !ok {
		return nil, nil
	}
	return copyWishlist(wishlist), nil
}

// ListAll retrieves every wishlist record ordered by username
func (r *MemoryWishlistRepository) ListAll(ctx context.Context) ([]*domain.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlists := make([]*domain.Wishlist, 0, len(r.wishlists))
	for _, wishlist := range r.wishlists {
		wishlists = append(wishlists, copyWishlist(wishlist))
	}
	sort.Slice(wishlists, func(i, j int) bool { return wishlists[i].Username < wishlists[j].Username })
	return wishlists, nil
}

// Mutate runs fn against the wishlist while holding the store lock, creating
// the record on first use
func (r *MemoryWishlistRepository) Mutate(ctx context.Context, username string, fn WishlistMutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.wishlists[username]
	if !ok {
		stored = &domain.Wishlist{Username: username, Favorites: []string{}}
	}

	wishlist := copyWishlist(stored)
	if err := fn(wishlist); err != nil {
		return err
	}
	r.wishlists[username] = copyWishlist(wishlist)
	return nil
}
