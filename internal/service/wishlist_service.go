package service

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
)

// WishlistService manages personal favorite sets and derives the cross-user
// interest summary. Wishlists are keyed by username and independent of any
// group; the summary is recomputed from a full scan on each request, never
// persisted.
type WishlistService interface {
	// Get returns the user's wishlist, empty when none exists yet
	Get(ctx context.Context, username string) (*domain.Wishlist, error)
	// ToggleFavorite flips itemID in the user's favorite set. Returns
	// the updated wishlist and whether the item is a favorite afterwards.
	ToggleFavorite(ctx context.Context, username, itemID string) (*domain.Wishlist, bool, error)
	// ComputeSummary aggregates favorites across all users into per-item
	// counts, most-wanted first. A non-zero scope restricts the scan to
	// the group's current members.
	ComputeSummary(ctx context.Context, scope GroupScope) ([]domain.WishlistSummaryEntry, error)
}

type wishlistService struct {
	wishlists repository.WishlistRepository
	groups    repository.GroupRepository
	notifier  notify.Notifier
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlists repository.WishlistRepository, groups repository.GroupRepository, notifier notify.Notifier) WishlistService {
	return &wishlistService{
		wishlists: wishlists,
		groups:    groups,
		notifier:  notifier,
	}
}

func (s *wishlistService) publish(ctx context.Context) {
	if err := s.notifier.Publish(ctx, notify.WishlistsChannel()); err != nil {
		logger.WithContext(ctx).Warn("failed to publish wishlists change", zap.Error(err))
	}
}

func (s *wishlistService) Get(ctx context.Context, username string) (*domain.Wishlist, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidArgument)
	}
	wishlist, err := s.wishlists.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return &domain.Wishlist{Username: username, Favorites: []string{}}, nil
	}
	return wishlist, nil
}

func (s *wishlistService) ToggleFavorite(ctx context.Context, username, itemID string) (*domain.Wishlist, bool, error) {
	if username == "" || itemID == "" {
		return nil, false, fmt.Errorf("%w: username and item are required", domain.ErrInvalidArgument)
	}

	var (
		result   *domain.Wishlist
		favorite bool
	)
	err := s.wishlists.Mutate(ctx, username, func(wishlist *domain.Wishlist) error {
		if wishlist.HasFavorite(itemID) {
			wishlist.Favorites = slices.DeleteFunc(wishlist.Favorites, func(f string) bool { return f == itemID })
			favorite = false
		} else {
			wishlist.Favorites = append(wishlist.Favorites, itemID)
			favorite = true
		}
		result = wishlist
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.publish(ctx)
	return result, favorite, nil
}

func (s *wishlistService) ComputeSummary(ctx context.Context, scope GroupScope) ([]domain.WishlistSummaryEntry, error) {
	wishlists, err := s.wishlists.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var allowed map[string]struct{}
	if !scope.IsZero() {
		members, err := s.groups.ListMembers(ctx, scope.GroupID())
		if err != nil {
			return nil, err
		}
		allowed = make(map[string]struct{}, len(members))
		for _, m := range members {
			allowed[m.Username] = struct{}{}
		}
	}

	byItem := make(map[string][]string)
	for _, wishlist := range wishlists {
		if allowed != nil {
			if _, ok := allowed[wishlist.Username]; !ok {
				continue
			}
		}
		for _, itemID := range wishlist.Favorites {
			byItem[itemID] = append(byItem[itemID], wishlist.Username)
		}
	}

	summary := make([]domain.WishlistSummaryEntry, 0, len(byItem))
	for itemID, usernames := range byItem {
		sort.Strings(usernames)
		summary = append(summary, domain.WishlistSummaryEntry{
			ItemID:    itemID,
			Count:     len(usernames),
			Usernames: usernames,
		})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}
		return summary[i].ItemID < summary[j].ItemID
	})
	return summary, nil
}
