package domain

import "slices"

// Wishlist is a user's personal, group-independent set of favorited items.
// One record per username.
type Wishlist struct {
	Username  string   `json:"username"`
	Favorites []string `json:"favorites"`
}

// HasFavorite reports whether itemID is in the favorite set.
func (w *Wishlist) HasFavorite(itemID string) bool {
	return slices.Contains(w.Favorites, itemID)
}

// WishlistSummaryEntry is the derived per-item interest aggregate: how many
// users favorited the item and who they are. Recomputed on each request,
// never persisted.
type WishlistSummaryEntry struct {
	ItemID    string   `json:"item_id"`
	Count     int      `json:"count"`
	Usernames []string `json:"usernames"`
}
