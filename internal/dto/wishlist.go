package dto

// ToggleFavoriteResponse reports the outcome of a favorite toggle
type ToggleFavoriteResponse struct {
	ItemID    string   `json:"item_id"`
	Favorite  bool     `json:"favorite"`
	Favorites []string `json:"favorites"`
}
