package dto

// CurateRequest is the request body for curating an item onto the shortlist
type CurateRequest struct {
	ItemID   string         `json:"item_id" binding:"required,min=1,max=200"`
	Metadata map[string]any `json:"metadata"`
}

// ToggleVoteRequest is the request body for toggling a shortlist vote.
// Metadata is only used when the toggle creates the entry.
type ToggleVoteRequest struct {
	Metadata map[string]any `json:"metadata"`
}

// ToggleVoteResponse reports the outcome of a vote toggle
type ToggleVoteResponse struct {
	ItemID  string   `json:"item_id"`
	Voted   bool     `json:"voted"`
	Voters  []string `json:"voters"`
	Removed bool     `json:"removed"`
}

// PromoteRequest is the request body for toggling an item's curated presence
// from the wishlist view
type PromoteRequest struct {
	ItemID   string         `json:"item_id" binding:"required,min=1,max=200"`
	Metadata map[string]any `json:"metadata"`
}

// PromoteResponse reports whether the item is shortlisted after the toggle
type PromoteResponse struct {
	ItemID      string `json:"item_id"`
	Shortlisted bool   `json:"shortlisted"`
}
