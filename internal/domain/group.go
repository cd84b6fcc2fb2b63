package domain

import "time"

// Group is the isolation boundary for shortlist, events and polls.
// Every tenant-scoped record carries a GroupID referencing one of these.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is a user's association with a group. At most one membership
// record exists per (group, username) pair.
type Member struct {
	GroupID  string    `json:"group_id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupRef is the lightweight view of a group returned by membership
// resolution.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
