package domain

import (
	"slices"
	"time"
)

// Poll is a multi-option date poll, scoped to one group. Options are an
// ordered list stored inside the poll record itself, so every option vote is
// a read-modify-write over the whole record.
type Poll struct {
	ID        string       `json:"id"`
	GroupID   string       `json:"group_id"`
	Title     string       `json:"title"`
	CreatedBy string       `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
	Options   []PollOption `json:"options"`
}

// PollOption is one candidate date with its own voter set. Voter sets are
// per-option and independent: a user may hold votes on several options of
// the same poll at once.
type PollOption struct {
	Date   string   `json:"date"` // YYYY-MM-DD
	Voters []string `json:"voters"`
}

// HasVoter reports whether username voted for this option.
func (o *PollOption) HasVoter(username string) bool {
	return slices.Contains(o.Voters, username)
}
