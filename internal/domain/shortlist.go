package domain

import (
	"slices"
	"time"
)

// ShortlistEntry is a nominated catalog item plus its voter set, scoped to
// one group. Metadata is an opaque attribute bag supplied by the caller and
// echoed back unchanged.
//
// Invariant: Voters holds distinct usernames. An entry with a curator marker
// (CuratedBy != "") persists with an empty voter set; an entry without one is
// deleted outright once its voter set becomes empty.
type ShortlistEntry struct {
	GroupID   string         `json:"group_id"`
	ItemID    string         `json:"item_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Voters    []string       `json:"voters"`
	CuratedBy string         `json:"curated_by,omitempty"`
	CuratedAt *time.Time     `json:"curated_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// HasVoter reports whether username is in the entry's voter set.
func (e *ShortlistEntry) HasVoter(username string) bool {
	return slices.Contains(e.Voters, username)
}

// IsCurated reports whether the entry carries the curator marker.
func (e *ShortlistEntry) IsCurated() bool {
	return e.CuratedBy != ""
}

// RankedEntry is a shortlist entry annotated for display: entries are sorted
// by descending voter count and the ones tied for the maximum are flagged.
type RankedEntry struct {
	ShortlistEntry
	VoteCount int  `json:"vote_count"`
	TopVoted  bool `json:"top_voted"`
}
