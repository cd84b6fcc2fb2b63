package domain

import (
	"slices"
	"time"
)

// DateLayout is the wire format for event and poll option dates.
const DateLayout = "2006-01-02"

// Event is a scheduled game night, scoped to one group. Attendees is the
// set of usernames registered as attending; it drives the attendance gate
// for new shortlist votes.
type Event struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"` // date component only
	Time      string    `json:"time,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedBy string    `json:"created_by"`
	Attendees []string  `json:"attendees"`
	CreatedAt time.Time `json:"created_at"`
}

// HasAttendee reports whether username is registered as attending.
func (e *Event) HasAttendee(username string) bool {
	return slices.Contains(e.Attendees, username)
}
