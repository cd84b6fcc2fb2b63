package dto

// CreateEventRequest is the request body for scheduling an event
type CreateEventRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string `json:"time" binding:"omitempty,max=50"`
	Location string `json:"location" binding:"omitempty,max=200"`
}

// SetAttendanceRequest is the request body for updating the caller's
// attendance on an event
type SetAttendanceRequest struct {
	Attending *bool `json:"attending" binding:"required"`
}

// VoteEligibilityResponse reports whether the caller may cast a new
// shortlist vote
type VoteEligibilityResponse struct {
	CanVote     bool   `json:"can_vote"`
	NextEventID string `json:"next_event_id,omitempty"`
}
