package dto

// CreatePollRequest is the request body for creating a date poll
type CreatePollRequest struct {
	Title string   `json:"title" binding:"required,min=1,max=200"`
	Dates []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
}
