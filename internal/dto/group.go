package dto

import (
	"time"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// CreateGroupRequest is the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// JoinGroupRequest is the request body for joining a group by ID or join code
type JoinGroupRequest struct {
	Identifier string `json:"identifier" binding:"required,min=1,max=100"`
}

// GroupResponse is the API representation of a group
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGroupResponse converts a domain group to its API representation
func NewGroupResponse(g *domain.Group) *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		JoinCode:  g.JoinCode,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}
}

// JoinGroupResponse reports the group joined
type JoinGroupResponse struct {
	GroupID string `json:"group_id"`
}

// MembershipResponse reports whether the caller belongs to a group
type MembershipResponse struct {
	GroupID string `json:"group_id"`
	Member  bool   `json:"member"`
}

// MemberResponse is the API representation of a group member
type MemberResponse struct {
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// NewMemberResponse converts a domain member to its API representation
func NewMemberResponse(m *domain.Member) *MemberResponse {
	return &MemberResponse{Username: m.Username, JoinedAt: m.JoinedAt}
}
