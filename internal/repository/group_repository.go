package repository

import (
	"context"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// GroupRepository defines the interface for group and membership data access
type GroupRepository interface {
	// Create creates a new group
	Create(ctx context.Context, group *domain.Group) error
	// GetByID retrieves a group by ID; returns (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	// GetByJoinCode retrieves a group by its join code; returns (nil, nil) when absent
	GetByJoinCode(ctx context.Context, code string) (*domain.Group, error)
	// List retrieves all groups
	List(ctx context.Context) ([]*domain.Group, error)
	// Delete removes a group; sub-records are removed with it
	Delete(ctx context.Context, id string) error
	// AddMember adds a membership record; idempotent on duplicates
	AddMember(ctx context.Context, member *domain.Member) error
	// RemoveMember deletes a membership record; idempotent
	RemoveMember(ctx context.Context, groupID, username string) error
	// ListMembers retrieves all members of a group
	ListMembers(ctx context.Context, groupID string) ([]*domain.Member, error)
	// ListGroupsByUsername retrieves every group the user is a member of
	ListGroupsByUsername(ctx context.Context, username string) ([]domain.GroupRef, error)
	// IsMember reports whether the user is a member of the group
	IsMember(ctx context.Context, groupID, username string) (bool, error)
}
