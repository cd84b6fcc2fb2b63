package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
)

// GroupService manages groups and memberships and hands out group scopes
type GroupService interface {
	// CreateGroup creates a group with a fresh join code; the creator
	// becomes its first member
	CreateGroup(ctx context.Context, name, creator string) (*domain.Group, error)
	// GetGroup retrieves a group; domain.ErrNotFound when absent
	GetGroup(ctx context.Context, groupID string) (*domain.Group, error)
	// ListGroups retrieves all groups
	ListGroups(ctx context.Context) ([]*domain.Group, error)
	// DeleteGroup removes a group and all records scoped to it
	DeleteGroup(ctx context.Context, groupID string) error
	// ResolveMemberships returns every group the user belongs to
	ResolveMemberships(ctx context.Context, username string) ([]domain.GroupRef, error)
	// Scope binds a scope handle to the given group. Pure rebinding:
	// no membership check, no state carried over.
	Scope(groupID string) GroupScope
	// VerifyMembership reports whether the user is a member of the group
	VerifyMembership(ctx context.Context, username, groupID string) (bool, error)
	// Join adds the user to the group identified by ID or join code and
	// returns the group ID. Idempotent for existing members.
	Join(ctx context.Context, identifier, username string) (string, error)
	// Leave removes the user's membership. Idempotent.
	Leave(ctx context.Context, groupID, username string) error
	// ListMembers retrieves the members of the scoped group
	ListMembers(ctx context.Context, scope GroupScope) ([]*domain.Member, error)
}

type groupService struct {
	groups repository.GroupRepository
	now    func() time.Time
}

// NewGroupService creates a new group service
func NewGroupService(groups repository.GroupRepository) GroupService {
	return &groupService{
		groups: groups,
		now:    time.Now,
	}
}

// newJoinCode derives a short human-shareable code
func newJoinCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *groupService) CreateGroup(ctx context.Context, name, creator string) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidArgument)
	}
	if creator == "" {
		return nil, fmt.Errorf("%w: creator is required", domain.ErrInvalidArgument)
	}

	group := &domain.Group{
		ID:        uuid.NewString(),
		Name:      name,
		JoinCode:  newJoinCode(),
		CreatedBy: creator,
		CreatedAt: s.now().UTC(),
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	member := &domain.Member{GroupID: group.ID, Username: creator, JoinedAt: group.CreatedAt}
	if err := s.groups.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("%w: group %s", domain.ErrNotFound, groupID)
	}
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.List(ctx)
}

func (s *groupService) DeleteGroup(ctx context.Context, groupID string) error {
	return s.groups.Delete(ctx, groupID)
}

func (s *groupService) ResolveMemberships(ctx context.Context, username string) ([]domain.GroupRef, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidArgument)
	}
	return s.groups.ListGroupsByUsername(ctx, username)
}

func (s *groupService) Scope(groupID string) GroupScope {
	return NewGroupScope(groupID)
}

func (s *groupService) VerifyMembership(ctx context.Context, username, groupID string) (bool, error) {
	return s.groups.IsMember(ctx, groupID, username)
}

func (s *groupService) Join(ctx context.Context, identifier, username string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", fmt.Errorf("%w: group identifier is required", domain.ErrInvalidArgument)
	}
	if username == "" {
		return "", fmt.Errorf("%w: username is required", domain.ErrInvalidArgument)
	}

	group, err := s.groups.GetByID(ctx, identifier)
	if err != nil {
		return "", err
	}
	if group == nil {
		group, err = s.groups.GetByJoinCode(ctx, strings.ToUpper(identifier))
		if err != nil {
			return "", err
		}
	}
	if group == nil {
		return "", fmt.Errorf("%w: no group matches %q", domain.ErrNotFound, identifier)
	}

	member := &domain.Member{GroupID: group.ID, Username: username, JoinedAt: s.now().UTC()}
	if err := s.groups.AddMember(ctx, member); err != nil {
		return "", err
	}
	return group.ID, nil
}

func (s *groupService) Leave(ctx context.Context, groupID, username string) error {
	return s.groups.RemoveMember(ctx, groupID, username)
}

func (s *groupService) ListMembers(ctx context.Context, scope GroupScope) ([]*domain.Member, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: group scope is required", domain.ErrInvalidArgument)
	}
	return s.groups.ListMembers(ctx, scope.GroupID())
}
