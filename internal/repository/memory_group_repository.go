package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// MemoryGroupRepository is an in-memory GroupRepository for tests and local
// development.
type MemoryGroupRepository struct {
	mu      sync.RWMutex
	groups  map[string]*domain.Group
	members map[string]map[string]*domain.Member // groupID -> username -> member
}

// NewMemoryGroupRepository creates a new in-memory group repository
func NewMemoryGroupRepository() *MemoryGroupRepository {
	return &MemoryGroupRepository{
		groups:  make(map[string]*domain.Group),
		members: make(map[string]map[string]*domain.Member),
	}
}

func copyGroup(g *domain.Group) *domain.Group {
	cp := *g
	return &cp
}

func copyMember(m *domain.Member) *domain.Member {
	cp := *m
	return &cp
}

// Create creates a new group
func (r *MemoryGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[group.ID]; ok {
		return fmt.Errorf("%w: group %s", domain.ErrAlreadyExists, group.ID)
	}
	r.groups[group.ID] = copyGroup(group)
	r.members[group.ID] = make(map[string]*domain.Member)
	return nil
}

// GetByID retrieves a group by ID
func (r *MemoryGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	return copyGroup(group), nil
}

// GetByJoinCode retrieves a group by its join code
func (r *MemoryGroupRepository) GetByJoinCode(ctx context.Context, code string) (*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, group := range r.groups {
		if group.JoinCode == code {
			return copyGroup(group), nil
		}
	}
	return nil, nil
}

// List retrieves all groups ordered by name
func (r *MemoryGroupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]*domain.Group, 0, len(r.groups))
	for _, group := range r.groups {
		groups = append(groups, copyGroup(group))
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

// Delete removes a group and its memberships
func (r *MemoryGroupRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return fmt.Errorf("%w: group %s", domain.ErrNotFound, id)
	}
	delete(r.groups, id)
	delete(r.members, id)
	return nil
}

// AddMember adds a membership record, ignoring duplicates
func (r *MemoryGroupRepository) AddMember(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byUser, ok := r.members[member.GroupID]
	if !ok {
		byUser = make(map[string]*domain.Member)
		r.members[member.GroupID] = byUser
	}
	if _, ok := byUser[member.Username]; ok {
		return nil
	}
	byUser[member.Username] = copyMember(member)
	return nil
}

// RemoveMember deletes a membership record if present
func (r *MemoryGroupRepository) RemoveMember(ctx context.Context, groupID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byUser, ok := r.members[groupID]; ok {
		delete(byUser, username)
	}
	return nil
}

// ListMembers retrieves all members of a group ordered by username
func (r *MemoryGroupRepository) ListMembers(ctx context.Context, groupID string) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := r.members[groupID]
	members := make([]*domain.Member, 0, len(byUser))
	for _, member := range byUser {
		members = append(members, copyMember(member))
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Username < members[j].Username })
	return members, nil
}

// ListGroupsByUsername retrieves every group the user belongs to
func (r *MemoryGroupRepository) ListGroupsByUsername(ctx context.Context, username string) ([]domain.GroupRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var refs []domain.GroupRef
	for groupID, byUser := range r.members {
		if _, ok := byUser[username]; !ok {
			continue
		}
		if group, ok := r.groups[groupID]; ok {
			refs = append(refs, domain.GroupRef{ID: group.ID, Name: group.Name})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// IsMember reports whether the user is a member of the group
func (r *MemoryGroupRepository) IsMember(ctx context.Context, groupID, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser, ok := r.members[groupID]
	if !ok {
		return false, nil
	}
	_, ok = byUser[username]
	return ok, nil
}
