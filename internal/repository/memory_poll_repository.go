package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// MemoryPollRepository is an in-memory PollRepository for tests and local
// development.
type MemoryPollRepository struct {
	mu    sync.RWMutex
	polls map[string]map[string]*domain.Poll // groupID -> pollID -> poll
}

// NewMemoryPollRepository creates a new in-memory poll repository
func NewMemoryPollRepository() *MemoryPollRepository {
	return &MemoryPollRepository{
		polls: make(map[string]map[string]*domain.Poll),
	}
}

func copyPoll(p *domain.Poll) *domain.Poll {
	cp := *p
	cp.Options = make([]domain.PollOption, len(p.Options))
	for i, opt := range p.Options {
		cp.Options[i] = domain.PollOption{Date: opt.Date, Voters: slices.Clone(opt.Voters)}
	}
	return &cp
}

// Create creates a new poll
func (r *MemoryPollRepository) Create(ctx context.Context, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID, ok := r.polls[poll.GroupID]
	if !ok {
		byID = make(map[string]*domain.Poll)
		r.polls[poll.GroupID] = byID
	}
	if _, ok := byID[poll.ID]; ok {
		return fmt.Errorf("%w: poll %s", domain.ErrAlreadyExists, poll.ID)
	}
	byID[poll.ID] = copyPoll(poll)
	return nil
}

// GetByID retrieves a poll
func (r *MemoryPollRepository) GetByID(ctx context.Context, groupID, pollID string) (*domain.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	poll, ok := r.polls[groupID][pollID]
	if !ok {
		return nil, nil
	}
	return copyPoll(poll), nil
}

// List retrieves all polls of a group, newest first
func (r *MemoryPollRepository) List(ctx context.Context, groupID string) ([]*domain.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := r.polls[groupID]
	polls := make([]*domain.Poll, 0, len(byID))
	for _, poll := range byID {
		polls = append(polls, copyPoll(poll))
	}
	sort.Slice(polls, func(i, j int) bool {
		if !polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].CreatedAt.After(polls[j].CreatedAt)
		}
		return polls[i].ID < polls[j].ID
	})
	return polls, nil
}

// Delete removes a poll
func (r *MemoryPollRepository) Delete(ctx context.Context, groupID, pollID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := r.polls[groupID]
	if _, ok := byID[pollID]; !ok {
		return fmt.Errorf("%w: poll %s", domain.ErrNotFound, pollID)
	}
	delete(byID, pollID)
	return nil
}

// Mutate runs fn against the whole poll record while holding the store lock
func (r *MemoryPollRepository) Mutate(ctx context.Context, groupID, pollID string, fn PollMutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.polls[groupID][pollID]
	if !ok {
		return fmt.Errorf("%w: poll %s", domain.ErrNotFound, pollID)
	}

	poll := copyPoll(stored)
	action, err := fn(poll)
	if err != nil {
		return err
	}
	switch action {
	case MutationSave:
		r.polls[groupID][pollID] = copyPoll(poll)
	case MutationDelete:
		delete(r.polls[groupID], pollID)
	}
	return nil
}
