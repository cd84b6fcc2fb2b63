package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// MemoryEventRepository is an in-memory EventRepository for tests and local
// development.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[string]map[string]*domain.Event // groupID -> eventID -> event
}

// NewMemoryEventRepository creates a new in-memory event repository
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{
		events: make(map[string]map[string]*domain.Event),
	}
}

func copyEvent(e *domain.Event) *domain.Event {
	cp := *e
	cp.Attendees = slices.Clone(e.Attendees)
	return &cp
}

func sortEventsByDate(events []*domain.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
}

// Create creates a new event
func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID, ok := r.events[event.GroupID]
	if !ok {
		byID = make(map[string]*domain.Event)
		r.events[event.GroupID] = byID
	}
	if _, ok := byID[event.ID]; ok {
		return fmt.Errorf("%w: event %s", domain.ErrAlreadyExists, event.ID)
	}
	byID[event.ID] = copyEvent(event)
	return nil
}

// GetByID retrieves an event
func (r *MemoryEventRepository) GetByID(ctx context.Context, groupID, eventID string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[groupID][eventID]
	if !ok {
		return nil, nil
	}
	return copyEvent(event), nil
}

// List retrieves all events of a group ordered by date ascending
func (r *MemoryEventRepository) List(ctx context.Context, groupID string) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := r.events[groupID]
	events := make([]*domain.Event, 0, len(byID))
	for _, event := range byID {
		events = append(events, copyEvent(event))
	}
	sortEventsByDate(events)
	return events, nil
}

// NextEvent retrieves the earliest event on or after from
func (r *MemoryEventRepository) NextEvent(ctx context.Context, groupID string, from time.Time) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var candidates []*domain.Event
	for _, event := range r.events[groupID] {
		if !event.Date.Before(from) {
			candidates = append(candidates, copyEvent(event))
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sortEventsByDate(candidates)
	return candidates[0], nil
}

// Delete removes an event
func (r *MemoryEventRepository) Delete(ctx context.Context, groupID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := r.events[groupID]
	if _, ok := byID[eventID]; !ok {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, eventID)
	}
	delete(byID, eventID)
	return nil
}

// Mutate runs fn against the event while holding the store lock
func (r *MemoryEventRepository) Mutate(ctx context.Context, groupID, eventID string, fn EventMutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[groupID][eventID]
	if !ok {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, eventID)
	}

	event := copyEvent(stored)
	action, err := fn(event)
	if err != nil {
		return err
	}
	switch action {
	case MutationSave:
		r.events[groupID][eventID] = copyEvent(event)
	case MutationDelete:
		delete(r.events[groupID], eventID)
	}
	return nil
}
