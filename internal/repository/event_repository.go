package repository

import (
	"context"
	"time"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// EventMutateFunc is applied to an event inside an atomic read-modify-write
// (used for attendee-set updates).
type EventMutateFunc func(event *domain.Event) (Mutation, error)

// EventRepository defines the interface for game-night event data access
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event; returns (nil, nil) when absent
	GetByID(ctx context.Context, groupID, eventID string) (*domain.Event, error)
	// List retrieves all events of a group ordered by date ascending
	List(ctx context.Context, groupID string) ([]*domain.Event, error)
	// NextEvent retrieves the earliest event with date >= from;
	// returns (nil, nil) when there is none
	NextEvent(ctx context.Context, groupID string, from time.Time) (*domain.Event, error)
	// Delete removes an event; domain.ErrNotFound when absent
	Delete(ctx context.Context, groupID, eventID string) error
	// Mutate runs fn against the event under the store's single-record
	// transaction. domain.ErrNotFound when absent; domain.ErrAborted when
	// conflict retries are exhausted.
	Mutate(ctx context.Context, groupID, eventID string, fn EventMutateFunc) error
}
