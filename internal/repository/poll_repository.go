package repository

import (
	"context"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// PollMutateFunc is applied to a poll inside an atomic read-modify-write.
// Options live inside the poll record, so option votes rewrite the whole
// record.
type PollMutateFunc func(poll *domain.Poll) (Mutation, error)

// PollRepository defines the interface for date-poll data access
type PollRepository interface {
	// Create creates a new poll
	Create(ctx context.Context, poll *domain.Poll) error
	// GetByID retrieves a poll; returns (nil, nil) when absent
	GetByID(ctx context.Context, groupID, pollID string) (*domain.Poll, error)
	// List retrieves all polls of a group, newest first
	List(ctx context.Context, groupID string) ([]*domain.Poll, error)
	// Delete removes a poll; domain.ErrNotFound when absent
	Delete(ctx context.Context, groupID, pollID string) error
	// Mutate runs fn against the whole poll record under the store's
	// single-record transaction. domain.ErrNotFound when absent;
	// domain.ErrAborted when conflict retries are exhausted.
	Mutate(ctx context.Context, groupID, pollID string, fn PollMutateFunc) error
}
