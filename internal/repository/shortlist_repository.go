package repository

import (
	"context"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// ShortlistMutateFunc is applied to a shortlist entry inside an atomic
// read-modify-write. It returns the mutation to apply to the record.
type ShortlistMutateFunc func(entry *domain.ShortlistEntry) (Mutation, error)

// ShortlistRepository defines the interface for shortlist entry data access.
//
// Mutate is the single concurrency-sensitive operation: the store must run
// the closure against a current copy of the record and apply the resulting
// mutation as one atomic unit, so concurrent toggles never lose an update.
type ShortlistRepository interface {
	// Insert creates a new entry; domain.ErrAlreadyExists on duplicate (group, item)
	Insert(ctx context.Context, entry *domain.ShortlistEntry) error
	// Get retrieves one entry; returns (nil, nil) when absent
	Get(ctx context.Context, groupID, itemID string) (*domain.ShortlistEntry, error)
	// List retrieves all entries of a group in insertion order
	List(ctx context.Context, groupID string) ([]*domain.ShortlistEntry, error)
	// Delete removes an entry unconditionally; domain.ErrNotFound when absent
	Delete(ctx context.Context, groupID, itemID string) error
	// Mutate runs fn against the entry under the store's single-record
	// transaction. domain.ErrNotFound when the entry is absent;
	// domain.ErrAborted when conflict retries are exhausted.
	Mutate(ctx context.Context, groupID, itemID string, fn ShortlistMutateFunc) error
}
