package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
)

// MemoryShortlistRepository is an in-memory ShortlistRepository for tests and
// local development. The store mutex serializes Mutate calls, giving the same
// lost-update protection as the transactional implementation.
type MemoryShortlistRepository struct {
	mu      sync.RWMutex
	entries map[string]map[string]*domain.ShortlistEntry // groupID -> itemID -> entry
}

// NewMemoryShortlistRepository creates a new in-memory shortlist repository
func NewMemoryShortlistRepository() *MemoryShortlistRepository {
	return &MemoryShortlistRepository{
		entries: make(map[string]map[string]*domain.ShortlistEntry),
	}
}

func copyShortlistEntry(e *domain.ShortlistEntry) *domain.ShortlistEntry {
	cp := *e
	cp.Voters = slices.Clone(e.Voters)
	if e.Metadata != nil {
		cp.Metadata = maps.Clone(e.Metadata)
	}
	if e.CuratedAt != nil {
		t := *e.CuratedAt
		cp.CuratedAt = &t
	}
	return &cp
}

// Insert creates a new entry
func (r *MemoryShortlistRepository) Insert(ctx context.Context, entry *domain.ShortlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byItem, ok := r.entries[entry.GroupID]
	if !ok {
		byItem = make(map[string]*domain.ShortlistEntry)
		r.entries[entry.GroupID] = byItem
	}
	if _, ok := byItem[entry.ItemID]; ok {
		return fmt.Errorf("%w: shortlist entry %s", domain.ErrAlreadyExists, entry.ItemID)
	}
	byItem[entry.ItemID] = copyShortlistEntry(entry)
	return nil
}

// Get retrieves one entry
func (r *MemoryShortlistRepository) Get(ctx context.Context, groupID, itemID string) (*domain.ShortlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[groupID][itemID]
	if !ok {
		return nil, nil
	}
	return copyShortlistEntry(entry), nil
}

// List retrieves all entries of a group in insertion order
func (r *MemoryShortlistRepository) List(ctx context.Context, groupID string) ([]*domain.ShortlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byItem := r.entries[groupID]
	entries := make([]*domain.ShortlistEntry, 0, len(byItem))
	for _, entry := range byItem {
		entries = append(entries, copyShortlistEntry(entry))
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ItemID < entries[j].ItemID
	})
	return entries, nil
}

// Delete removes an entry unconditionally
func (r *MemoryShortlistRepository) Delete(ctx context.Context, groupID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byItem := r.entries[groupID]
	if _, ok := byItem[itemID]; !ok {
		return fmt.Errorf("%w: shortlist entry %s", domain.ErrNotFound, itemID)
	}
	delete(byItem, itemID)
	return nil
}

// Mutate runs fn against the entry while holding the store lock
func (r *MemoryShortlistRepository) Mutate(ctx context.Context, groupID, itemID string, fn ShortlistMutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[groupID][itemID]
	if !ok {
		return fmt.Errorf("%w: shortlist entry %s", domain.ErrNotFound, itemID)
	}

	entry := copyShortlistEntry(stored)
	action, err := fn(entry)
	if err != nil {
		return err
	}
	switch action {
	case MutationSave:
		r.entries[groupID][itemID] = copyShortlistEntry(entry)
	case MutationDelete:
		delete(r.entries[groupID], itemID)
	}
	return nil
}
