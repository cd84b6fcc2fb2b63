package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
)

// ShortlistService is the per-group shortlist aggregation engine. Entries
// carry a voter set and an optional curator marker; the marker keeps an entry
// alive with zero voters, entries without it vanish when their last vote is
// withdrawn. The engine itself is policy-agnostic: handlers decide who may
// curate.
type ShortlistService interface {
	// Curate creates an entry with an empty voter set and the curator
	// marker. domain.ErrAlreadyExists when an entry for the item is
	// already present.
	Curate(ctx context.Context, scope GroupScope, itemID string, metadata map[string]any, curator string) (*domain.ShortlistEntry, error)
	// Decurate deletes the entry unconditionally, discarding all votes
	Decurate(ctx context.Context, scope GroupScope, itemID string) error
	// Promote toggles an item's curated presence on the shortlist: absent
	// entries are curated, curated entries are decurated, and a
	// vote-created entry gains the curator marker without losing its
	// votes. Returns whether the item is on the shortlist afterwards.
	Promote(ctx context.Context, scope GroupScope, itemID string, metadata map[string]any, curator string) (bool, error)
	// ToggleVote flips username's vote on the entry, creating the entry
	// on a first vote and removing it when the last vote leaves an
	// unmarked entry. Returns the resulting entry (nil when removed)
	// and whether the user holds a vote afterwards.
	ToggleVote(ctx context.Context, scope GroupScope, itemID string, metadata map[string]any, username string) (*domain.ShortlistEntry, bool, error)
	// Get retrieves one entry; domain.ErrNotFound when absent
	Get(ctx context.Context, scope GroupScope, itemID string) (*domain.ShortlistEntry, error)
	// List returns the group's entries ranked by descending vote count,
	// with the top-voted tie flagged
	List(ctx context.Context, scope GroupScope) ([]domain.RankedEntry, error)
}

type shortlistService struct {
	entries  repository.ShortlistRepository
	notifier notify.Notifier
	now      func() time.Time
}

// NewShortlistService creates a new shortlist service
func NewShortlistService(entries repository.ShortlistRepository, notifier notify.Notifier) ShortlistService {
	return &shortlistService{
		entries:  entries,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *shortlistService) publish(ctx context.Context, groupID string) {
	if err := s.notifier.Publish(ctx, notify.ShortlistChannel(groupID)); err != nil {
		logger.WithContext(ctx).Warn("failed to publish shortlist change",
			zap.String("group_id", groupID), zap.Error(err))
	}
}

func (s *shortlistService) Curate(ctx context.Context, scope GroupScope, itemID string, metadata map[string]any, curator string) (*domain.ShortlistEntry, error) {
	if scope.IsZero() || itemID == "" || curator == "" {
		return nil, fmt.Errorf("%w: group scope, item and curator are required", domain.ErrInvalidArgument)
	}

	curatedAt := s.now().UTC()
	entry := &domain.ShortlistEntry{
		GroupID:   scope.GroupID(),
		ItemID:    itemID,
		Metadata:  metadata,
		Voters:    []string{},
		CuratedBy: curator,
		CuratedAt: &curatedAt,
		CreatedAt: curatedAt,
	}
	if err := s.entries.Insert(ctx, entry); err != nil {
		return nil, err
	}

	s.publish(ctx, scope.GroupID())
	return entry, nil
}

func (s *shortlistService) Decurate(ctx context.Context, scope GroupScope, itemID string) error {
	if scope.IsZero() || itemID == "" {
		return fmt.Errorf("%w: group scope and item are required", domain.ErrInvalidArgument)
	}
	if err := s.entries.Delete(ctx, scope.GroupID(), itemID); err != nil {
		return err
	}
	s.publish(ctx, scope.GroupID())
	return nil
}

func (s *shortlistService) Promote(ctx context.Context, scope GroupScope, itemID string, metadata map[string]any, curator string) (bool, error) {
	if scope.IsZero() || itemID == "" || curator == "" {
		return false, fmt.Errorf("%w: group scope, item and curator are required", domain.ErrInvalidArgument)
	}

	curatedAt := s.now().UTC()
	var curated bool
	for attempt := 0; ; attempt++ {
		err := s.entries.Mutate(ctx, scope.GroupID(), itemID, func(entry *domain.ShortlistEntry) (repository.Mutation, error) {
			if entry.IsCurated() {
				curated = false
				return repository.MutationDelete, nil
			}
			entry.CuratedBy = curator
			entry.CuratedAt = &curatedAt
			if len(metadata) > 0 {
				entry.Metadata = metadata
			}
			curated = true
			return repository.MutationSave, nil
		})
		if errors.Is(err, domain.ErrNotFound) {
			_, curErr := s.Curate(ctx, scope, itemID, metadata, curator)
			if errors.Is(curErr, domain.ErrAlreadyExists) && attempt == 0 {
				// Raced with a concurrent create; toggle on the winner.
				continue
			}
			if curErr != nil {
				return false, curErr
			}
			return true, nil
		}
		if err != nil {
			return false, err
		}
		break
	}

	s.publish(ctx, scope.GroupID())
	return curated, nil
}

func (s *shortlistService) ToggleVote(ctx context.Context, scope GroupScope, itemID string, metadata map[string]any, username string) (*domain.ShortlistEntry, bool, error) {
	if scope.IsZero() || itemID == "" || username == "" {
		return nil, false, fmt.Errorf("%w: group scope, item and username are required", domain.ErrInvalidArgument)
	}

	var (
		result *domain.ShortlistEntry
		voted  bool
	)

	for attempt := 0; ; attempt++ {
		err := s.entries.Mutate(ctx, scope.GroupID(), itemID, func(entry *domain.ShortlistEntry) (repository.Mutation, error) {
			if entry.HasVoter(username) {
				entry.Voters = slices.DeleteFunc(entry.Voters, func(v string) bool { return v == username })
				voted = false
				if len(entry.Voters) == 0 && !entry.IsCurated() {
					result = nil
					return repository.MutationDelete, nil
				}
			} else {
				entry.Voters = append(entry.Voters, username)
				voted = true
			}
			result = entry
			return repository.MutationSave, nil
		})
		if errors.Is(err, domain.ErrNotFound) {
			// First vote on an unlisted item creates the entry.
			entry := &domain.ShortlistEntry{
				GroupID:   scope.GroupID(),
				ItemID:    itemID,
				Metadata:  metadata,
				Voters:    []string{username},
				CreatedAt: s.now().UTC(),
			}
			if insErr := s.entries.Insert(ctx, entry); insErr != nil {
				if errors.Is(insErr, domain.ErrAlreadyExists) && attempt == 0 {
					// Raced with a concurrent create; toggle on the winner.
					continue
				}
				return nil, false, insErr
			}
			result, voted = entry, true
		} else if err != nil {
			return nil, false, err
		}
		break
	}

	s.publish(ctx, scope.GroupID())
	return result, voted, nil
}

func (s *shortlistService) Get(ctx context.Context, scope GroupScope, itemID string) (*domain.ShortlistEntry, error) {
	if scope.IsZero() || itemID == "" {
		return nil, fmt.Errorf("%w: group scope and item are required", domain.ErrInvalidArgument)
	}
	entry, err := s.entries.Get(ctx, scope.GroupID(), itemID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: shortlist entry %s", domain.ErrNotFound, itemID)
	}
	return entry, nil
}

func (s *shortlistService) List(ctx context.Context, scope GroupScope) ([]domain.RankedEntry, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: group scope is required", domain.ErrInvalidArgument)
	}

	entries, err := s.entries.List(ctx, scope.GroupID())
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedEntry, 0, len(entries))
	maxVotes := 0
	for _, entry := range entries {
		if n := len(entry.Voters); n > maxVotes {
			maxVotes = n
		}
		ranked = append(ranked, domain.RankedEntry{ShortlistEntry: *entry, VoteCount: len(entry.Voters)})
	}
	slices.SortStableFunc(ranked, func(a, b domain.RankedEntry) int {
		return b.VoteCount - a.VoteCount
	})
	for i := range ranked {
		ranked[i].TopVoted = maxVotes > 0 && ranked[i].VoteCount == maxVotes
	}
	return ranked, nil
}
