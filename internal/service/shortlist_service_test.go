package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
)

func newShortlistFixture() (ShortlistService, GroupScope) {
	repo := repository.NewMemoryShortlistRepository()
	svc := NewShortlistService(repo, notify.NewMemoryNotifier())
	return svc, NewGroupScope("g1")
}

func TestToggleVoteCreatesEntryOnFirstVote(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	entry, voted, err := svc.ToggleVote(ctx, scope, "chess", map[string]any{"name": "Chess"}, "alice")
	require.NoError(t, err)
	assert.True(t, voted)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"alice"}, entry.Voters)
	assert.False(t, entry.IsCurated())
}

func TestToggleVoteTwiceRestoresOriginalState(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, _, err := svc.ToggleVote(ctx, scope, "chess", nil, "alice")
	require.NoError(t, err)

	entry, voted, err := svc.ToggleVote(ctx, scope, "chess", nil, "alice")
	require.NoError(t, err)
	assert.False(t, voted)
	// Uncurated entry with no voters left is removed outright.
	assert.Nil(t, entry)

	_, err = svc.Get(ctx, scope, "chess")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCuratedEntryPersistsAtZeroVotes(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, err := svc.Curate(ctx, scope, "chess", map[string]any{"name": "Chess"}, "admin")
	require.NoError(t, err)

	_, voted, err := svc.ToggleVote(ctx, scope, "chess", nil, "alice")
	require.NoError(t, err)
	assert.True(t, voted)

	entry, voted, err := svc.ToggleVote(ctx, scope, "chess", nil, "alice")
	require.NoError(t, err)
	assert.False(t, voted)
	require.NotNil(t, entry, "curated entry must survive an empty voter set")
	assert.Empty(t, entry.Voters)
	assert.Equal(t, "admin", entry.CuratedBy)

	got, err := svc.Get(ctx, scope, "chess")
	require.NoError(t, err)
	assert.Empty(t, got.Voters)
}

func TestCurateDuplicateFails(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, err := svc.Curate(ctx, scope, "chess", nil, "admin")
	require.NoError(t, err)

	_, err = svc.Curate(ctx, scope, "chess", nil, "admin")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestDecurateDiscardsVotes(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, err := svc.Curate(ctx, scope, "chess", nil, "admin")
	require.NoError(t, err)
	_, _, err = svc.ToggleVote(ctx, scope, "chess", nil, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Decurate(ctx, scope, "chess"))

	_, err = svc.Get(ctx, scope, "chess")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Decurate(ctx, scope, "chess"), domain.ErrNotFound)
}

func TestPromoteTogglesCuratedPresence(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	shortlisted, err := svc.Promote(ctx, scope, "catan", map[string]any{"name": "Catan"}, "admin")
	require.NoError(t, err)
	assert.True(t, shortlisted)

	shortlisted, err = svc.Promote(ctx, scope, "catan", nil, "admin")
	require.NoError(t, err)
	assert.False(t, shortlisted)

	_, err = svc.Get(ctx, scope, "catan")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPromoteMarksVoteCreatedEntryWithoutLosingVotes(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, _, err := svc.ToggleVote(ctx, scope, "catan", nil, "alice")
	require.NoError(t, err)

	shortlisted, err := svc.Promote(ctx, scope, "catan", nil, "admin")
	require.NoError(t, err)
	assert.True(t, shortlisted)

	entry, err := svc.Get(ctx, scope, "catan")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, entry.Voters)
	assert.Equal(t, "admin", entry.CuratedBy)
}

func TestListRanksByVotesAndFlagsTopVoted(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	for _, voter := range []string{"alice", "bob", "carol"} {
		_, _, err := svc.ToggleVote(ctx, scope, "chess", nil, voter)
		require.NoError(t, err)
	}
	for _, voter := range []string{"alice", "bob"} {
		_, _, err := svc.ToggleVote(ctx, scope, "catan", nil, voter)
		require.NoError(t, err)
	}
	_, err := svc.Curate(ctx, scope, "azul", nil, "admin")
	require.NoError(t, err)

	ranked, err := svc.List(ctx, scope)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "chess", ranked[0].ItemID)
	assert.Equal(t, 3, ranked[0].VoteCount)
	assert.True(t, ranked[0].TopVoted)

	assert.Equal(t, "catan", ranked[1].ItemID)
	assert.False(t, ranked[1].TopVoted)

	assert.Equal(t, "azul", ranked[2].ItemID)
	assert.Equal(t, 0, ranked[2].VoteCount)
	assert.False(t, ranked[2].TopVoted)
}

func TestTopVotedTieFlagsAllLeaders(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, _, err := svc.ToggleVote(ctx, scope, "chess", nil, "alice")
	require.NoError(t, err)
	_, _, err = svc.ToggleVote(ctx, scope, "catan", nil, "bob")
	require.NoError(t, err)

	ranked, err := svc.List(ctx, scope)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.True(t, ranked[0].TopVoted)
	assert.True(t, ranked[1].TopVoted)
}

func TestConcurrentTogglesLoseNoUpdates(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, err := svc.Curate(ctx, scope, "chess", nil, "admin")
	require.NoError(t, err)

	const voters = 50
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := svc.ToggleVote(ctx, scope, "chess", nil, fmt.Sprintf("user-%02d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entry, err := svc.Get(ctx, scope, "chess")
	require.NoError(t, err)
	assert.Len(t, entry.Voters, voters, "every concurrent add must survive")
}

func TestConcurrentToggleOffLeavesEmptySet(t *testing.T) {
	svc, scope := newShortlistFixture()
	ctx := context.Background()

	_, err := svc.Curate(ctx, scope, "chess", nil, "admin")
	require.NoError(t, err)

	const voters = 20
	for i := 0; i < voters; i++ {
		_, _, err := svc.ToggleVote(ctx, scope, "chess", nil, fmt.Sprintf("user-%02d", i))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := svc.ToggleVote(ctx, scope, "chess", nil, fmt.Sprintf("user-%02d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entry, err := svc.Get(ctx, scope, "chess")
	require.NoError(t, err)
	assert.Empty(t, entry.Voters)
}

func TestScopesAreIsolated(t *testing.T) {
	repo := repository.NewMemoryShortlistRepository()
	svc := NewShortlistService(repo, notify.NewMemoryNotifier())
	ctx := context.Background()

	g1 := NewGroupScope("g1")
	g2 := NewGroupScope("g2")

	_, _, err := svc.ToggleVote(ctx, g1, "chess", nil, "alice")
	require.NoError(t, err)

	_, err = svc.Get(ctx, g2, "chess")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ranked, err := svc.List(ctx, g2)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestZeroScopeRejected(t *testing.T) {
	svc, _ := newShortlistFixture()
	ctx := context.Background()

	_, _, err := svc.ToggleVote(ctx, NoScope, "chess", nil, "alice")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

// contentiousShortlistStore simulates a store where every create loses the
// race: Mutate never finds the entry and Insert always reports a duplicate.
type contentiousShortlistStore struct {
	mutateCalls int
	insertCalls int
}

func (s *contentiousShortlistStore) Insert(ctx context.Context, entry *domain.ShortlistEntry) error {
	s.insertCalls++
	return fmt.Errorf("%w: shortlist entry %s", domain.ErrAlreadyExists, entry.ItemID)
}

func (s *contentiousShortlistStore) Get(ctx context.Context, groupID, itemID string) (*domain.ShortlistEntry, error) {
	return nil, nil
}

func (s *contentiousShortlistStore) List(ctx context.Context, groupID string) ([]*domain.ShortlistEntry, error) {
	return nil, nil
}

func (s *contentiousShortlistStore) Delete(ctx context.Context, groupID, itemID string) error {
	return fmt.Errorf("%w: shortlist entry %s", domain.ErrNotFound, itemID)
}

func (s *contentiousShortlistStore) Mutate(ctx context.Context, groupID, itemID string, fn repository.ShortlistMutateFunc) error {
	s.mutateCalls++
	return fmt.Errorf("%w: shortlist entry %s", domain.ErrNotFound, itemID)
}

func TestToggleVoteCreateRaceRetriesOnce(t *testing.T) {
	store := &contentiousShortlistStore{}
	svc := NewShortlistService(store, notify.NewMemoryNotifier())
	ctx := context.Background()

	_, _, err := svc.ToggleVote(ctx, NewGroupScope("g1"), "chess", nil, "alice")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, 2, store.mutateCalls, "one retry after losing the create race")
	assert.Equal(t, 2, store.insertCalls)
}

func TestPromoteCreateRaceRetriesOnce(t *testing.T) {
	store := &contentiousShortlistStore{}
	svc := NewShortlistService(store, notify.NewMemoryNotifier())
	ctx := context.Background()

	_, err := svc.Promote(ctx, NewGroupScope("g1"), "chess", nil, "admin")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, 2, store.mutateCalls, "one retry after losing the create race")
	assert.Equal(t, 2, store.insertCalls)
}
