package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
)

func newWishlistFixture() (WishlistService, GroupService) {
	groupRepo := repository.NewMemoryGroupRepository()
	groups := NewGroupService(groupRepo)
	wishlists := NewWishlistService(repository.NewMemoryWishlistRepository(), groupRepo, notify.NewMemoryNotifier())
	return wishlists, groups
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := newWishlistFixture()
	ctx := context.Background()

	wishlist, favorite, err := svc.ToggleFavorite(ctx, "alice", "chess")
	require.NoError(t, err)
	assert.True(t, favorite)
	assert.Equal(t, []string{"chess"}, wishlist.Favorites)

	wishlist, favorite, err = svc.ToggleFavorite(ctx, "alice", "chess")
	require.NoError(t, err)
	assert.False(t, favorite)
	assert.Empty(t, wishlist.Favorites)
}

func TestGetReturnsEmptyWishlistForNewUser(t *testing.T) {
	svc, _ := newWishlistFixture()

	wishlist, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", wishlist.Username)
	assert.Empty(t, wishlist.Favorites)
}

func TestComputeSummaryAggregatesAndSorts(t *testing.T) {
	svc, _ := newWishlistFixture()
	ctx := context.Background()

	for _, user := range []string{"alice", "bob", "carol"} {
		_, _, err := svc.ToggleFavorite(ctx, user, "chess")
		require.NoError(t, err)
	}
	_, _, err := svc.ToggleFavorite(ctx, "alice", "catan")
	require.NoError(t, err)

	summary, err := svc.ComputeSummary(ctx, NoScope)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, "chess", summary[0].ItemID)
	assert.Equal(t, 3, summary[0].Count)
	assert.Equal(t, []string{"alice", "bob", "carol"}, summary[0].Usernames)

	assert.Equal(t, "catan", summary[1].ItemID)
	assert.Equal(t, 1, summary[1].Count)
}

func TestComputeSummaryWithGroupFilter(t *testing.T) {
	svc, groups := newWishlistFixture()
	ctx := context.Background()

	group, err := groups.CreateGroup(ctx, "Tuesday Night", "admin")
	require.NoError(t, err)
	_, err = groups.Join(ctx, group.ID, "alice")
	require.NoError(t, err)

	_, _, err = svc.ToggleFavorite(ctx, "alice", "chess")
	require.NoError(t, err)
	_, _, err = svc.ToggleFavorite(ctx, "outsider", "chess")
	require.NoError(t, err)

	summary, err := svc.ComputeSummary(ctx, groups.Scope(group.ID))
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 1, summary[0].Count)
	assert.Equal(t, []string{"alice"}, summary[0].Usernames)

	// No filter counts everyone.
	summary, err = svc.ComputeSummary(ctx, NoScope)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 2, summary[0].Count)
}
