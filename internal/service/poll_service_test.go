package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
)

func newPollFixture() (PollService, GroupScope) {
	repo := repository.NewMemoryPollRepository()
	svc := NewPollService(repo, notify.NewMemoryNotifier())
	return svc, NewGroupScope("g1")
}

func TestCreatePollValidation(t *testing.T) {
	svc, scope := newPollFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		title string
		dates []string
	}{
		{"blank title", "  ", []string{"2026-09-01"}},
		{"no dates", "next night", nil},
		{"malformed date", "next night", []string{"01/09/2026"}},
		{"duplicate dates", "next night", []string{"2026-09-01", "2026-09-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePoll(ctx, scope, tt.title, tt.dates, "admin")
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestCreatePollBuildsOrderedOptions(t *testing.T) {
	svc, scope := newPollFixture()
	ctx := context.Background()

	poll, err := svc.CreatePoll(ctx, scope, "next night", []string{"2026-09-01", "2026-09-08"}, "admin")
	require.NoError(t, err)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "2026-09-01", poll.Options[0].Date)
	assert.Equal(t, "2026-09-08", poll.Options[1].Date)
	assert.Empty(t, poll.Options[0].Voters)
	assert.Empty(t, poll.Options[1].Voters)
}

func TestUserMayVoteOnMultipleOptions(t *testing.T) {
	svc, scope := newPollFixture()
	ctx := context.Background()

	poll, err := svc.CreatePoll(ctx, scope, "next night", []string{"2025-01-10", "2025-01-17"}, "admin")
	require.NoError(t, err)

	_, err = svc.ToggleOptionVote(ctx, scope, poll.ID, 0, "carol")
	require.NoError(t, err)
	updated, err := svc.ToggleOptionVote(ctx, scope, poll.ID, 1, "carol")
	require.NoError(t, err)

	// No single-choice constraint: both options carry carol at once.
	assert.Equal(t, []string{"carol"}, updated.Options[0].Voters)
	assert.Equal(t, []string{"carol"}, updated.Options[1].Voters)
}

func TestToggleOptionVoteRemovesOnSecondCall(t *testing.T) {
	svc, scope := newPollFixture()
	ctx := context.Background()

	poll, err := svc.CreatePoll(ctx, scope, "next night", []string{"2026-09-01"}, "admin")
	require.NoError(t, err)

	_, err = svc.ToggleOptionVote(ctx, scope, poll.ID, 0, "carol")
	require.NoError(t, err)
	updated, err := svc.ToggleOptionVote(ctx, scope, poll.ID, 0, "carol")
	require.NoError(t, err)
	assert.Empty(t, updated.Options[0].Voters)
}

func TestToggleOptionVoteIndexOutOfRange(t *testing.T) {
	svc, scope := newPollFixture()
	ctx := context.Background()

	poll, err := svc.CreatePoll(ctx, scope, "next night", []string{"2026-09-01"}, "admin")
	require.NoError(t, err)

	_, err = svc.ToggleOptionVote(ctx, scope, poll.ID, 1, "carol")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.ToggleOptionVote(ctx, scope, poll.ID, -1, "carol")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggleOptionVoteMissingPoll(t *testing.T) {
	svc, scope := newPollFixture()

	_, err := svc.ToggleOptionVote(context.Background(), scope, "nope", 0, "carol")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePoll(t *testing.T) {
	svc, scope := newPollFixture()
	ctx := context.Background()

	poll, err := svc.CreatePoll(ctx, scope, "next night", []string{"2026-09-01"}, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePoll(ctx, scope, poll.ID))
	assert.ErrorIs(t, svc.DeletePoll(ctx, scope, poll.ID), domain.ErrNotFound)

	polls, err := svc.List(ctx, scope)
	require.NoError(t, err)
	assert.Empty(t, polls)
}
