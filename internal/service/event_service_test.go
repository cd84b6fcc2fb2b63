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

func newEventFixture() (EventService, GroupScope) {
	repo := repository.NewMemoryEventRepository()
	svc := NewEventService(repo, notify.NewMemoryNotifier())
	return svc, NewGroupScope("g1")
}

func TestCreateEventValidation(t *testing.T) {
	svc, scope := newEventFixture()
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, scope, "", "2026-09-01", "", "", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.CreateEvent(ctx, scope, "game night", "September 1st", "", "", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestListEventsOrderedByDate(t *testing.T) {
	svc, scope := newEventFixture()
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, scope, "later", "2026-10-01", "", "", "admin")
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, scope, "sooner", "2026-09-01", "19:00", "clubhouse", "admin")
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx, scope)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "sooner", events[0].Title)
	assert.Equal(t, "later", events[1].Title)
}

func TestSetAttendanceTogglesRoster(t *testing.T) {
	svc, scope := newEventFixture()
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, scope, "game night", "2026-09-01", "", "", "admin")
	require.NoError(t, err)

	updated, err := svc.SetAttendance(ctx, scope, event.ID, "alice", true)
	require.NoError(t, err)
	assert.True(t, updated.HasAttendee("alice"))

	// Setting the same state twice is a no-op.
	updated, err = svc.SetAttendance(ctx, scope, event.ID, "alice", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, updated.Attendees)

	updated, err = svc.SetAttendance(ctx, scope, event.ID, "alice", false)
	require.NoError(t, err)
	assert.False(t, updated.HasAttendee("alice"))
}

func TestSetAttendanceMissingEvent(t *testing.T) {
	svc, scope := newEventFixture()

	_, err := svc.SetAttendance(context.Background(), scope, "nope", "alice", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteEvent(t *testing.T) {
	svc, scope := newEventFixture()
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, scope, "game night", "2026-09-01", "", "", "admin")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, scope, event.ID))
	assert.ErrorIs(t, svc.DeleteEvent(ctx, scope, event.ID), domain.ErrNotFound)
}
