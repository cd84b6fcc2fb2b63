package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
)

func newAttendanceFixture(t *testing.T, now time.Time) (AttendanceService, repository.EventRepository) {
	t.Helper()
	repo := repository.NewMemoryEventRepository()
	svc := NewAttendanceService(repo).(*attendanceService)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func addEvent(t *testing.T, repo repository.EventRepository, id, date string, attendees ...string) {
	t.Helper()
	day, err := time.ParseInLocation(domain.DateLayout, date, time.UTC)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.Event{
		ID:        id,
		GroupID:   "g1",
		Title:     "game night",
		Date:      day,
		CreatedBy: "admin",
		Attendees: attendees,
		CreatedAt: time.Now().UTC(),
	}))
}

func TestCanCastNewVote(t *testing.T) {
	now := time.Date(2026, 8, 27, 18, 30, 0, 0, time.UTC)
	scope := NewGroupScope("g1")

	tests := []struct {
		name     string
		events   func(t *testing.T, repo repository.EventRepository)
		username string
		want     bool
	}{
		{
			name:     "no events at all",
			events:   func(t *testing.T, repo repository.EventRepository) {},
			username: "alice",
			want:     false,
		},
		{
			name: "only past events",
			events: func(t *testing.T, repo repository.EventRepository) {
				addEvent(t, repo, "e1", "2026-08-20", "alice")
			},
			username: "alice",
			want:     false,
		},
		{
			name: "next event excludes user",
			events: func(t *testing.T, repo repository.EventRepository) {
				addEvent(t, repo, "e1", "2026-09-01", "bob")
			},
			username: "alice",
			want:     false,
		},
		{
			name: "next event includes user",
			events: func(t *testing.T, repo repository.EventRepository) {
				addEvent(t, repo, "e1", "2026-09-01", "alice", "bob")
			},
			username: "alice",
			want:     true,
		},
		{
			name: "event today still counts as upcoming",
			events: func(t *testing.T, repo repository.EventRepository) {
				addEvent(t, repo, "e1", "2026-08-27", "alice")
			},
			username: "alice",
			want:     true,
		},
		{
			name: "gate reads the nearest event only",
			events: func(t *testing.T, repo repository.EventRepository) {
				addEvent(t, repo, "near", "2026-09-01", "bob")
				addEvent(t, repo, "far", "2026-09-15", "alice")
			},
			username: "alice",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newAttendanceFixture(t, now)
			tt.events(t, repo)

			got, err := svc.CanCastNewVote(context.Background(), scope, tt.username)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextEventPicksEarliestUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	svc, repo := newAttendanceFixture(t, now)
	scope := NewGroupScope("g1")

	addEvent(t, repo, "past", "2026-08-01")
	addEvent(t, repo, "far", "2026-10-01")
	addEvent(t, repo, "near", "2026-09-01")

	next, err := svc.NextEvent(context.Background(), scope)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "near", next.ID)
}

func TestNextEventNilWhenNoneUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	svc, repo := newAttendanceFixture(t, now)
	scope := NewGroupScope("g1")

	addEvent(t, repo, "past", "2026-08-01")

	next, err := svc.NextEvent(context.Background(), scope)
	require.NoError(t, err)
	assert.Nil(t, next)
}
