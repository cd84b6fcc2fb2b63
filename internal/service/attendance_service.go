package service

import (
	"context"
	"fmt"
	"time"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
)

// AttendanceService answers the gate question for new shortlist votes: only
// users on the attendee roster of the group's next upcoming event may cast a
// vote they do not already hold. Removing an existing vote is never gated.
type AttendanceService interface {
	// CanCastNewVote reports whether username may add a new shortlist
	// vote in the scoped group. False when there is no upcoming event.
	CanCastNewVote(ctx context.Context, scope GroupScope, username string) (bool, error)
	// NextEvent returns the group's next upcoming event, or nil when
	// there is none
	NextEvent(ctx context.Context, scope GroupScope) (*domain.Event, error)
}

type attendanceService struct {
	events repository.EventRepository
	now    func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(events repository.EventRepository) AttendanceService {
	return &attendanceService{
		events: events,
		now:    time.Now,
	}
}

// today truncates the clock to a UTC date, matching how event dates are
// stored
func (s *attendanceService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *attendanceService) NextEvent(ctx context.Context, scope GroupScope) (*domain.Event, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: group scope is required", domain.ErrInvalidArgument)
	}
	return s.events.NextEvent(ctx, scope.GroupID(), s.today())
}

func (s *attendanceService) CanCastNewVote(ctx context.Context, scope GroupScope, username string) (bool, error) {
	next, err := s.NextEvent(ctx, scope)
	if err != nil {
		return false, err
	}
	if next == nil {
		return false, nil
	}
	return next.HasAttendee(username), nil
}
