package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
)

// EventService manages game-night events and their attendee rosters
type EventService interface {
	// CreateEvent schedules an event. Date uses domain.DateLayout.
	CreateEvent(ctx context.Context, scope GroupScope, title, date, timeOfDay, location, creator string) (*domain.Event, error)
	// ListEvents returns the scoped group's events, soonest first
	ListEvents(ctx context.Context, scope GroupScope) ([]*domain.Event, error)
	// DeleteEvent removes an event
	DeleteEvent(ctx context.Context, scope GroupScope, eventID string) error
	// SetAttendance puts username on or off the event's attendee roster.
	// Idempotent in both directions.
	SetAttendance(ctx context.Context, scope GroupScope, eventID, username string, attending bool) (*domain.Event, error)
}

type eventService struct {
	events   repository.EventRepository
	notifier notify.Notifier
	now      func() time.Time
}

// NewEventService creates a new event service
func NewEventService(events repository.EventRepository, notifier notify.Notifier) EventService {
	return &eventService{
		events:   events,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *eventService) publish(ctx context.Context, groupID string) {
	if err := s.notifier.Publish(ctx, notify.EventsChannel(groupID)); err != nil {
		logger.WithContext(ctx).Warn("failed to publish events change",
			zap.String("group_id", groupID), zap.Error(err))
	}
}

func (s *eventService) CreateEvent(ctx context.Context, scope GroupScope, title, date, timeOfDay, location, creator string) (*domain.Event, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: group scope is required", domain.ErrInvalidArgument)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", domain.ErrInvalidArgument)
	}
	if creator == "" {
		return nil, fmt.Errorf("%w: creator is required", domain.ErrInvalidArgument)
	}
	eventDate, err := time.ParseInLocation(domain.DateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event date %q", domain.ErrInvalidArgument, date)
	}

	event := &domain.Event{
		ID:        uuid.NewString(),
		GroupID:   scope.GroupID(),
		Title:     title,
		Date:      eventDate,
		Time:      timeOfDay,
		Location:  location,
		CreatedBy: creator,
		Attendees: []string{},
		CreatedAt: s.now().UTC(),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.publish(ctx, scope.GroupID())
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, scope GroupScope) ([]*domain.Event, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: group scope is required", domain.ErrInvalidArgument)
	}
	return s.events.List(ctx, scope.GroupID())
}

func (s *eventService) DeleteEvent(ctx context.Context, scope GroupScope, eventID string) error {
	if scope.IsZero() || eventID == "" {
		return fmt.Errorf("%w: group scope and event are required", domain.ErrInvalidArgument)
	}
	if err := s.events.Delete(ctx, scope.GroupID(), eventID); err != nil {
		return err
	}
	s.publish(ctx, scope.GroupID())
	return nil
}

func (s *eventService) SetAttendance(ctx context.Context, scope GroupScope, eventID, username string, attending bool) (*domain.Event, error) {
	if scope.IsZero() || eventID == "" || username == "" {
		return nil, fmt.Errorf("%w: group scope, event and username are required", domain.ErrInvalidArgument)
	}

	var result *domain.Event
	err := s.events.Mutate(ctx, scope.GroupID(), eventID, func(event *domain.Event) (repository.Mutation, error) {
		has := event.HasAttendee(username)
		switch {
		case attending && !has:
			event.Attendees = append(event.Attendees, username)
		case !attending && has:
			event.Attendees = slices.DeleteFunc(event.Attendees, func(a string) bool { return a == username })
		default:
			result = event
			return repository.MutationNone, nil
		}
		result = event
		return repository.MutationSave, nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, scope.GroupID())
	return result, nil
}
