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

// PollService is the date-poll voting engine. A poll's ordered option list
// lives inside the poll record, so each option vote is an atomic rewrite of
// the whole record; votes on different options of the same poll contend with
// each other, and a user may hold votes on several options at once.
type PollService interface {
	// CreatePoll creates a poll with one option per candidate date.
	// Dates use domain.DateLayout and must be distinct.
	CreatePoll(ctx context.Context, scope GroupScope, title string, dates []string, creator string) (*domain.Poll, error)
	// ToggleOptionVote flips username's vote on the option at index,
	// leaving the poll's other options untouched
	ToggleOptionVote(ctx context.Context, scope GroupScope, pollID string, index int, username string) (*domain.Poll, error)
	// DeletePoll removes a poll
	DeletePoll(ctx context.Context, scope GroupScope, pollID string) error
	// List returns the scoped group's polls, newest first
	List(ctx context.Context, scope GroupScope) ([]*domain.Poll, error)
}

type pollService struct {
	polls    repository.PollRepository
	notifier notify.Notifier
	now      func() time.Time
}

// NewPollService creates a new poll service
func NewPollService(polls repository.PollRepository, notifier notify.Notifier) PollService {
	return &pollService{
		polls:    polls,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *pollService) publish(ctx context.Context, groupID string) {
	if err := s.notifier.Publish(ctx, notify.PollsChannel(groupID)); err != nil {
		logger.WithContext(ctx).Warn("failed to publish polls change",
			zap.String("group_id", groupID), zap.Error(err))
	}
}

func (s *pollService) CreatePoll(ctx context.Context, scope GroupScope, title string, dates []string, creator string) (*domain.Poll, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: group scope is required", domain.ErrInvalidArgument)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: poll title is required", domain.ErrInvalidArgument)
	}
	if creator == "" {
		return nil, fmt.Errorf("%w: creator is required", domain.ErrInvalidArgument)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: at least one candidate date is required", domain.ErrInvalidArgument)
	}

	seen := make(map[string]struct{}, len(dates))
	options := make([]domain.PollOption, 0, len(dates))
	for _, date := range dates {
		if _, err := time.ParseInLocation(domain.DateLayout, date, time.UTC); err != nil {
			return nil, fmt.Errorf("%w: invalid candidate date %q", domain.ErrInvalidArgument, date)
		}
		if _, dup := seen[date]; dup {
			return nil, fmt.Errorf("%w: duplicate candidate date %q", domain.ErrInvalidArgument, date)
		}
		seen[date] = struct{}{}
		options = append(options, domain.PollOption{Date: date, Voters: []string{}})
	}

	poll := &domain.Poll{
		ID:        uuid.NewString(),
		GroupID:   scope.GroupID(),
		Title:     title,
		CreatedBy: creator,
		CreatedAt: s.now().UTC(),
		Options:   options,
	}
	if err := s.polls.Create(ctx, poll); err != nil {
		return nil, err
	}

	s.publish(ctx, scope.GroupID())
	return poll, nil
}

func (s *pollService) ToggleOptionVote(ctx context.Context, scope GroupScope, pollID string, index int, username string) (*domain.Poll, error) {
	if scope.IsZero() || pollID == "" || username == "" {
		return nil, fmt.Errorf("%w: group scope, poll and username are required", domain.ErrInvalidArgument)
	}

	var result *domain.Poll
	err := s.polls.Mutate(ctx, scope.GroupID(), pollID, func(poll *domain.Poll) (repository.Mutation, error) {
		if index < 0 || index >= len(poll.Options) {
			return repository.MutationNone, fmt.Errorf("%w: option index %d out of range", domain.ErrNotFound, index)
		}
		opt := &poll.Options[index]
		if opt.HasVoter(username) {
			opt.Voters = slices.DeleteFunc(opt.Voters, func(v string) bool { return v == username })
		} else {
			opt.Voters = append(opt.Voters, username)
		}
		result = poll
		return repository.MutationSave, nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, scope.GroupID())
	return result, nil
}

func (s *pollService) DeletePoll(ctx context.Context, scope GroupScope, pollID string) error {
	if scope.IsZero() || pollID == "" {
		return fmt.Errorf("%w: group scope and poll are required", domain.ErrInvalidArgument)
	}
	if err := s.polls.Delete(ctx, scope.GroupID(), pollID); err != nil {
		return err
	}
	s.publish(ctx, scope.GroupID())
	return nil
}

func (s *pollService) List(ctx context.Context, scope GroupScope) ([]*domain.Poll, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: group scope is required", domain.ErrInvalidArgument)
	}
	return s.polls.List(ctx, scope.GroupID())
}
