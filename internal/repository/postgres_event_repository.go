package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	db *database.PostgresDB
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *database.PostgresDB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventColumns = `id, group_id, title, event_date, event_time, location, created_by, COALESCE(attendees, '{}'), created_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID, &event.GroupID, &event.Title, &event.Date, &event.Time,
		&event.Location, &event.CreatedBy, &event.Attendees, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, group_id, title, event_date, event_time, location, created_by, attendees, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Pool().Exec(ctx, query,
		event.ID, event.GroupID, event.Title, event.Date, event.Time,
		event.Location, event.CreatedBy, event.Attendees, event.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: event %s", domain.ErrAlreadyExists, event.ID)
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event
func (r *PostgresEventRepository) GetByID(ctx context.Context, groupID, eventID string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE group_id = $1 AND id = $2
	`
	event, err := scanEvent(r.db.Pool().QueryRow(ctx, query, groupID, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// List retrieves all events of a group ordered by date ascending
func (r *PostgresEventRepository) List(ctx context.Context, groupID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE group_id = $1
		ORDER BY event_date, created_at
	`
	rows, err := r.db.Pool().Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// NextEvent retrieves the earliest event on or after from
func (r *PostgresEventRepository) NextEvent(ctx context.Context, groupID string, from time.Time) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE group_id = $1 AND event_date >= $2
		ORDER BY event_date, created_at
		LIMIT 1
	`
	event, err := scanEvent(r.db.Pool().QueryRow(ctx, query, groupID, from))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get next event: %w", err)
	}
	return event, nil
}

// Delete removes an event
func (r *PostgresEventRepository) Delete(ctx context.Context, groupID, eventID string) error {
	query := `DELETE FROM events WHERE group_id = $1 AND id = $2`
	tag, err := r.db.Pool().Exec(ctx, query, groupID, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, eventID)
	}
	return nil
}

// Mutate runs fn against the event inside a serialized single-row transaction
func (r *PostgresEventRepository) Mutate(ctx context.Context, groupID, eventID string, fn EventMutateFunc) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			SELECT ` + eventColumns + `
			FROM events
			WHERE group_id = $1 AND id = $2
			FOR UPDATE
		`
		event, err := scanEvent(tx.QueryRow(ctx, query, groupID, eventID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: event %s", domain.ErrNotFound, eventID)
			}
			return fmt.Errorf("failed to lock event: %w", err)
		}

		action, err := fn(event)
		if err != nil {
			return err
		}
		switch action {
		case MutationSave:
			update := `
				UPDATE events
				SET title = $3, event_date = $4, event_time = $5, location = $6, attendees = $7
				WHERE group_id = $1 AND id = $2
			`
			_, err = tx.Exec(ctx, update, groupID, eventID,
				event.Title, event.Date, event.Time, event.Location, event.Attendees)
			if err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}
		case MutationDelete:
			_, err = tx.Exec(ctx, `DELETE FROM events WHERE group_id = $1 AND id = $2`, groupID, eventID)
			if err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}
		}
		return nil
	})
	return mapTxErr(err)
}
