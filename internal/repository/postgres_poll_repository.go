package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
)

// PostgresPollRepository implements PollRepository using PostgreSQL.
// The ordered option list is stored as a JSONB document in the poll row, so a
// poll remains one record and option votes contend on that single row.
type PostgresPollRepository struct {
	db *database.PostgresDB
}

// NewPostgresPollRepository creates a new PostgreSQL poll repository
func NewPostgresPollRepository(db *database.PostgresDB) *PostgresPollRepository {
	return &PostgresPollRepository{db: db}
}

func scanPoll(row pgx.Row) (*domain.Poll, error) {
	poll := &domain.Poll{}
	var options []byte
	err := row.Scan(&poll.ID, &poll.GroupID, &poll.Title, &poll.CreatedBy, &poll.CreatedAt, &options)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &poll.Options); err != nil {
		return nil, fmt.Errorf("failed to decode poll options: %w", err)
	}
	return poll, nil
}

func encodeOptions(options []domain.PollOption) ([]byte, error) {
	if options == nil {
		options = []domain.PollOption{}
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode poll options: %w", err)
	}
	return data, nil
}

// Create creates a new poll
func (r *PostgresPollRepository) Create(ctx context.Context, poll *domain.Poll) error {
	options, err := encodeOptions(poll.Options)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO polls (id, group_id, title, created_by, created_at, options)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Pool().Exec(ctx, query,
		poll.ID, poll.GroupID, poll.Title, poll.CreatedBy, poll.CreatedAt, options)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: poll %s", domain.ErrAlreadyExists, poll.ID)
		}
		return fmt.Errorf("failed to create poll: %w", err)
	}
	return nil
}

// GetByID retrieves a poll
func (r *PostgresPollRepository) GetByID(ctx context.Context, groupID, pollID string) (*domain.Poll, error) {
	query := `
		SELECT id, group_id, title, created_by, created_at, options
		FROM polls
		WHERE group_id = $1 AND id = $2
	`
	poll, err := scanPoll(r.db.Pool().QueryRow(ctx, query, groupID, pollID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return poll, nil
}

// List retrieves all polls of a group, newest first
func (r *PostgresPollRepository) List(ctx context.Context, groupID string) ([]*domain.Poll, error) {
	query := `
		SELECT id, group_id, title, created_by, created_at, options
		FROM polls
		WHERE group_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := r.db.Pool().Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

// Delete removes a poll
func (r *PostgresPollRepository) Delete(ctx context.Context, groupID, pollID string) error {
	query := `DELETE FROM polls WHERE group_id = $1 AND id = $2`
	tag, err := r.db.Pool().Exec(ctx, query, groupID, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: poll %s", domain.ErrNotFound, pollID)
	}
	return nil
}

// Mutate runs fn against the whole poll record inside a serialized
// single-row transaction
func (r *PostgresPollRepository) Mutate(ctx context.Context, groupID, pollID string, fn PollMutateFunc) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			SELECT id, group_id, title, created_by, created_at, options
			FROM polls
			WHERE group_id = $1 AND id = $2
			FOR UPDATE
		`
		poll, err := scanPoll(tx.QueryRow(ctx, query, groupID, pollID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: poll %s", domain.ErrNotFound, pollID)
			}
			return fmt.Errorf("failed to lock poll: %w", err)
		}

		action, err := fn(poll)
		if err != nil {
			return err
		}
		switch action {
		case MutationSave:
			options, err := encodeOptions(poll.Options)
			if err != nil {
				return err
			}
			update := `
				UPDATE polls
				SET title = $3, options = $4
				WHERE group_id = $1 AND id = $2
			`
			if _, err := tx.Exec(ctx, update, groupID, pollID, poll.Title, options); err != nil {
				return fmt.Errorf("failed to update poll: %w", err)
			}
		case MutationDelete:
			if _, err := tx.Exec(ctx, `DELETE FROM polls WHERE group_id = $1 AND id = $2`, groupID, pollID); err != nil {
				return fmt.Errorf("failed to delete poll: %w", err)
			}
		}
		return nil
	})
	return mapTxErr(err)
}
