package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
)

// PostgresShortlistRepository implements ShortlistRepository using PostgreSQL.
// Voter sets are stored as text arrays and the metadata bag as JSONB, so one
// entry stays one row and read-modify-write stays a single-row transaction.
type PostgresShortlistRepository struct {
	db *database.PostgresDB
}

// NewPostgresShortlistRepository creates a new PostgreSQL shortlist repository
func NewPostgresShortlistRepository(db *database.PostgresDB) *PostgresShortlistRepository {
	return &PostgresShortlistRepository{db: db}
}

const shortlistColumns = `group_id, item_id, COALESCE(metadata, '{}'::jsonb), COALESCE(voters, '{}'), COALESCE(curated_by, ''), curated_at, created_at`

func scanShortlistEntry(row pgx.Row) (*domain.ShortlistEntry, error) {
	entry := &domain.ShortlistEntry{}
	err := row.Scan(
		&entry.GroupID, &entry.ItemID, &entry.Metadata, &entry.Voters,
		&entry.CuratedBy, &entry.CuratedAt, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Insert creates a new entry
func (r *PostgresShortlistRepository) Insert(ctx context.Context, entry *domain.ShortlistEntry) error {
	query := `
		INSERT INTO shortlist_entries (group_id, item_id, metadata, voters, curated_by, curated_at, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
	`
	_, err := r.db.Pool().Exec(ctx, query,
		entry.GroupID, entry.ItemID, entry.Metadata, entry.Voters,
		entry.CuratedBy, entry.CuratedAt, entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: shortlist entry %s", domain.ErrAlreadyExists, entry.ItemID)
		}
		return fmt.Errorf("failed to insert shortlist entry: %w", err)
	}
	return nil
}

// Get retrieves one entry
func (r *PostgresShortlistRepository) Get(ctx context.Context, groupID, itemID string) (*domain.ShortlistEntry, error) {
	query := `
		SELECT ` + shortlistColumns + `
		FROM shortlist_entries
		WHERE group_id = $1 AND item_id = $2
	`
	entry, err := scanShortlistEntry(r.db.Pool().QueryRow(ctx, query, groupID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shortlist entry: %w", err)
	}
	return entry, nil
}

// List retrieves all entries of a group in insertion order
func (r *PostgresShortlistRepository) List(ctx context.Context, groupID string) ([]*domain.ShortlistEntry, error) {
	query := `
		SELECT ` + shortlistColumns + `
		FROM shortlist_entries
		WHERE group_id = $1
		ORDER BY created_at, item_id
	`
	rows, err := r.db.Pool().Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlist entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ShortlistEntry
	for rows.Next() {
		entry, err := scanShortlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shortlist entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes an entry unconditionally
func (r *PostgresShortlistRepository) Delete(ctx context.Context, groupID, itemID string) error {
	query := `DELETE FROM shortlist_entries WHERE group_id = $1 AND item_id = $2`
	tag, err := r.db.Pool().Exec(ctx, query, groupID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete shortlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shortlist entry %s", domain.ErrNotFound, itemID)
	}
	return nil
}

// Mutate runs fn against the entry inside a serialized single-row transaction
func (r *PostgresShortlistRepository) Mutate(ctx context.Context, groupID, itemID string, fn ShortlistMutateFunc) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			SELECT ` + shortlistColumns + `
			FROM shortlist_entries
			WHERE group_id = $1 AND item_id = $2
			FOR UPDATE
		`
		entry, err := scanShortlistEntry(tx.QueryRow(ctx, query, groupID, itemID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: shortlist entry %s", domain.ErrNotFound, itemID)
			}
			return fmt.Errorf("failed to lock shortlist entry: %w", err)
		}

		action, err := fn(entry)
		if err != nil {
			return err
		}
		switch action {
		case MutationSave:
			update := `
				UPDATE shortlist_entries
				SET metadata = $3, voters = $4, curated_by = NULLIF($5, ''), curated_at = $6
				WHERE group_id = $1 AND item_id = $2
			`
			_, err = tx.Exec(ctx, update, groupID, itemID,
				entry.Metadata, entry.Voters, entry.CuratedBy, entry.CuratedAt)
			if err != nil {
				return fmt.Errorf("failed to update shortlist entry: %w", err)
			}
		case MutationDelete:
			_, err = tx.Exec(ctx, `DELETE FROM shortlist_entries WHERE group_id = $1 AND item_id = $2`, groupID, itemID)
			if err != nil {
				return fmt.Errorf("failed to delete shortlist entry: %w", err)
			}
		}
		return nil
	})
	return mapTxErr(err)
}
