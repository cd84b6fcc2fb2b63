package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
)

// PostgresWishlistRepository implements WishlistRepository using PostgreSQL
type PostgresWishlistRepository struct {
	db *database.PostgresDB
}

// NewPostgresWishlistRepository creates a new PostgreSQL wishlist repository
func NewPostgresWishlistRepository(db *database.PostgresDB) *PostgresWishlistRepository {
	return &PostgresWishlistRepository{db: db}
}

// Get retrieves a user's wishlist
func (r *PostgresWishlistRepository) Get(ctx context.Context, username string) (*domain.Wishlist, error) {
	query := `
		SELECT username, COALESCE(favorites, '{}')
		FROM wishlists
		WHERE username = $1
	`
	wishlist := &domain.Wishlist{}
	err := r.db.Pool().QueryRow(ctx, query, username).Scan(&wishlist.Username, &wishlist.Favorites)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return wishlist, nil
}

// ListAll retrieves every wishlist record ordered by username. The interest
// summary is recomputed from this full scan on each request.
func (r *PostgresWishlistRepository) ListAll(ctx context.Context) ([]*domain.Wishlist, error) {
	query := `
		SELECT username, COALESCE(favorites, '{}')
		FROM wishlists
		ORDER BY username
	`
	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}
	defer rows.Close()

	var wishlists []*domain.Wishlist
	for rows.Next() {
		wishlist := &domain.Wishlist{}
		if err := rows.Scan(&wishlist.Username, &wishlist.Favorites); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		wishlists = append(wishlists, wishlist)
	}
	return wishlists, rows.Err()
}

// Mutate runs fn against the wishlist inside a serialized single-row
// transaction, creating the record on first use
func (r *PostgresWishlistRepository) Mutate(ctx context.Context, username string, fn WishlistMutateFunc) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		// Upsert first so the row exists and can be locked.
		insert := `
			INSERT INTO wishlists (username, favorites)
			VALUES ($1, '{}')
			ON CONFLICT (username) DO NOTHING
		`
		if _, err := tx.Exec(ctx, insert, username); err != nil {
			return fmt.Errorf("failed to ensure wishlist: %w", err)
		}

		query := `
			SELECT username, COALESCE(favorites, '{}')
			FROM wishlists
			WHERE username = $1
			FOR UPDATE
		`
		wishlist := &domain.Wishlist{}
		if err := tx.QueryRow(ctx, query, username).Scan(&wishlist.Username, &wishlist.Favorites); err != nil {
			return fmt.Errorf("failed to lock wishlist: %w", err)
		}

		if err := fn(wishlist); err != nil {
			return err
		}

		update := `UPDATE wishlists SET favorites = $2 WHERE username = $1`
		if _, err := tx.Exec(ctx, update, username, wishlist.Favorites); err != nil {
			return fmt.Errorf("failed to update wishlist: %w", err)
		}
		return nil
	})
	return mapTxErr(err)
}
