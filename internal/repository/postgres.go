package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
)

// mapTxErr translates exhausted transaction retries into the domain's
// aborted error so callers can surface it uniformly.
func mapTxErr(err error) error {
	if errors.Is(err, database.ErrTxRetriesExhausted) {
		return fmt.Errorf("%w: %v", domain.ErrAborted, err)
	}
	return err
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
