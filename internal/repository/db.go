package repository

import (
	"errors"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// isNoRows reports whether err means the query matched nothing.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// conflictError converts a unique violation into a Conflict domain error and
// returns nil for any other error.
func conflictError(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.NewDomainError(model.KindConflict, model.ErrCodeDuplicate, message)
	}
	return nil
}
