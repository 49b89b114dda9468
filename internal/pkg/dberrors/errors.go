package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation per the PostgreSQL error code table.
const uniqueViolationCode = "23505"

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique
// violation for a specific constraint, e.g. the students enrollment-number
// index or the one-record-per-semester index.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraintName
}

// IsNoRows reports whether the error is pgx's no-rows sentinel. Repositories
// use it to translate an empty scan into a domain not-found error instead of
// leaking driver errors upward.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
