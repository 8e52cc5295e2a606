package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timebudget/timebudget/internal/apperrors"
)

const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Constraints maps a constraint name to the error reported when it is violated.
type Constraints map[string]error

// TranslateError converts Postgres integrity violations into the application error taxonomy.
// Named constraints take precedence; other integrity violations become validation errors
// and every other error is returned unchanged.
func TranslateError(err error, constraints Constraints) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if mapped, ok := constraints[pgErr.ConstraintName]; ok {
		return mapped
	}
	switch pgErr.Code {
	case codeNotNullViolation:
		return apperrors.Required(pgErr.ColumnName)
	case codeForeignKeyViolation:
		return apperrors.Invalid(pgErr.ColumnName, "Referenced resource does not exist.")
	case codeCheckViolation:
		return apperrors.Invalid(pgErr.ColumnName, "Value is out of range.")
	}
	return err
}
