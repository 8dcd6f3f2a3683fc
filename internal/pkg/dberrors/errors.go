package dberrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yigit/university/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes and classes the repositories care about.
const (
	CodeForeignKeyViolation = "23503"
	CodeUniqueViolation     = "23505"
	classSyntaxOrAccess     = "42"
	classConnection         = "08"
)

// IsUniqueViolation checks if the error is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return IsUniqueViolation(err) && errors.As(err, &pgErr) && pgErr.ConstraintName == constraintName
}

// IsForeignKeyError checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeForeignKeyViolation
}

// Classify maps a driver error onto the application error kinds. op names the
// failing operation and becomes the message prefix. Unknown errors are wrapped
// without a kind.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperrors.Is(err, apperrors.ErrConstraintViolation,
		apperrors.ErrQuery, apperrors.ErrConnection,
		apperrors.ErrNotFound, apperrors.ErrAmbiguousMatch) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case IsForeignKeyError(err), IsUniqueViolation(err):
			return fmt.Errorf("%s: %w: %s (%s)", op, apperrors.ErrConstraintViolation, pgErr.Message, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, classSyntaxOrAccess):
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrQuery, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, classConnection):
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrConnection, pgErr.Message)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrConnection, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
