package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"userapp/internal/core/domain"
)

// uniqueViolation is the SQLSTATE postgres reports for a unique-constraint
// failure.
const uniqueViolation = "23505"

// MapError translates pgx errors into domain errors, attributing unique
// violations to a column via the constraint name.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "name"):
			return domain.ErrNameTaken
		case strings.Contains(pgErr.ConstraintName, "email"):
			return domain.ErrEmailTaken
		}

		return domain.ErrDuplicateUser
	}

	return err
}
