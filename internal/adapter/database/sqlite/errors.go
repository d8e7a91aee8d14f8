package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"userapp/internal/core/domain"
)

// MapError translates driver errors into domain errors so callers never see
// sqlite specifics. Unique-constraint violations are attributed to the
// offending column from the driver message.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}

	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		msg := sqliteErr.Error()

		switch {
		case strings.Contains(msg, "users.name"):
			return domain.ErrNameTaken
		case strings.Contains(msg, "users.email"):
			return domain.ErrEmailTaken
		}

		return domain.ErrDuplicateUser
	}

	return err
}
