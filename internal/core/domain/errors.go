package domain

import "errors"

var (
	// ErrUserNotFound is returned when a lookup by id matches no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrNameTaken and ErrEmailTaken signal a uniqueness conflict detected
	// by the store, attributed to a specific column.
	ErrNameTaken  = errors.New("user name already in use")
	ErrEmailTaken = errors.New("email already in use")

	// ErrDuplicateUser covers a uniqueness conflict the driver reports
	// without naming the offending column.
	ErrDuplicateUser = errors.New("user name or email already in use")

	// Password-change rule violations.
	ErrCurrentPasswordRequired  = errors.New("password change requires current password")
	ErrCurrentPasswordIncorrect = errors.New("current password incorrect")
)

// IsConflict reports whether err is any of the uniqueness-conflict errors.
func IsConflict(err error) bool {
	return errors.Is(err, ErrNameTaken) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrDuplicateUser)
}
