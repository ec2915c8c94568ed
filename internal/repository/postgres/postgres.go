// Package postgres holds the error kinds shared by the postgres
// repositories. Handlers match on these with errors.Is; the messages are the
// stable, caller-visible form of each kind.
package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("row not found")

	// ErrCardNotFound covers unknown, unassigned and deactivated badges
	// alike so the reader cannot probe which cards exist.
	ErrCardNotFound = errors.New("access denied: card not recognized or inactive")

	ErrUserOnLeave = errors.New("user is on leave")

	ErrPunchNotFound = errors.New("punch not found")

	// ErrAlreadyProcessed: validation is one-shot, there is no
	// re-validation path.
	ErrAlreadyProcessed = errors.New("punch already processed")

	ErrValidationFailed = errors.New("action must be confirm or reject")
)
