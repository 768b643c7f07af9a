package aggregate

import (
	"errors"

	"github.com/nhle/lifetrack/internal/businessday"
)

// Aggregation failures. Callers match them with errors.Is.
var (
	// ErrInvalidDate rejects a missing or malformed date before any query runs.
	ErrInvalidDate = businessday.ErrInvalidDate

	// ErrSourceUnavailable means a read collaborator failed; nothing was persisted.
	ErrSourceUnavailable = errors.New("activity source unavailable")

	// ErrPersistConflict means another aggregation wrote the same day record
	// first. The call may be retried.
	ErrPersistConflict = errors.New("day record persisted concurrently")

	// ErrInvalidTarget rejects a daily target outside 1..1440 minutes.
	ErrInvalidTarget = errors.New("invalid daily target")
)

// IsRetryable reports whether err may succeed when the call is repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPersistConflict)
}
