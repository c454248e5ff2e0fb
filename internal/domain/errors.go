package domain

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionPast        = errors.New("session already started")
	ErrSessionFull        = errors.New("session is full")
	ErrAlreadyJoined      = errors.New("already joined session")
	ErrAttendanceNotFound = errors.New("attendance not found")
	ErrAlreadyOnWaitlist  = errors.New("already on waitlist")
	ErrNotOnWaitlist      = errors.New("not on waitlist")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrTitleRequired      = errors.New("session title required")
	ErrInvalidCapacity    = errors.New("invalid capacity")
	ErrInvalidStartsAt    = errors.New("invalid starts_at")
	ErrInvalidID          = errors.New("invalid id")

	// ErrTransactionTimeout covers lock waits, statement timeouts and
	// serialization failures. Callers may retry with backoff; every other
	// error above is terminal for the request.
	ErrTransactionTimeout = errors.New("transaction timed out")
)

// IsRetryable reports whether the caller may retry the failed operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionTimeout)
}
