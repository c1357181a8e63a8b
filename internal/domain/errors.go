package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the lifecycle engine. Handlers map these to HTTP
// statuses; the sweep logs and skips them per listing.
var (
	// ErrInvalidTransition means a precondition did not hold against the
	// freshly read status. Surfaced to the caller, never retried.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNotFound means the listing/employer/application id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrConcurrentModification means the row changed between read and
	// write. Operations retry once internally before surfacing it.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrStorageUnavailable is a collaborator failure: fatal for the
	// current request, safe to retry later.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotificationDelivery is non-fatal: the state transition stands,
	// the loss is logged.
	ErrNotificationDelivery = errors.New("notification delivery failed")
)

// InvalidTransitionf wraps ErrInvalidTransition with context about the
// rejected transition, e.g. the status the precondition saw.
func InvalidTransitionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidTransition}, args...)...)
}
