// Package booking implements the reservation engine: availability
// checking, pricing and the booking lifecycle state machine.  It
// contains no transport or storage concerns; persistence is supplied
// through the Store interface and the current time and acting user are
// always passed in by the caller.
package booking

import "errors"

// Sentinel errors returned by the engine.  Handlers translate these
// into HTTP statuses: validation and state errors map to 4xx while
// ErrStorage maps to 500.  ErrStorage is the only error for which a
// caller-side retry is meaningful; all others are terminal for the
// request and require corrected input.
var (
	// ErrInvalidRange is returned when check-in does not strictly
	// precede check-out, or the guest count is below one.
	ErrInvalidRange = errors.New("check-in must be before check-out")

	// ErrPastDate is returned when the requested check-in date lies
	// before the current date.
	ErrPastDate = errors.New("check-in date is in the past")

	// ErrCapacityExceeded is returned when the guest count exceeds the
	// room type's maximum.  The wrapped message names the limit.
	ErrCapacityExceeded = errors.New("guest count exceeds room capacity")

	// ErrRoomNotFound is returned when the room does not exist, is
	// inactive, or belongs to an inactive room type.
	ErrRoomNotFound = errors.New("room not found")

	// ErrDateConflict is returned when an active booking already
	// overlaps the requested date range.  Conflicts detected inside
	// the creation transaction roll it back and surface as this error,
	// never as ErrStorage, so callers can present "someone else just
	// booked this" instead of a generic failure.
	ErrDateConflict = errors.New("room already booked for the requested dates")

	// ErrInvalidTransition is returned when the requested status is
	// not reachable from the booking's current status.  The wrapped
	// message names both states.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyCancelled is returned when cancelling a booking that
	// is already cancelled.  Cancellation is not idempotent; callers
	// must check the current status first.
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrAlreadyCompleted is returned when cancelling a booking whose
	// stay has already completed.
	ErrAlreadyCompleted = errors.New("booking already completed")

	// ErrNotFound is returned when the booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrForbidden is returned when a guest operates on a booking they
	// do not own, or a non-admin calls an admin-only operation.
	ErrForbidden = errors.New("forbidden")

	// ErrStorage wraps opaque transaction or infrastructure failures.
	ErrStorage = errors.New("storage failure")
)

// domainErr reports whether err belongs to the engine's error
// taxonomy.  Anything else bubbling out of the store is treated as an
// infrastructure failure and wrapped in ErrStorage.
func domainErr(err error) bool {
	for _, e := range []error{
		ErrInvalidRange, ErrPastDate, ErrCapacityExceeded, ErrRoomNotFound,
		ErrDateConflict, ErrInvalidTransition, ErrAlreadyCancelled,
		ErrAlreadyCompleted, ErrNotFound, ErrForbidden,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
