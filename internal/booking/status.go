package booking

import (
	"fmt"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// transitions maps each booking status to the set of statuses
// reachable from it.  CANCELLED and COMPLETED are terminal and have
// no outgoing edges.
var transitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled},
	model.StatusCancelled: {},
	model.StatusCompleted: {},
}

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether s is a terminal status.
func Terminal(s string) bool {
	return len(transitions[s]) == 0 && ValidStatus(s)
}

// CanTransition reports whether a booking may move from one status to
// another according to the lifecycle state machine.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// checkTransition returns ErrInvalidTransition naming both states when
// the move is not allowed.
func checkTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// activeStatus reports whether a booking in status s counts toward
// conflict checks.  Cancelled bookings release their dates and
// completed stays lie in the past, so only PENDING and CONFIRMED
// bookings are conflict-eligible.
func activeStatus(s string) bool {
	return s == model.StatusPending || s == model.StatusConfirmed
}
