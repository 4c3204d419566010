package booking

import (
	"context"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// Store is the persistence contract the engine depends on.  The MySQL
// implementation lives in the repository package; tests supply an
// in-memory implementation.  Lookup methods return the engine's
// sentinel errors (ErrRoomNotFound, ErrNotFound) when the entity is
// absent so callers never need to know storage-level not-found values.
type Store interface {
	// RoomWithType returns a room together with its room type, or
	// ErrRoomNotFound when the room row is absent.  Soft-deleted
	// rooms are returned with IsActive=false; the engine decides
	// whether an inactive room is acceptable for the operation.
	RoomWithType(ctx context.Context, roomID uint64) (*model.Room, *model.RoomType, error)

	// UserByID returns the user with the given id, or ErrNotFound.
	UserByID(ctx context.Context, userID uint64) (*model.User, error)

	// BookingByID returns the booking with the given id, or ErrNotFound.
	BookingByID(ctx context.Context, bookingID uint64) (*model.Booking, error)

	// FindConflict returns the first active (PENDING or CONFIRMED)
	// booking for the room overlapping the half-open range
	// [checkIn, checkOut), or nil when the range is free.
	FindConflict(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (*model.Booking, error)

	// InTx runs fn inside one atomic transaction.  If fn returns an
	// error the transaction is rolled back and the error is returned;
	// otherwise the transaction commits.  Implementations must
	// guarantee that the conflict re-check performed through the
	// TxStore observes all committed bookings, so that two concurrent
	// creations of overlapping ranges cannot both succeed.
	InTx(ctx context.Context, fn func(tx TxStore) error) error
}

// TxStore is the set of mutations available inside a transaction
// opened by Store.InTx.  All writes performed through one TxStore
// commit or roll back as a unit.
type TxStore interface {
	// LockRoom takes a write lock on the room row for the duration of
	// the transaction, serializing concurrent booking attempts on the
	// same room.
	LockRoom(ctx context.Context, roomID uint64) error

	// BookingForUpdate returns the booking with a write lock held for
	// the duration of the transaction, or ErrNotFound.  Status
	// transitions re-read through it so the state machine is always
	// validated against the committed row, never a stale pre-read.
	BookingForUpdate(ctx context.Context, bookingID uint64) (*model.Booking, error)

	// FindConflict is the transactional variant of Store.FindConflict;
	// it runs after LockRoom so the answer cannot be invalidated by a
	// concurrent insert.
	FindConflict(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (*model.Booking, error)

	// InsertBooking persists a new booking and populates its ID and
	// timestamps.
	InsertBooking(ctx context.Context, b *model.Booking) error

	// UpdateBooking persists status and check-in/check-out time
	// changes for an existing booking.
	UpdateBooking(ctx context.Context, b *model.Booking) error

	// AppendStatusLog appends one audit-trail entry for the booking.
	AppendStatusLog(ctx context.Context, bookingID uint64, status string) error

	// SetAvailability upserts one ledger row per date in the half-open
	// range [from, to) for the room.  Reason must be nil when the
	// dates are released.
	SetAvailability(ctx context.Context, roomID uint64, from, to time.Time, available bool, reason *string) error
}
