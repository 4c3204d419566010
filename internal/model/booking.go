package model

import "time"

// Booking statuses.  A booking starts in PENDING when created by a
// guest, or directly in CONFIRMED when created by an admin.  CANCELLED
// and COMPLETED are terminal.  Cancellation is a status value, never a
// row deletion.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Booking records a guest's reservation of one room for a date range.
// Check-in and check-out carry date-only semantics and are stored as
// UTC timestamps at midnight.  The range is half-open: the check-out
// date itself is not occupied.  CheckInTime/CheckOutTime are the
// actual arrival/departure timestamps stamped by status transitions.
//
// Fields:
//
//	ID               – primary key identifier.
//	RoomID           – room being booked.
//	UserID           – guest who made the booking.
//	CheckIn          – first occupied night (midnight UTC).
//	CheckOut         – day of departure, exclusive (midnight UTC).
//	Guests           – number of guests; must not exceed the room
//	                   type's MaxGuests.
//	TotalAmountCents – total price in cents (base price × nights).
//	SpecialRequest   – optional free-text request from the guest.
//	Status           – PENDING, CONFIRMED, CANCELLED or COMPLETED.
//	CheckInTime      – actual check-in timestamp, if stamped.
//	CheckOutTime     – actual check-out timestamp, if stamped.
//	CreatedAt        – creation timestamp.
//	UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64     // bookings.id
	RoomID           uint64     // bookings.room_id
	UserID           uint64     // bookings.user_id
	CheckIn          time.Time  // bookings.check_in
	CheckOut         time.Time  // bookings.check_out
	Guests           uint32     // bookings.guests
	TotalAmountCents uint64     // bookings.total_amount_cents
	SpecialRequest   *string    // bookings.special_request (nullable)
	Status           string     // bookings.status
	CheckInTime      *time.Time // bookings.check_in_time (nullable)
	CheckOutTime     *time.Time // bookings.check_out_time (nullable)
	CreatedAt        time.Time  // bookings.created_at
	UpdatedAt        time.Time  // bookings.updated_at
}

// BookingStatusLog is one entry of the append-only audit trail kept
// for every booking.  A row is written for the initial status and for
// every subsequent transition.  Entries are never edited or deleted.
//
// Fields:
//
//	ID        – primary key identifier.
//	BookingID – the booking this entry belongs to.
//	Status    – the status the booking moved into.
//	CreatedAt – when the transition happened.
type BookingStatusLog struct {
	ID        uint64    // booking_status_logs.id
	BookingID uint64    // booking_status_logs.booking_id
	Status    string    // booking_status_logs.status
	CreatedAt time.Time // booking_status_logs.created_at
}
