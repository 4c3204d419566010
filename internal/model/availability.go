package model

import "time"

// RoomAvailability is one per-date, per-room entry of the derived
// availability ledger used for fast calendar reads.  Bookings remain
// the authoritative record; the ledger is a denormalized projection
// written only inside booking lifecycle transactions so it can never
// drift from the bookings it mirrors.  A confirmed booking blocks its
// dates with a human-readable reason; cancellation releases them.
//
// Fields:
//
//	ID        – primary key identifier.
//	RoomID    – room the entry refers to.
//	Date      – the calendar date (midnight UTC).
//	Available – whether the room is free on that date.
//	Reason    – optional display text when blocked (e.g.
//	            "booked by Jane Doe"); null when available.
type RoomAvailability struct {
	ID        uint64    // room_availability.id
	RoomID    uint64    // room_availability.room_id
	Date      time.Time // room_availability.date
	Available bool      // room_availability.available
	Reason    *string   // room_availability.reason (nullable)
}
