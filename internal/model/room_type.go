package model

import "time"

// RoomType defines a category of rooms sharing the same nightly base
// price and guest capacity.  Rooms reference a room type; bookings
// inherit the price and capacity limits from it.  Prices are stored
// as integer cents to avoid floating point rounding drift when the
// admin dashboard aggregates totals.
//
// Fields:
//
//	ID             – primary key identifier.
//	Name           – unique human readable name (e.g. "Deluxe Twin").
//	Description    – optional marketing text.
//	BasePriceCents – nightly base price in cents.
//	MaxGuests      – maximum number of guests allowed per room.
//	IsActive       – soft delete flag; inactive types are hidden and
//	                 cannot receive new bookings.
//	CreatedAt      – creation timestamp.
//	UpdatedAt      – last update timestamp.
type RoomType struct {
	ID             uint64    // room_types.id
	Name           string    // room_types.name
	Description    *string   // room_types.description (nullable)
	BasePriceCents uint32    // room_types.base_price_cents
	MaxGuests      uint32    // room_types.max_guests
	IsActive       bool      // room_types.is_active
	CreatedAt      time.Time // room_types.created_at
	UpdatedAt      time.Time // room_types.updated_at
}
