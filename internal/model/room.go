package model

import "time"

// Room is a single bookable unit.  Each room belongs to exactly one
// room type, from which it inherits pricing and capacity.  Rooms are
// never hard-deleted; the IsActive flag acts as a tombstone and
// inactive rooms are filtered out of availability checks.
//
// Fields:
//
//	ID         – primary key identifier.
//	RoomTypeID – the room type this room belongs to.
//	Number     – the display number of the room (e.g. "204").
//	Floor      – floor the room is located on.
//	IsActive   – soft delete flag.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Room struct {
	ID         uint64    // rooms.id
	RoomTypeID uint64    // rooms.room_type_id
	Number     string    // rooms.number
	Floor      int32     // rooms.floor
	IsActive   bool      // rooms.is_active
	CreatedAt  time.Time // rooms.created_at
	UpdatedAt  time.Time // rooms.updated_at
}
