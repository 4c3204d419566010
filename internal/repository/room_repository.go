package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  A room is one
// bookable unit belonging to a room type.  Rooms are soft-deleted by
// clearing is_active; bookings keep referencing them.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room and reads the record back to populate the
// generated ID, the is_active default and timestamps.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const qInsert = `INSERT INTO rooms (room_type_id, number, floor) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, rm.RoomTypeID, rm.Number, rm.Floor)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)

	const qSelect = `SELECT id, room_type_id, number, floor, is_active, created_at, updated_at
	                 FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, rm.ID).
		Scan(&rm.ID, &rm.RoomTypeID, &rm.Number, &rm.Floor, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
}

// GetByID retrieves a room by its ID regardless of its active flag.
// It returns ErrRoomNotFound when no row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, room_type_id, number, floor, is_active, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&rm.ID, &rm.RoomTypeID, &rm.Number, &rm.Floor, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// RoomListItem is a room joined with its room type for display in
// listings.  Price and capacity come from the type.
type RoomListItem struct {
	ID             uint64  `json:"id"`
	Number         string  `json:"number"`
	Floor          int32   `json:"floor"`
	IsActive       bool    `json:"is_active"`
	RoomTypeID     uint64  `json:"room_type_id"`
	RoomTypeName   string  `json:"room_type_name"`
	Description    *string `json:"description,omitempty"`
	BasePriceCents uint32  `json:"base_price_cents"`
	MaxGuests      uint32  `json:"max_guests"`
}

// List returns rooms joined with their room types.  roomTypeID of
// zero means every type.  When activeOnly is true, inactive rooms and
// rooms of inactive types are filtered out.
func (r *RoomRepo) List(ctx context.Context, roomTypeID uint64, activeOnly bool) ([]RoomListItem, error) {
	q := `SELECT rm.id, rm.number, rm.floor, rm.is_active,
	             rt.id, rt.name, rt.description, rt.base_price_cents, rt.max_guests
	      FROM rooms rm
	      JOIN room_types rt ON rt.id = rm.room_type_id`
	where := ""
	args := []interface{}{}
	if roomTypeID != 0 {
		where = ` WHERE rm.room_type_id = ?`
		args = append(args, roomTypeID)
	}
	if activeOnly {
		if where == "" {
			where = ` WHERE rm.is_active = TRUE AND rt.is_active = TRUE`
		} else {
			where += ` AND rm.is_active = TRUE AND rt.is_active = TRUE`
		}
	}
	q += where + ` ORDER BY rm.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]RoomListItem, 0)
	for rows.Next() {
		var it RoomListItem
		if err := rows.Scan(&it.ID, &it.Number, &it.Floor, &it.IsActive,
			&it.RoomTypeID, &it.RoomTypeName, &it.Description, &it.BasePriceCents, &it.MaxGuests); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update modifies the room's number, floor and type.  Returns
// sql.ErrNoRows when the id does not exist.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms
	           SET room_type_id = ?, number = ?, floor = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.RoomTypeID, rm.Number, rm.Floor, rm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate soft-deletes a room.  It returns ErrConflict when the
// room still has active (PENDING or CONFIRMED) bookings with a
// check-out in the future, so a room cannot vanish from under its
// guests.  Returns sql.ErrNoRows when the id does not exist or the
// room is already inactive.
func (r *RoomRepo) Deactivate(ctx context.Context, id uint64) error {
	const qCheck = `SELECT COUNT(*) FROM bookings
	                WHERE room_id = ? AND status IN ('PENDING', 'CONFIRMED') AND check_out > UTC_DATE()`
	var active int
	if err := r.db.QueryRowContext(ctx, qCheck, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	const q = `UPDATE rooms SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
