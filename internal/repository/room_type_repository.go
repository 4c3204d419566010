package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error comparisons
	"strings"      // strings detects duplicate-key driver errors

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RoomTypeRepo provides methods to create and retrieve room types.  It
// embeds a database handle to perform queries and commands.  Room
// types define the nightly base price and guest capacity that rooms
// and bookings inherit.
type RoomTypeRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewRoomTypeRepo constructs a RoomTypeRepo with the given DB handle.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo {
	return &RoomTypeRepo{db: db}
}

// Create inserts a new room type.  Name, BasePriceCents and MaxGuests
// must be set.  After insert the record is read back so the ID,
// is_active flag and timestamps are populated.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
	const qInsert = `INSERT INTO room_types (name, description, base_price_cents, max_guests)
	                 VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, rt.Name, rt.Description, rt.BasePriceCents, rt.MaxGuests)
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
	rt.ID = uint64(id)

	const qSelect = `SELECT id, name, description, base_price_cents, max_guests, is_active, created_at, updated_at
	                 FROM room_types WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, rt.ID).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.BasePriceCents, &rt.MaxGuests, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt)
}

// GetByID retrieves a room type by its ID.  It returns
// ErrRoomTypeNotFound when no row is found.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
	const q = `SELECT id, name, description, base_price_cents, max_guests, is_active, created_at, updated_at
	           FROM room_types WHERE id = ?`
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.BasePriceCents, &rt.MaxGuests, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// List returns room types ordered by id.  When activeOnly is true,
// soft-deleted types are filtered out; admins pass false to see the
// full catalogue.
func (r *RoomTypeRepo) List(ctx context.Context, activeOnly bool) ([]*model.RoomType, error) {
	q := `SELECT id, name, description, base_price_cents, max_guests, is_active, created_at, updated_at
	      FROM room_types`
	if activeOnly {
		q += ` WHERE is_active = TRUE`
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RoomType
	for rows.Next() {
		rt := new(model.RoomType)
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.BasePriceCents, &rt.MaxGuests, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies name, description, price and capacity of a room
// type.  Returns sql.ErrNoRows when the id does not exist.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *model.RoomType) error {
	const q = `UPDATE room_types
	           SET name = ?, description = ?, base_price_cents = ?, max_guests = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rt.Name, rt.Description, rt.BasePriceCents, rt.MaxGuests, rt.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate soft-deletes a room type.  Existing bookings are
// untouched; the type simply stops appearing in public listings and
// rejects new bookings.  Returns sql.ErrNoRows when the id does not
// exist or the type is already inactive.
func (r *RoomTypeRepo) Deactivate(ctx context.Context, id uint64) error {
	const q = `UPDATE room_types SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
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
