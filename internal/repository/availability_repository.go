package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// AvailabilityRepo reads the per-date availability ledger.  Ledger
// rows are written only by the booking engine inside its lifecycle
// transactions; this repository is the read side backing the public
// calendar endpoint.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// ListByRoomBetween returns ledger rows for a room whose date falls
// in the half-open range [from, to), ordered by date.  Dates without
// a row have never been touched by a confirmed booking and are
// implicitly available.
func (r *AvailabilityRepo) ListByRoomBetween(ctx context.Context, roomID uint64, from, to time.Time) ([]model.RoomAvailability, error) {
	const q = `SELECT id, room_id, date, available, reason
	           FROM room_availability
	           WHERE room_id = ? AND date >= ? AND date < ?
	           ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, roomID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomAvailability, 0)
	for rows.Next() {
		var a model.RoomAvailability
		var reason sql.NullString
		if err := rows.Scan(&a.ID, &a.RoomID, &a.Date, &a.Available, &reason); err != nil {
			return nil, err
		}
		if reason.Valid {
			s := reason.String
			a.Reason = &s
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
