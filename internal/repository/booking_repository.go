package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// dateLayout is the format used for DATE columns.  Check-in and
// check-out carry date-only semantics; formatting explicitly avoids
// the driver sending a time-of-day component.
const dateLayout = "2006-01-02"

// BookingRepo provides persistence for bookings, their status logs
// and the availability ledger.  It implements booking.Store so the
// engine can run its lifecycle transactions against MySQL, and it
// additionally exposes the read queries handlers need for listings.
// All timestamp fields are assumed to be stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span multiple repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// RoomWithType loads a room and its room type in one query.  Inactive
// rooms are returned with their flags intact; the engine decides
// whether they are usable.  booking.ErrRoomNotFound is returned when
// the room row is absent.
func (r *BookingRepo) RoomWithType(ctx context.Context, roomID uint64) (*model.Room, *model.RoomType, error) {
	const q = `SELECT rm.id, rm.room_type_id, rm.number, rm.floor, rm.is_active, rm.created_at, rm.updated_at,
	                  rt.id, rt.name, rt.description, rt.base_price_cents, rt.max_guests, rt.is_active, rt.created_at, rt.updated_at
	           FROM rooms rm
	           JOIN room_types rt ON rt.id = rm.room_type_id
	           WHERE rm.id = ?`
	var rm model.Room
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(
		&rm.ID, &rm.RoomTypeID, &rm.Number, &rm.Floor, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt,
		&rt.ID, &rt.Name, &rt.Description, &rt.BasePriceCents, &rt.MaxGuests, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, booking.ErrRoomNotFound
		}
		return nil, nil, err
	}
	return &rm, &rt, nil
}

// UserByID returns the user with the given id, or booking.ErrNotFound.
func (r *BookingRepo) UserByID(ctx context.Context, userID uint64) (*model.User, error) {
	const q = `SELECT id, email, name, password_hash, role, is_active, created_at, updated_at
	           FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, userID).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// BookingByID returns the booking with the given id, or
// booking.ErrNotFound.
func (r *BookingRepo) BookingByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	const q = `SELECT id, room_id, user_id, check_in, check_out, guests, total_amount_cents,
	                  special_request, status, check_in_time, check_out_time, created_at, updated_at
	           FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// conflictQuery selects the first active booking overlapping the
// half-open range [check_in, check_out).  Two ranges overlap iff each
// starts before the other ends; CANCELLED bookings have released
// their dates and COMPLETED stays lie in the past, so only PENDING
// and CONFIRMED rows are considered.
const conflictQuery = `SELECT id, room_id, user_id, check_in, check_out, guests, total_amount_cents,
                              special_request, status, check_in_time, check_out_time, created_at, updated_at
                       FROM bookings
                       WHERE room_id = ?
                         AND status IN ('PENDING', 'CONFIRMED')
                         AND check_in < ?
                         AND check_out > ?
                       ORDER BY id
                       LIMIT 1`

// FindConflict returns the first active booking for the room
// overlapping [checkIn, checkOut), or nil when the range is free.
func (r *BookingRepo) FindConflict(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, conflictQuery, roomID, checkOut.Format(dateLayout), checkIn.Format(dateLayout)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// InTx runs fn inside one database transaction.  The transaction is
// rolled back when fn returns an error and committed otherwise.  The
// engine locks the room row through TxStore.LockRoom before its
// conflict re-check, so concurrent creations on the same room
// serialize at the database rather than relying on the advisory
// application-level check.
func (r *BookingRepo) InTx(ctx context.Context, fn func(tx booking.TxStore) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// bookingTx implements booking.TxStore over one *sql.Tx.
type bookingTx struct {
	tx *sql.Tx
}

// LockRoom takes a write lock on the room row for the remainder of
// the transaction.  Concurrent transactions creating bookings for the
// same room block here until the first one commits, at which point
// their conflict re-check observes the new booking.
func (t *bookingTx) LockRoom(ctx context.Context, roomID uint64) error {
	const q = `SELECT id FROM rooms WHERE id = ? FOR UPDATE`
	var id uint64
	err := t.tx.QueryRowContext(ctx, q, roomID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrRoomNotFound
		}
		return err
	}
	return nil
}

// BookingForUpdate re-reads the booking row under a write lock.  A
// concurrent transition on the same booking blocks here until the
// first one commits; the caller then re-validates against the
// committed status.
func (t *bookingTx) BookingForUpdate(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	const q = `SELECT id, room_id, user_id, check_in, check_out, guests, total_amount_cents,
	                  special_request, status, check_in_time, check_out_time, created_at, updated_at
	           FROM bookings WHERE id = ? FOR UPDATE`
	b, err := scanBooking(t.tx.QueryRowContext(ctx, q, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// FindConflict is the transactional variant of BookingRepo.FindConflict.
func (t *bookingTx) FindConflict(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (*model.Booking, error) {
	b, err := scanBooking(t.tx.QueryRowContext(ctx, conflictQuery, roomID, checkOut.Format(dateLayout), checkIn.Format(dateLayout)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// InsertBooking persists a new booking within the transaction and
// reads the row back to populate the generated ID and timestamps.
func (t *bookingTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (room_id, user_id, check_in, check_out, guests, total_amount_cents, special_request, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q,
		b.RoomID, b.UserID, b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout),
		b.Guests, b.TotalAmountCents, b.SpecialRequest, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const sel = `SELECT id, room_id, user_id, check_in, check_out, guests, total_amount_cents,
	                    special_request, status, check_in_time, check_out_time, created_at, updated_at
	             FROM bookings WHERE id = ?`
	read, err := scanBooking(t.tx.QueryRowContext(ctx, sel, b.ID))
	if err != nil {
		return err
	}
	*b = *read
	return nil
}

// UpdateBooking persists the status and any stamped arrival or
// departure times of an existing booking.
func (t *bookingTx) UpdateBooking(ctx context.Context, b *model.Booking) error {
	const q = `UPDATE bookings
	           SET status = ?, check_in_time = ?, check_out_time = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := t.tx.ExecContext(ctx, q, b.Status, b.CheckInTime, b.CheckOutTime, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// AppendStatusLog appends one audit-trail row.  Entries are
// append-only; nothing in the schema or the code ever updates or
// deletes them.
func (t *bookingTx) AppendStatusLog(ctx context.Context, bookingID uint64, status string) error {
	const q = `INSERT INTO booking_status_logs (booking_id, status) VALUES (?, ?)`
	_, err := t.tx.ExecContext(ctx, q, bookingID, status)
	return err
}

// SetAvailability upserts one ledger row per date in [from, to).
// The rows are written in a single multi-row statement; a unique key
// on (room_id, date) makes the upsert idempotent.
func (t *bookingTx) SetAvailability(ctx context.Context, roomID uint64, from, to time.Time, available bool, reason *string) error {
	if !from.Before(to) {
		return nil
	}
	query := `INSERT INTO room_availability (room_id, date, available, reason) VALUES `
	args := make([]interface{}, 0, 8)
	first := true
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if !first {
			query += ","
		}
		first = false
		query += "(?, ?, ?, ?)"
		args = append(args, roomID, d.Format(dateLayout), available, reason)
	}
	query += ` ON DUPLICATE KEY UPDATE available = VALUES(available), reason = VALUES(reason)`
	_, err := t.tx.ExecContext(ctx, query, args...)
	return err
}

// scanner abstracts *sql.Row so booking scanning is shared between
// pool and transaction queries.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*model.Booking, error) {
	var b model.Booking
	var special sql.NullString
	var inTime, outTime sql.NullTime
	err := row.Scan(
		&b.ID, &b.RoomID, &b.UserID, &b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalAmountCents,
		&special, &b.Status, &inTime, &outTime, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if special.Valid {
		s := special.String
		b.SpecialRequest = &s
	}
	if inTime.Valid {
		tt := inTime.Time
		b.CheckInTime = &tt
	}
	if outTime.Valid {
		tt := outTime.Time
		b.CheckOutTime = &tt
	}
	return &b, nil
}

// BookingDetailRow is a booking joined with room, room type and guest
// information for display.  It is returned by the listing queries
// used by guest and admin endpoints.
type BookingDetailRow struct {
	ID               uint64  `json:"id"`
	RoomID           uint64  `json:"room_id"`
	RoomNumber       string  `json:"room_number"`
	RoomTypeName     string  `json:"room_type_name"`
	BasePriceCents   uint32  `json:"base_price_cents"`
	UserID           uint64  `json:"user_id"`
	GuestName        string  `json:"guest_name"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	Guests           uint32  `json:"guests"`
	TotalAmountCents uint64  `json:"total_amount_cents"`
	SpecialRequest   *string `json:"special_request,omitempty"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}

const detailColumns = `b.id, b.room_id, rm.number, rt.name, rt.base_price_cents,
                       b.user_id, u.name,
                       b.check_in, b.check_out, b.guests, b.total_amount_cents,
                       b.special_request, b.status, b.created_at`

const detailJoins = `FROM bookings b
                     JOIN rooms rm ON rm.id = b.room_id
                     JOIN room_types rt ON rt.id = rm.room_type_id
                     JOIN users u ON u.id = b.user_id`

func scanDetailRow(row scanner) (*BookingDetailRow, error) {
	var d BookingDetailRow
	var special sql.NullString
	var checkIn, checkOut, createdAt time.Time
	err := row.Scan(
		&d.ID, &d.RoomID, &d.RoomNumber, &d.RoomTypeName, &d.BasePriceCents,
		&d.UserID, &d.GuestName,
		&checkIn, &checkOut, &d.Guests, &d.TotalAmountCents,
		&special, &d.Status, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	if special.Valid {
		s := special.String
		d.SpecialRequest = &s
	}
	d.CheckIn = checkIn.UTC().Format(dateLayout)
	d.CheckOut = checkOut.UTC().Format(dateLayout)
	d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &d, nil
}

// ListByUser returns all bookings created by the given user, newest
// first.  When no bookings exist, an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetailRow, error) {
	q := `SELECT ` + detailColumns + ` ` + detailJoins + `
	      WHERE b.user_id = ?
	      ORDER BY b.created_at DESC, b.id DESC`
	return r.listDetails(ctx, q, userID)
}

// ListByRoom returns all bookings for a room, newest first.  Used by
// the admin back office.
func (r *BookingRepo) ListByRoom(ctx context.Context, roomID uint64) ([]BookingDetailRow, error) {
	q := `SELECT ` + detailColumns + ` ` + detailJoins + `
	      WHERE b.room_id = ?
	      ORDER BY b.created_at DESC, b.id DESC`
	return r.listDetails(ctx, q, roomID)
}

func (r *BookingRepo) listDetails(ctx context.Context, q string, args ...interface{}) ([]BookingDetailRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetailRow, 0)
	for rows.Next() {
		d, err := scanDetailRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DetailByIDForUser returns a single booking for the given user.
// Ownership is enforced in the query; sql.ErrNoRows is returned when
// the booking does not exist for that user.
func (r *BookingRepo) DetailByIDForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetailRow, error) {
	q := `SELECT ` + detailColumns + ` ` + detailJoins + `
	      WHERE b.id = ? AND b.user_id = ?`
	return scanDetailRow(r.db.QueryRowContext(ctx, q, bookingID, userID))
}

// DetailByID returns a single booking without ownership restriction.
// Used by admin endpoints; sql.ErrNoRows when absent.
func (r *BookingRepo) DetailByID(ctx context.Context, bookingID uint64) (*BookingDetailRow, error) {
	q := `SELECT ` + detailColumns + ` ` + detailJoins + `
	      WHERE b.id = ?`
	return scanDetailRow(r.db.QueryRowContext(ctx, q, bookingID))
}

// StatusLog returns the audit trail of a booking in chronological
// order.
func (r *BookingRepo) StatusLog(ctx context.Context, bookingID uint64) ([]model.BookingStatusLog, error) {
	const q = `SELECT id, booking_id, status, created_at
	           FROM booking_status_logs
	           WHERE booking_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingStatusLog, 0)
	for rows.Next() {
		var l model.BookingStatusLog
		if err := rows.Scan(&l.ID, &l.BookingID, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
