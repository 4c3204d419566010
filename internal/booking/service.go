package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// AvailabilityResult is the outcome of an availability check.  When
// the range is taken, ConflictingBookingID identifies the active
// booking that blocks it.
type AvailabilityResult struct {
	Available            bool   `json:"available"`
	ConflictingBookingID uint64 `json:"conflicting_booking_id,omitempty"`
}

// BookingDetail is a booking together with the denormalized display
// fields callers need to render it: room number, room type name, the
// nightly base price and the guest's name.
type BookingDetail struct {
	Booking        model.Booking `json:"booking"`
	RoomNumber     string        `json:"room_number"`
	RoomTypeName   string        `json:"room_type_name"`
	BasePriceCents uint32        `json:"base_price_cents"`
	GuestName      string        `json:"guest_name"`
}

// TransitionOptions carries the optional inputs of a status
// transition.  CheckInTime is honored only when transitioning to
// CONFIRMED, CheckOutTime only when transitioning to COMPLETED.
type TransitionOptions struct {
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Reason       *string
}

// Service is the booking engine facade.  It validates input, computes
// prices and drives the lifecycle state machine, delegating all
// persistence to the Store.  The current time is supplied through the
// now function so the engine never reads the ambient clock.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a Service over the given store.  Passing a
// nil now function defaults to time.Now; tests inject a fixed clock.
func NewService(store Store, now func() time.Time) *Service {
	if store == nil {
		panic("nil store passed to booking.NewService")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// stay holds a validated, date-normalized booking request.
type stay struct {
	room     *model.Room
	roomType *model.RoomType
	checkIn  time.Time
	checkOut time.Time
}

// validateStay normalizes the range to day boundaries and applies the
// checks shared by every entry point: range order, stale check-in,
// guest count, room existence and capacity.  It runs before any
// transaction is opened.
func (s *Service) validateStay(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, guests uint32) (*stay, error) {
	if guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", ErrInvalidRange)
	}
	ci := DateOnly(checkIn)
	co := DateOnly(checkOut)
	if !ci.Before(co) {
		return nil, ErrInvalidRange
	}
	if ci.Before(DateOnly(s.now())) {
		return nil, ErrPastDate
	}
	room, rt, err := s.store.RoomWithType(ctx, roomID)
	if err != nil {
		return nil, wrapStore(err)
	}
	// Soft-deleted rooms and room types are filter predicates, not
	// physical removals; for booking purposes they do not exist.
	if !room.IsActive || !rt.IsActive {
		return nil, ErrRoomNotFound
	}
	if guests > rt.MaxGuests {
		return nil, fmt.Errorf("%w: room type %q allows at most %d guests", ErrCapacityExceeded, rt.Name, rt.MaxGuests)
	}
	return &stay{room: room, roomType: rt, checkIn: ci, checkOut: co}, nil
}

// CheckAvailability reports whether the room can be booked for the
// half-open range [checkIn, checkOut) by the given number of guests.
// It is a read-only query against the current booking set; validation
// failures are returned as errors, an occupied range as a result with
// Available=false and the blocking booking's id.
func (s *Service) CheckAvailability(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, guests uint32) (AvailabilityResult, error) {
	st, err := s.validateStay(ctx, roomID, checkIn, checkOut, guests)
	if err != nil {
		return AvailabilityResult{}, err
	}
	conflict, err := s.store.FindConflict(ctx, roomID, st.checkIn, st.checkOut)
	if err != nil {
		return AvailabilityResult{}, wrapStore(err)
	}
	if conflict != nil {
		return AvailabilityResult{Available: false, ConflictingBookingID: conflict.ID}, nil
	}
	return AvailabilityResult{Available: true}, nil
}

// CreateBooking creates a guest-initiated booking in status PENDING.
// Validation and an advisory conflict check run before the
// transaction; inside it the room row is locked and the conflict
// check re-runs so that concurrent creations of overlapping ranges
// cannot both commit.  A PENDING booking does not write availability
// ledger rows: the calendar is blocked only on confirmation, since a
// pending booking may still be abandoned.
func (s *Service) CreateBooking(ctx context.Context, actorUserID, roomID uint64, checkIn, checkOut time.Time, guests uint32, specialRequest *string) (*BookingDetail, error) {
	return s.create(ctx, actorUserID, roomID, checkIn, checkOut, guests, specialRequest, model.StatusPending)
}

// AdminCreateBooking creates a booking directly in status CONFIRMED on
// behalf of a guest, skipping PENDING.  Pricing and conflict semantics
// are identical to the guest path; in addition the availability ledger
// rows for the stay are written inside the same transaction.
func (s *Service) AdminCreateBooking(ctx context.Context, actorRole string, guestUserID, roomID uint64, checkIn, checkOut time.Time, guests uint32, specialRequest *string) (*BookingDetail, error) {
	if actorRole != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.create(ctx, guestUserID, roomID, checkIn, checkOut, guests, specialRequest, model.StatusConfirmed)
}

func (s *Service) create(ctx context.Context, userID, roomID uint64, checkIn, checkOut time.Time, guests uint32, specialRequest *string, initial string) (*BookingDetail, error) {
	st, err := s.validateStay(ctx, roomID, checkIn, checkOut, guests)
	if err != nil {
		return nil, err
	}
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, wrapStore(err)
	}
	// Advisory pre-check outside the transaction; cheap rejection of
	// the common case.  The authoritative check happens under the
	// room lock below.
	if conflict, err := s.store.FindConflict(ctx, roomID, st.checkIn, st.checkOut); err != nil {
		return nil, wrapStore(err)
	} else if conflict != nil {
		return nil, fmt.Errorf("%w: overlaps booking %d", ErrDateConflict, conflict.ID)
	}

	b := &model.Booking{
		RoomID:           roomID,
		UserID:           userID,
		CheckIn:          st.checkIn,
		CheckOut:         st.checkOut,
		Guests:           guests,
		TotalAmountCents: TotalCents(st.roomType.BasePriceCents, st.checkIn, st.checkOut),
		SpecialRequest:   specialRequest,
		Status:           initial,
	}
	err = s.store.InTx(ctx, func(tx TxStore) error {
		if err := tx.LockRoom(ctx, roomID); err != nil {
			return err
		}
		conflict, err := tx.FindConflict(ctx, roomID, st.checkIn, st.checkOut)
		if err != nil {
			return err
		}
		if conflict != nil {
			return fmt.Errorf("%w: overlaps booking %d", ErrDateConflict, conflict.ID)
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.AppendStatusLog(ctx, b.ID, initial); err != nil {
			return err
		}
		if initial == model.StatusConfirmed {
			reason := blockReason(user.Name)
			return tx.SetAvailability(ctx, roomID, st.checkIn, st.checkOut, false, &reason)
		}
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return s.detail(b, st.room, st.roomType, user), nil
}

// TransitionStatus moves a booking to newStatus per the lifecycle
// state machine.  Admin only.  The status update, the audit-log entry
// and the availability ledger side effects commit atomically:
// confirming blocks the stay's dates with a "booked by" reason,
// cancelling releases them.  Optional arrival and departure
// timestamps are stamped on CONFIRMED and COMPLETED respectively.
func (s *Service) TransitionStatus(ctx context.Context, actorRole string, bookingID uint64, newStatus string, opts TransitionOptions) (*BookingDetail, error) {
	if actorRole != model.RoleAdmin {
		return nil, ErrForbidden
	}
	b, err := s.store.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, wrapStore(err)
	}
	validate := func(from string) error { return checkTransition(from, newStatus) }
	if err := validate(b.Status); err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, b, newStatus, opts, validate)
}

// CancelBooking cancels a booking.  Guests may cancel only their own
// bookings; admins may cancel any.  Cancelling a booking that is
// already terminal fails with ErrAlreadyCancelled or
// ErrAlreadyCompleted rather than succeeding idempotently.
func (s *Service) CancelBooking(ctx context.Context, actorUserID uint64, actorRole string, bookingID uint64) (*BookingDetail, error) {
	b, err := s.store.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if actorRole != model.RoleAdmin && b.UserID != actorUserID {
		return nil, ErrForbidden
	}
	validate := func(from string) error {
		switch from {
		case model.StatusCancelled:
			return ErrAlreadyCancelled
		case model.StatusCompleted:
			return ErrAlreadyCompleted
		}
		return nil
	}
	if err := validate(b.Status); err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, b, model.StatusCancelled, TransitionOptions{}, validate)
}

// applyTransition performs the transactional part of a status change.
// The pre-transaction validation is only advisory: the booking row is
// re-read under a write lock inside the transaction and validate runs
// again against the committed status, so two concurrent transitions
// serialize and the loser fails instead of overwriting a terminal
// state.
func (s *Service) applyTransition(ctx context.Context, b *model.Booking, newStatus string, opts TransitionOptions, validate func(from string) error) (*BookingDetail, error) {
	user, err := s.store.UserByID(ctx, b.UserID)
	if err != nil {
		return nil, wrapStore(err)
	}
	var updated *model.Booking
	err = s.store.InTx(ctx, func(tx TxStore) error {
		cur, err := tx.BookingForUpdate(ctx, b.ID)
		if err != nil {
			return err
		}
		if err := validate(cur.Status); err != nil {
			return err
		}
		cur.Status = newStatus
		switch newStatus {
		case model.StatusConfirmed:
			if opts.CheckInTime != nil {
				cur.CheckInTime = opts.CheckInTime
			}
		case model.StatusCompleted:
			if opts.CheckOutTime != nil {
				cur.CheckOutTime = opts.CheckOutTime
			}
		}
		if err := tx.UpdateBooking(ctx, cur); err != nil {
			return err
		}
		if err := tx.AppendStatusLog(ctx, cur.ID, newStatus); err != nil {
			return err
		}
		updated = cur
		switch newStatus {
		case model.StatusCancelled:
			return tx.SetAvailability(ctx, cur.RoomID, cur.CheckIn, cur.CheckOut, true, nil)
		case model.StatusConfirmed:
			reason := blockReason(user.Name)
			return tx.SetAvailability(ctx, cur.RoomID, cur.CheckIn, cur.CheckOut, false, &reason)
		}
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	room, rt, err := s.store.RoomWithType(ctx, updated.RoomID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return s.detail(updated, room, rt, user), nil
}

func (s *Service) detail(b *model.Booking, room *model.Room, rt *model.RoomType, user *model.User) *BookingDetail {
	return &BookingDetail{
		Booking:        *b,
		RoomNumber:     room.Number,
		RoomTypeName:   rt.Name,
		BasePriceCents: rt.BasePriceCents,
		GuestName:      user.Name,
	}
}

// blockReason builds the human-readable ledger reason for a confirmed
// stay.
func blockReason(guestName string) string {
	return fmt.Sprintf("booked by %s", guestName)
}

// wrapStore passes domain errors through untouched and wraps anything
// else in ErrStorage so infrastructure failures stay distinguishable
// from business outcomes.
func wrapStore(err error) error {
	if err == nil || domainErr(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
