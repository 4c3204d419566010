package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// memStore is an in-memory Store used to exercise the engine without
// a database.  Transactions take a single mutex for their entire
// duration, mirroring the per-room write lock the MySQL store obtains
// with SELECT ... FOR UPDATE: the conflict re-check inside a
// transaction always observes every committed booking.  Run the
// concurrency tests with -race.
type memStore struct {
	mu        sync.Mutex
	rooms     map[uint64]*model.Room
	roomTypes map[uint64]*model.RoomType
	users     map[uint64]*model.User
	bookings  map[uint64]*model.Booking
	logs      []model.BookingStatusLog
	ledger    map[string]*model.RoomAvailability
	nextID    uint64
	txOpened  int
}

func newMemStore() *memStore {
	return &memStore{
		rooms:     map[uint64]*model.Room{},
		roomTypes: map[uint64]*model.RoomType{},
		users:     map[uint64]*model.User{},
		bookings:  map[uint64]*model.Booking{},
		ledger:    map[string]*model.RoomAvailability{},
	}
}

func ledgerKey(roomID uint64, d time.Time) string {
	return fmt.Sprintf("%d/%s", roomID, d.Format("2006-01-02"))
}

func (m *memStore) RoomWithType(ctx context.Context, roomID uint64) (*model.Room, *model.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	rt, ok := m.roomTypes[room.RoomTypeID]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	r, t := *room, *rt
	return &r, &t, nil
}

func (m *memStore) UserByID(ctx context.Context, userID uint64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) BookingByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) FindConflict(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findConflictLocked(roomID, checkIn, checkOut)
}

func (m *memStore) findConflictLocked(roomID uint64, checkIn, checkOut time.Time) (*model.Booking, error) {
	for _, b := range m.bookings {
		if b.RoomID != roomID || !activeStatus(b.Status) {
			continue
		}
		if b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) InTx(ctx context.Context, fn func(tx TxStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txOpened++
	return fn(&memTx{s: m})
}

// memTx mutates the store directly while the store mutex is held.
// Engine transactions only fail before their first write (conflict
// detected under the lock), so apply-in-place matches rollback
// semantics for every path the tests exercise.
type memTx struct {
	s *memStore
}

func (t *memTx) LockRoom(ctx context.Context, roomID uint64) error {
	if _, ok := t.s.rooms[roomID]; !ok {
		return ErrRoomNotFound
	}
	return nil
}

func (t *memTx) BookingForUpdate(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	b, ok := t.s.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (t *memTx) FindConflict(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (*model.Booking, error) {
	return t.s.findConflictLocked(roomID, checkIn, checkOut)
}

func (t *memTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	t.s.nextID++
	b.ID = t.s.nextID
	cp := *b
	t.s.bookings[b.ID] = &cp
	return nil
}

func (t *memTx) UpdateBooking(ctx context.Context, b *model.Booking) error {
	if _, ok := t.s.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	t.s.bookings[b.ID] = &cp
	return nil
}

func (t *memTx) AppendStatusLog(ctx context.Context, bookingID uint64, status string) error {
	t.s.logs = append(t.s.logs, model.BookingStatusLog{
		ID:        uint64(len(t.s.logs) + 1),
		BookingID: bookingID,
		Status:    status,
	})
	return nil
}

func (t *memTx) SetAvailability(ctx context.Context, roomID uint64, from, to time.Time, available bool, reason *string) error {
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		t.s.ledger[ledgerKey(roomID, d)] = &model.RoomAvailability{
			RoomID:    roomID,
			Date:      d,
			Available: available,
			Reason:    reason,
		}
	}
	return nil
}

// fixture wires a store with one room type (max 4 guests, 100.00 per
// night), rooms 1 and 7, a guest and an admin, and a service whose
// clock is pinned to 2024-01-01.
func fixture() (*memStore, *Service) {
	st := newMemStore()
	st.roomTypes[1] = &model.RoomType{ID: 1, Name: "Deluxe Twin", BasePriceCents: 10000, MaxGuests: 4, IsActive: true}
	st.rooms[1] = &model.Room{ID: 1, RoomTypeID: 1, Number: "101", IsActive: true}
	st.rooms[7] = &model.Room{ID: 7, RoomTypeID: 1, Number: "204", IsActive: true}
	st.users[10] = &model.User{ID: 10, Email: "jane@example.com", Name: "Jane Doe", Role: model.RoleGuest, IsActive: true}
	st.users[11] = &model.User{ID: 11, Email: "bob@example.com", Name: "Bob Ray", Role: model.RoleGuest, IsActive: true}
	st.users[99] = &model.User{ID: 99, Email: "admin@example.com", Name: "Front Desk", Role: model.RoleAdmin, IsActive: true}
	now := func() time.Time { return date(2024, 1, 1) }
	return st, NewService(st, now)
}

func TestCreateBookingSequentialNonOverlapping(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Booking.Status != model.StatusPending {
		t.Errorf("status = %s, want PENDING", first.Booking.Status)
	}
	if first.Booking.TotalAmountCents != 30000 {
		t.Errorf("total = %d, want 30000", first.Booking.TotalAmountCents)
	}
	if first.RoomTypeName != "Deluxe Twin" || first.GuestName != "Jane Doe" {
		t.Errorf("detail not resolved: %+v", first)
	}

	// back-to-back range; check-out day is exclusive so 3/4 is free
	if _, err := svc.CreateBooking(ctx, 11, 1, date(2024, 3, 4), date(2024, 3, 6), 1, nil); err != nil {
		t.Fatalf("adjacent create: %v", err)
	}

	if len(st.logs) != 2 {
		t.Fatalf("status log entries = %d, want 2", len(st.logs))
	}
	for _, l := range st.logs {
		if l.Status != model.StatusPending {
			t.Errorf("log status = %s, want PENDING", l.Status)
		}
	}
	// PENDING never touches the calendar
	if len(st.ledger) != 0 {
		t.Errorf("ledger rows written for pending bookings: %d", len(st.ledger))
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()

	existing, err := svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil)
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}

	overlaps := []struct {
		name   string
		ci, co time.Time
	}{
		{"identical", date(2024, 3, 1), date(2024, 3, 4)},
		{"starts inside", date(2024, 3, 2), date(2024, 3, 6)},
		{"ends inside", date(2024, 2, 27), date(2024, 3, 2)},
		{"contains", date(2024, 2, 27), date(2024, 3, 6)},
		{"contained", date(2024, 3, 2), date(2024, 3, 3)},
	}
	for _, tc := range overlaps {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, 11, 1, tc.ci, tc.co, 1, nil)
			if !errors.Is(err, ErrDateConflict) {
				t.Fatalf("err = %v, want ErrDateConflict", err)
			}
		})
	}

	// other room is unaffected
	if _, err := svc.CreateBooking(ctx, 11, 7, date(2024, 3, 1), date(2024, 3, 4), 1, nil); err != nil {
		t.Fatalf("other room: %v", err)
	}

	// cancelled and completed bookings stop conflicting
	for _, status := range []string{model.StatusCancelled, model.StatusCompleted} {
		st.mu.Lock()
		st.bookings[existing.Booking.ID].Status = status
		st.mu.Unlock()
		res, err := svc.CheckAvailability(ctx, 1, date(2024, 3, 1), date(2024, 3, 4), 1)
		if err != nil || !res.Available {
			t.Fatalf("%s booking still conflicts: res=%+v err=%v", status, res, err)
		}
	}
}

func TestCreateBookingValidation(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()
	st.rooms[5] = &model.Room{ID: 5, RoomTypeID: 1, Number: "501", IsActive: false}

	cases := []struct {
		name   string
		roomID uint64
		ci, co time.Time
		guests uint32
		want   error
	}{
		{"zero guests", 1, date(2024, 3, 1), date(2024, 3, 2), 0, ErrInvalidRange},
		{"equal dates", 1, date(2024, 3, 1), date(2024, 3, 1), 2, ErrInvalidRange},
		{"reversed dates", 1, date(2024, 3, 4), date(2024, 3, 1), 2, ErrInvalidRange},
		{"yesterday", 1, date(2023, 12, 31), date(2024, 3, 1), 2, ErrPastDate},
		{"unknown room", 404, date(2024, 3, 1), date(2024, 3, 2), 2, ErrRoomNotFound},
		{"inactive room", 5, date(2024, 3, 1), date(2024, 3, 2), 2, ErrRoomNotFound},
		{"over capacity", 1, date(2024, 3, 1), date(2024, 3, 2), 5, ErrCapacityExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, 10, tc.roomID, tc.ci, tc.co, tc.guests, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	// validation failures must be rejected before a transaction opens
	if st.txOpened != 0 {
		t.Errorf("transactions opened during validation failures: %d", st.txOpened)
	}

	// capacity error names the limit
	_, err := svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 2), 5, nil)
	if err == nil || !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "4") {
		t.Errorf("capacity error %q does not name the limit 4", msg)
	}
}

func TestCreateBookingConcurrent(t *testing.T) {
	_, svc := fixture()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil)
		}(i)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrDateConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != n-1 {
		t.Fatalf("succeeded=%d conflicted=%d, want 1 and %d", succeeded, conflicted, n-1)
	}
}

func TestAdminCreateBooking(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()

	if _, err := svc.AdminCreateBooking(ctx, model.RoleGuest, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("guest on admin path: err = %v, want ErrForbidden", err)
	}

	det, err := svc.AdminCreateBooking(ctx, model.RoleAdmin, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if det.Booking.Status != model.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", det.Booking.Status)
	}
	// price is nights x base, never guests x base
	if det.Booking.TotalAmountCents != 30000 {
		t.Errorf("total = %d, want 30000 (3 nights x 10000)", det.Booking.TotalAmountCents)
	}
	// confirmed at birth blocks the calendar for [check-in, check-out)
	for d := 1; d <= 3; d++ {
		row := st.ledger[ledgerKey(1, date(2024, 3, d))]
		if row == nil || row.Available {
			t.Fatalf("ledger 2024-03-0%d not blocked: %+v", d, row)
		}
		if row.Reason == nil || *row.Reason != "booked by Jane Doe" {
			t.Errorf("ledger reason = %v, want 'booked by Jane Doe'", row.Reason)
		}
	}
	if _, ok := st.ledger[ledgerKey(1, date(2024, 3, 4))]; ok {
		t.Error("check-out date must not be blocked")
	}
}

func TestTransitionStatus(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()

	det, err := svc.CreateBooking(ctx, 10, 7, date(2024, 3, 1), date(2024, 3, 5), 2, nil)
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}
	id := det.Booking.ID

	if _, err := svc.TransitionStatus(ctx, model.RoleGuest, id, model.StatusConfirmed, TransitionOptions{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("guest transition: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.TransitionStatus(ctx, model.RoleAdmin, 404, model.StatusConfirmed, TransitionOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing booking: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.TransitionStatus(ctx, model.RoleAdmin, id, model.StatusCompleted, TransitionOptions{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("PENDING->COMPLETED: err = %v, want ErrInvalidTransition", err)
	}

	arrival := time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC)
	confirmed, err := svc.TransitionStatus(ctx, model.RoleAdmin, id, model.StatusConfirmed, TransitionOptions{CheckInTime: &arrival})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Booking.CheckInTime == nil || !confirmed.Booking.CheckInTime.Equal(arrival) {
		t.Errorf("check-in time not stamped: %v", confirmed.Booking.CheckInTime)
	}
	for d := 1; d <= 4; d++ {
		row := st.ledger[ledgerKey(7, date(2024, 3, d))]
		if row == nil || row.Available {
			t.Fatalf("ledger 2024-03-0%d not blocked after confirm: %+v", d, row)
		}
	}

	departure := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	completed, err := svc.TransitionStatus(ctx, model.RoleAdmin, id, model.StatusCompleted, TransitionOptions{CheckOutTime: &departure})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Booking.CheckOutTime == nil || !completed.Booking.CheckOutTime.Equal(departure) {
		t.Errorf("check-out time not stamped: %v", completed.Booking.CheckOutTime)
	}

	// terminal: every further transition fails
	for _, to := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted} {
		if _, err := svc.TransitionStatus(ctx, model.RoleAdmin, id, to, TransitionOptions{}); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("COMPLETED->%s: err = %v, want ErrInvalidTransition", to, err)
		}
	}

	wantLog := []string{model.StatusPending, model.StatusConfirmed, model.StatusCompleted}
	if len(st.logs) != len(wantLog) {
		t.Fatalf("log entries = %d, want %d", len(st.logs), len(wantLog))
	}
	for i, l := range st.logs {
		if l.Status != wantLog[i] {
			t.Errorf("log[%d] = %s, want %s", i, l.Status, wantLog[i])
		}
	}
}

func TestCancelBookingReleasesLedger(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()

	det, err := svc.AdminCreateBooking(ctx, model.RoleAdmin, 10, 7, date(2024, 3, 1), date(2024, 3, 5), 2, nil)
	if err != nil {
		t.Fatalf("seed confirmed booking: %v", err)
	}

	cancelled, err := svc.CancelBooking(ctx, 10, model.RoleGuest, det.Booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Booking.Status != model.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Booking.Status)
	}
	for d := 1; d <= 4; d++ {
		row := st.ledger[ledgerKey(7, date(2024, 3, d))]
		if row == nil || !row.Available {
			t.Fatalf("ledger 2024-03-0%d not released: %+v", d, row)
		}
		if row.Reason != nil {
			t.Errorf("ledger reason = %q, want nil", *row.Reason)
		}
	}
	if _, ok := st.ledger[ledgerKey(7, date(2024, 3, 5))]; ok {
		t.Error("check-out date row must not exist")
	}
}

func TestCancelBookingOwnershipAndTerminalStates(t *testing.T) {
	_, svc := fixture()
	ctx := context.Background()

	det, err := svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 3), 2, nil)
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}
	id := det.Booking.ID

	if _, err := svc.CancelBooking(ctx, 11, model.RoleGuest, id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other guest cancel: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.CancelBooking(ctx, 99, model.RoleAdmin, id); err != nil {
		t.Fatalf("admin override cancel: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, 10, model.RoleGuest, id); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("double cancel: err = %v, want ErrAlreadyCancelled", err)
	}

	completedDet, err := svc.AdminCreateBooking(ctx, model.RoleAdmin, 10, 1, date(2024, 4, 1), date(2024, 4, 3), 2, nil)
	if err != nil {
		t.Fatalf("seed confirmed: %v", err)
	}
	if _, err := svc.TransitionStatus(ctx, model.RoleAdmin, completedDet.Booking.ID, model.StatusCompleted, TransitionOptions{}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, 10, model.RoleGuest, completedDet.Booking.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("cancel completed: err = %v, want ErrAlreadyCompleted", err)
	}

	if _, err := svc.CancelBooking(ctx, 10, model.RoleGuest, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cancel missing: err = %v, want ErrNotFound", err)
	}
}

// staleReadStore serves BookingByID from a snapshot taken at
// construction time while everything else, including the transactional
// re-read, hits the live store.  It simulates a transition racing with
// another one that committed after this one's initial read.
type staleReadStore struct {
	*memStore
	snap map[uint64]model.Booking
}

func (s *staleReadStore) BookingByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	if b, ok := s.snap[bookingID]; ok {
		cp := b
		return &cp, nil
	}
	return s.memStore.BookingByID(ctx, bookingID)
}

func TestTransitionStaleReadCannotResurrectTerminal(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()

	det, err := svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil)
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}
	id := det.Booking.ID

	// The stale service observes the booking frozen in PENDING even
	// after other transitions commit.
	stale := &staleReadStore{memStore: st, snap: map[uint64]model.Booking{id: det.Booking}}
	staleSvc := NewService(stale, func() time.Time { return date(2024, 1, 1) })

	if _, err := svc.CancelBooking(ctx, 99, model.RoleAdmin, id); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Confirm validated against the stale PENDING read must lose to
	// the committed cancel instead of resurrecting the booking.
	_, err = staleSvc.TransitionStatus(ctx, model.RoleAdmin, id, model.StatusConfirmed, TransitionOptions{})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("stale confirm: err = %v, want ErrInvalidTransition", err)
	}
	got, err := st.BookingByID(ctx, id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != model.StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED to stay terminal", got.Status)
	}
	wantLog := []string{model.StatusPending, model.StatusCancelled}
	if len(st.logs) != len(wantLog) {
		t.Fatalf("log entries = %d, want %d", len(st.logs), len(wantLog))
	}
	for i, l := range st.logs {
		if l.Status != wantLog[i] {
			t.Errorf("log[%d] = %s, want %s", i, l.Status, wantLog[i])
		}
	}
	// the losing confirm must not have re-blocked the calendar
	for d := 1; d <= 3; d++ {
		if row := st.ledger[ledgerKey(1, date(2024, 3, d))]; row != nil && !row.Available {
			t.Errorf("ledger 2024-03-0%d blocked by a lost transition: %+v", d, row)
		}
	}

	// same race on the cancel path: a stale cancel against an already
	// cancelled booking fails rather than double-logging
	if _, err := staleSvc.CancelBooking(ctx, 10, model.RoleGuest, id); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("stale cancel: err = %v, want ErrAlreadyCancelled", err)
	}
	if len(st.logs) != len(wantLog) {
		t.Fatalf("stale cancel appended to the log: %d entries", len(st.logs))
	}
}

func TestTransitionConcurrentCancelConfirm(t *testing.T) {
	st, svc := fixture()
	ctx := context.Background()

	det, err := svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil)
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}
	id := det.Booking.ID

	var wg sync.WaitGroup
	var cancelErr, confirmErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, cancelErr = svc.CancelBooking(ctx, 99, model.RoleAdmin, id)
	}()
	go func() {
		defer wg.Done()
		_, confirmErr = svc.TransitionStatus(ctx, model.RoleAdmin, id, model.StatusConfirmed, TransitionOptions{})
	}()
	wg.Wait()

	// Whichever order the two commits take, the booking must end up
	// CANCELLED: either the confirm lost outright, or it committed
	// first and was then legally cancelled.
	if cancelErr != nil {
		t.Fatalf("cancel: %v", cancelErr)
	}
	if confirmErr != nil && !errors.Is(confirmErr, ErrInvalidTransition) {
		t.Fatalf("confirm: %v", confirmErr)
	}
	got, err := st.BookingByID(ctx, id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != model.StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", got.Status)
	}
	if last := st.logs[len(st.logs)-1]; last.Status != model.StatusCancelled {
		t.Fatalf("last log entry = %s, want CANCELLED", last.Status)
	}
}

func TestCheckAvailability(t *testing.T) {
	_, svc := fixture()
	ctx := context.Background()

	res, err := svc.CheckAvailability(ctx, 1, date(2024, 3, 1), date(2024, 3, 4), 2)
	if err != nil || !res.Available {
		t.Fatalf("empty room: res=%+v err=%v", res, err)
	}

	det, err := svc.CreateBooking(ctx, 10, 1, date(2024, 3, 1), date(2024, 3, 4), 2, nil)
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}

	res, err = svc.CheckAvailability(ctx, 1, date(2024, 3, 2), date(2024, 3, 6), 2)
	if err != nil {
		t.Fatalf("overlapping check: %v", err)
	}
	if res.Available || res.ConflictingBookingID != det.Booking.ID {
		t.Fatalf("res = %+v, want conflict with booking %d", res, det.Booking.ID)
	}

	if _, err := svc.CheckAvailability(ctx, 1, date(2024, 3, 2), date(2024, 3, 6), 9); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("capacity: err = %v, want ErrCapacityExceeded", err)
	}
	if _, err := svc.CheckAvailability(ctx, 1, date(2023, 12, 1), date(2023, 12, 4), 2); !errors.Is(err, ErrPastDate) {
		t.Fatalf("past: err = %v, want ErrPastDate", err)
	}
}
