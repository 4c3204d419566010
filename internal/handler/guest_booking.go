package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/queue"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// GuestHandler exposes the booking endpoints available to
// authenticated guests.  Lifecycle operations go through the engine;
// listings read denormalized rows straight from the repository.  All
// methods assume JWT authentication has already run; they return 401
// only when the user ID cannot be extracted from the context.
type GuestHandler struct {
	Engine   *booking.Service
	Bookings *repository.BookingRepo
}

// NewGuestHandler constructs a GuestHandler.  Both dependencies must
// be non-nil.
func NewGuestHandler(engine *booking.Service, bookings *repository.BookingRepo) *GuestHandler {
	if engine == nil || bookings == nil {
		panic("nil dependency passed to NewGuestHandler")
	}
	return &GuestHandler{Engine: engine, Bookings: bookings}
}

type createBookingReq struct {
	RoomID         uint64 `json:"room_id"`
	CheckIn        string `json:"check_in"`  // YYYY-MM-DD
	CheckOut       string `json:"check_out"` // YYYY-MM-DD
	Guests         uint32 `json:"guests"`
	SpecialRequest string `json:"special_request"`
}

// bindStay validates the shared request shape of the booking creation
// endpoints and parses the date strings.
func bindStay(c echo.Context) (*createBookingReq, time.Time, time.Time, error) {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return nil, time.Time{}, time.Time{}, errors.New("invalid request body")
	}
	if req.RoomID == 0 {
		return nil, time.Time{}, time.Time{}, errors.New("room_id is required")
	}
	ci, err := parseDate(req.CheckIn)
	if err != nil {
		return nil, time.Time{}, time.Time{}, errors.New("check_in must be YYYY-MM-DD")
	}
	co, err := parseDate(req.CheckOut)
	if err != nil {
		return nil, time.Time{}, time.Time{}, errors.New("check_out must be YYYY-MM-DD")
	}
	return &req, ci, co, nil
}

// CreateBooking handles POST /v1/bookings.  The booking is created in
// status PENDING; the availability calendar is not touched until an
// admin confirms the stay.  Returns 201 with the priced booking, 409
// when the dates are already taken.
func (h *GuestHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	req, ci, co, err := bindStay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var special *string
	if s := strings.TrimSpace(req.SpecialRequest); s != "" {
		special = &s
	}
	detail, err := h.Engine.CreateBooking(c.Request().Context(), userID, req.RoomID, ci, co, req.Guests, special)
	if err != nil {
		return engineError(c, err)
	}
	publishStatus(detail)
	return c.JSON(http.StatusCreated, toBookingResponse(detail))
}

// ListBookings handles GET /v1/my-bookings.  Returns all bookings of
// the current user, newest first.
func (h *GuestHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id.  Ownership is enforced in
// the query, so a booking belonging to another guest reads as absent.
func (h *GuestHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.Bookings.DetailByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// CancelBooking handles DELETE /v1/bookings/:id.  Guests may cancel
// only their own bookings; a booking that is already CANCELLED or
// COMPLETED returns 409.  Cancelling a CONFIRMED stay releases its
// availability ledger dates in the same transaction.
func (h *GuestHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.Engine.CancelBooking(c.Request().Context(), userID, getRole(c), id)
	if err != nil {
		return engineError(c, err)
	}
	publishStatus(detail)
	return c.JSON(http.StatusOK, toBookingResponse(detail))
}

// publishStatus fires a booking.status event for the new lifecycle
// state.  Publishing is best-effort: failures are logged inside the
// publisher and never fail the request.
func publishStatus(d *booking.BookingDetail) {
	ev := queue.BookingStatusEvent{
		BookingID:        d.Booking.ID,
		UserID:           d.Booking.UserID,
		GuestName:        d.GuestName,
		RoomID:           d.Booking.RoomID,
		RoomNumber:       d.RoomNumber,
		RoomTypeName:     d.RoomTypeName,
		CheckIn:          d.Booking.CheckIn.UTC().Format("2006-01-02"),
		CheckOut:         d.Booking.CheckOut.UTC().Format("2006-01-02"),
		Guests:           d.Booking.Guests,
		TotalAmountCents: d.Booking.TotalAmountCents,
		Status:           d.Booking.Status,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishBookingStatus(ctx, ev); err != nil {
			log.Printf("booking %d: publish %s event failed: %v", ev.BookingID, ev.Status, err)
		}
	}()
}
