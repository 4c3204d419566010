package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
)

type adminCreateBookingReq struct {
	GuestUserID uint64 `json:"guest_user_id"`
	createBookingReq
}

// AdminCreateBooking handles POST /v1/admin/bookings.  The booking is
// created on behalf of a guest directly in status CONFIRMED, skipping
// PENDING, and the availability calendar is blocked for the stay in
// the same transaction.
func (h *AdminHandler) AdminCreateBooking(c echo.Context) error {
	var req adminCreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.GuestUserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_user_id is required"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	ci, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	co, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	var special *string
	if s := strings.TrimSpace(req.SpecialRequest); s != "" {
		special = &s
	}
	detail, err := h.Engine.AdminCreateBooking(c.Request().Context(), getRole(c), req.GuestUserID, req.RoomID, ci, co, req.Guests, special)
	if err != nil {
		return engineError(c, err)
	}
	publishStatus(detail)
	return c.JSON(http.StatusCreated, toBookingResponse(detail))
}

type transitionReq struct {
	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time"`  // RFC3339, CONFIRMED only
	CheckOutTime *string `json:"check_out_time"` // RFC3339, COMPLETED only
	Reason       *string `json:"reason"`
}

// TransitionBooking handles PATCH /v1/admin/bookings/:id/status.  The
// requested status must be reachable from the booking's current
// status per the lifecycle state machine; anything else returns 409.
func (h *AdminHandler) TransitionBooking(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !booking.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	opts := booking.TransitionOptions{Reason: req.Reason}
	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in_time must be RFC3339"})
		}
		t = t.UTC()
		opts.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_time must be RFC3339"})
		}
		t = t.UTC()
		opts.CheckOutTime = &t
	}
	detail, err := h.Engine.TransitionStatus(c.Request().Context(), getRole(c), id, status, opts)
	if err != nil {
		return engineError(c, err)
	}
	publishStatus(detail)
	return c.JSON(http.StatusOK, toBookingResponse(detail))
}

// GetBooking handles GET /v1/admin/bookings/:id without ownership
// restriction.
func (h *AdminHandler) GetBooking(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.Bookings.DetailByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// ListRoomBookings handles GET /v1/admin/rooms/:id/bookings, newest first.
func (h *AdminHandler) ListRoomBookings(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	items, err := h.Bookings.ListByRoom(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type statusLogItem struct {
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// GetBookingLogs handles GET /v1/admin/bookings/:id/logs.  Returns
// the append-only audit trail of the booking in chronological order.
func (h *AdminHandler) GetBookingLogs(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	logs, err := h.Bookings.StatusLog(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load status logs"})
	}
	if len(logs) == 0 {
		// Every booking has at least its creation entry, so an empty
		// trail means the booking does not exist.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	out := make([]statusLogItem, 0, len(logs))
	for _, l := range logs {
		out = append(out, statusLogItem{Status: l.Status, CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339)})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
