package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the role claim stored by the JWT middleware.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// parseID parses a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseQueryID parses a positive numeric query parameter value.
func parseQueryID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD value as a UTC midnight timestamp.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// engineError translates engine errors into JSON responses.  The
// mapping follows the error taxonomy: validation and state errors are
// 4xx, ErrStorage and anything unrecognized are 500.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidRange),
		errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrCapacityExceeded):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrRoomNotFound),
		errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrDateConflict),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrAlreadyCancelled),
		errors.Is(err, booking.ErrAlreadyCompleted):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// bookingResponse is the JSON shape shared by the booking endpoints.
type bookingResponse struct {
	ID               uint64  `json:"id"`
	RoomID           uint64  `json:"room_id"`
	RoomNumber       string  `json:"room_number"`
	RoomTypeName     string  `json:"room_type_name"`
	BasePriceCents   uint32  `json:"base_price_cents"`
	UserID           uint64  `json:"user_id"`
	GuestName        string  `json:"guest_name"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	Nights           uint32  `json:"nights"`
	Guests           uint32  `json:"guests"`
	TotalAmountCents uint64  `json:"total_amount_cents"`
	SpecialRequest   *string `json:"special_request,omitempty"`
	Status           string  `json:"status"`
	CheckInTime      *string `json:"check_in_time,omitempty"`
	CheckOutTime     *string `json:"check_out_time,omitempty"`
}

func toBookingResponse(d *booking.BookingDetail) bookingResponse {
	b := d.Booking
	resp := bookingResponse{
		ID:               b.ID,
		RoomID:           b.RoomID,
		RoomNumber:       d.RoomNumber,
		RoomTypeName:     d.RoomTypeName,
		BasePriceCents:   d.BasePriceCents,
		UserID:           b.UserID,
		GuestName:        d.GuestName,
		CheckIn:          b.CheckIn.UTC().Format("2006-01-02"),
		CheckOut:         b.CheckOut.UTC().Format("2006-01-02"),
		Nights:           booking.Nights(b.CheckIn, b.CheckOut),
		Guests:           b.Guests,
		TotalAmountCents: b.TotalAmountCents,
		SpecialRequest:   b.SpecialRequest,
		Status:           b.Status,
	}
	if b.CheckInTime != nil {
		s := b.CheckInTime.UTC().Format(time.RFC3339)
		resp.CheckInTime = &s
	}
	if b.CheckOutTime != nil {
		s := b.CheckOutTime.UTC().Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	return resp
}
