// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse room types, rooms and availability without
// requiring authentication. Inactive inventory and sensitive fields are
// filtered from responses.

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// PublicHandler aggregates the dependencies needed for unauthenticated
// browsing.  It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
	RoomTypeRepo     *repository.RoomTypeRepo
	RoomRepo         *repository.RoomRepo
	AvailabilityRepo *repository.AvailabilityRepo
	Engine           *booking.Service
}

// PublicRoomType represents a room type exposed via the public API.
type PublicRoomType struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	BasePriceCents uint32  `json:"base_price_cents"`
	MaxGuests      uint32  `json:"max_guests"`
}

// CalendarDay is one date of a room's availability calendar.  Dates
// the ledger has never touched are implicitly available and carry no
// reason.
type CalendarDay struct {
	Date      string  `json:"date"`
	Available bool    `json:"available"`
	Reason    *string `json:"reason,omitempty"`
}

// GetRoomTypes returns all active room types.  Response JSON contains
// an "items" array of PublicRoomType.
func (h *PublicHandler) GetRoomTypes(c echo.Context) error {
	ctx := c.Request().Context()
	types, err := h.RoomTypeRepo.List(ctx, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRoomType, 0, len(types))
	for _, rt := range types {
		out = append(out, PublicRoomType{
			ID:             rt.ID,
			Name:           rt.Name,
			Description:    rt.Description,
			BasePriceCents: rt.BasePriceCents,
			MaxGuests:      rt.MaxGuests,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRooms lists active rooms joined with their room type.  An
// optional room_type_id query filters by type.
func (h *PublicHandler) GetRooms(c echo.Context) error {
	var roomTypeID uint64
	if s := c.QueryParam("room_type_id"); s != "" {
		id, ok := parseQueryID(s)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_type_id"})
		}
		roomTypeID = id
	}
	rooms, err := h.RoomRepo.List(c.Request().Context(), roomTypeID, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// GetRoom returns a single active room joined with its room type.
func (h *PublicHandler) GetRoom(c echo.Context) error {
	ctx := c.Request().Context()
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	rm, err := h.RoomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !rm.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	rt, err := h.RoomTypeRepo.GetByID(ctx, rm.RoomTypeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":     rm.ID,
		"number": rm.Number,
		"floor":  rm.Floor,
		"room_type": PublicRoomType{
			ID:             rt.ID,
			Name:           rt.Name,
			Description:    rt.Description,
			BasePriceCents: rt.BasePriceCents,
			MaxGuests:      rt.MaxGuests,
		},
	})
}

// GetRoomCalendar returns the availability calendar of a room for the
// half-open range [from, to).  Query parameters from and to are
// YYYY-MM-DD; to defaults to 30 days after from, from defaults to
// today.  Every date in the range is returned, whether or not a
// ledger row exists for it.
func (h *PublicHandler) GetRoomCalendar(c echo.Context) error {
	ctx := c.Request().Context()
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	rm, err := h.RoomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !rm.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}

	from := booking.DateOnly(time.Now().UTC())
	if s := c.QueryParam("from"); s != "" {
		from, err = parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
		}
	}
	to := from.AddDate(0, 0, 30)
	if s := c.QueryParam("to"); s != "" {
		to, err = parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
		}
	}
	if !from.Before(to) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be before to"})
	}
	if to.Sub(from) > 366*24*time.Hour {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "range too large"})
	}

	rows, err := h.AvailabilityRepo.ListByRoomBetween(ctx, roomID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	ledger := make(map[string]CalendarDay, len(rows))
	for _, a := range rows {
		d := a.Date.UTC().Format("2006-01-02")
		ledger[d] = CalendarDay{Date: d, Available: a.Available, Reason: a.Reason}
	}
	out := make([]CalendarDay, 0, int(to.Sub(from)/(24*time.Hour)))
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if day, ok := ledger[key]; ok {
			out = append(out, day)
			continue
		}
		out = append(out, CalendarDay{Date: key, Available: true})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id": roomID,
		"days":    out,
	})
}

// CheckAvailability handles GET /v1/rooms/:id/availability.  Query
// parameters check_in, check_out (YYYY-MM-DD) and guests are
// required.  The check runs against the live booking set, so a
// PENDING booking blocks the range here even though the public
// calendar still shows its dates as open.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ci, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	co, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	guests := uint32(1)
	if s := c.QueryParam("guests"); s != "" {
		n, ok := parseQueryID(s)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
		}
		guests = uint32(n)
	}
	result, err := h.Engine.CheckAvailability(c.Request().Context(), roomID, ci, co, guests)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
