package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

type roomReq struct {
	RoomTypeID uint64 `json:"room_type_id"`
	Number     string `json:"number"`
	Floor      int32  `json:"floor"`
}

type roomResp struct {
	ID         uint64 `json:"id"`
	RoomTypeID uint64 `json:"room_type_id"`
	Number     string `json:"number"`
	Floor      int32  `json:"floor"`
	IsActive   bool   `json:"is_active"`
}

func toRoomResp(rm *model.Room) roomResp {
	return roomResp{
		ID:         rm.ID,
		RoomTypeID: rm.RoomTypeID,
		Number:     rm.Number,
		Floor:      rm.Floor,
		IsActive:   rm.IsActive,
	}
}

// CreateRoom handles POST /v1/admin/rooms.  The referenced room type
// must exist and be active.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.RoomTypeID == 0 || req.Number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_type_id and number are required"})
	}
	ctx := c.Request().Context()
	rt, err := h.RoomTypes.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room type"})
	}
	if !rt.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room type is inactive"})
	}
	rm := &model.Room{RoomTypeID: req.RoomTypeID, Number: req.Number, Floor: req.Floor}
	if err := h.Rooms.Create(ctx, rm); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(rm))
}

// UpdateRoom handles PUT /v1/admin/rooms/:id.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.RoomTypeID == 0 || req.Number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_type_id and number are required"})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}
	if _, err := h.RoomTypes.GetByID(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, repository.ErrRoomTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room type"})
	}
	rm.RoomTypeID = req.RoomTypeID
	rm.Number = req.Number
	rm.Floor = req.Floor
	if err := h.Rooms.Update(ctx, rm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
	}
	return c.JSON(http.StatusOK, toRoomResp(rm))
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id.  Soft delete; rooms
// that still have active bookings with a future check-out cannot be
// deactivated and return 409.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Deactivate(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has active bookings"})
		}
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRooms handles GET /v1/admin/rooms, including inactive rooms.
// An optional room_type_id query filters by type.
func (h *AdminHandler) ListRooms(c echo.Context) error {
	var roomTypeID uint64
	if s := c.QueryParam("room_type_id"); s != "" {
		id, ok := parseQueryID(s)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_type_id"})
		}
		roomTypeID = id
	}
	items, err := h.Rooms.List(c.Request().Context(), roomTypeID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
