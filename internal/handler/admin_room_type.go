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

type roomTypeReq struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	BasePriceCents uint32  `json:"base_price_cents"`
	MaxGuests      uint32  `json:"max_guests"`
}

type roomTypeResp struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	BasePriceCents uint32  `json:"base_price_cents"`
	MaxGuests      uint32  `json:"max_guests"`
	IsActive       bool    `json:"is_active"`
}

func toRoomTypeResp(rt *model.RoomType) roomTypeResp {
	return roomTypeResp{
		ID:             rt.ID,
		Name:           rt.Name,
		Description:    rt.Description,
		BasePriceCents: rt.BasePriceCents,
		MaxGuests:      rt.MaxGuests,
		IsActive:       rt.IsActive,
	}
}

// CreateRoomType handles POST /v1/admin/room-types.  Prices are
// accepted in integer cents only; a zero price is allowed for
// complimentary categories but a zero guest capacity is not.
func (h *AdminHandler) CreateRoomType(c echo.Context) error {
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.MaxGuests == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_guests must be at least 1"})
	}
	rt := &model.RoomType{
		Name:           req.Name,
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
		MaxGuests:      req.MaxGuests,
	}
	if err := h.RoomTypes.Create(c.Request().Context(), rt); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room type"})
	}
	return c.JSON(http.StatusCreated, toRoomTypeResp(rt))
}

// UpdateRoomType handles PUT /v1/admin/room-types/:id.  Changing the
// base price affects future bookings only; existing bookings keep the
// total computed at creation time.
func (h *AdminHandler) UpdateRoomType(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.MaxGuests == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_guests must be at least 1"})
	}
	ctx := c.Request().Context()
	rt, err := h.RoomTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room type"})
	}
	rt.Name = req.Name
	rt.Description = req.Description
	rt.BasePriceCents = req.BasePriceCents
	rt.MaxGuests = req.MaxGuests
	if err := h.RoomTypes.Update(ctx, rt); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
		}
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room type"})
	}
	return c.JSON(http.StatusOK, toRoomTypeResp(rt))
}

// DeleteRoomType handles DELETE /v1/admin/room-types/:id.  Soft
// delete: the type disappears from public listings and stops taking
// bookings, but its rooms and booking history remain readable.
func (h *AdminHandler) DeleteRoomType(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}
	if err := h.RoomTypes.Deactivate(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room type"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRoomTypes handles GET /v1/admin/room-types, including inactive types.
func (h *AdminHandler) ListRoomTypes(c echo.Context) error {
	items, err := h.RoomTypes.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room types"})
	}
	out := make([]roomTypeResp, 0, len(items))
	for _, rt := range items {
		out = append(out, toRoomTypeResp(rt))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
