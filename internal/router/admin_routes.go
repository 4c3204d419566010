package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"    // admin handlers
	"github.com/iliyamo/hotel-room-reservation/internal/middleware" // JWT + role middlewares
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Room types ----
	g.POST("/room-types", a.CreateRoomType)
	// Includes inactive types; the public catalogue filters them out.
	g.GET("/room-types", a.ListRoomTypes)
	g.PUT("/room-types/:id", a.UpdateRoomType)
	g.PATCH("/room-types/:id", a.UpdateRoomType) // allow partial/semantic updates via PATCH as well
	g.DELETE("/room-types/:id", a.DeleteRoomType)

	// ---- Rooms ----
	g.POST("/rooms", a.CreateRoom)
	g.GET("/rooms", a.ListRooms)
	g.PUT("/rooms/:id", a.UpdateRoom)
	g.PATCH("/rooms/:id", a.UpdateRoom)
	g.DELETE("/rooms/:id", a.DeleteRoom)
	g.GET("/rooms/:id/bookings", a.ListRoomBookings)

	// ---- Bookings ----
	// Direct creation in CONFIRMED on behalf of a guest.
	g.POST("/bookings", a.AdminCreateBooking)
	g.GET("/bookings/:id", a.GetBooking)
	// Lifecycle transitions: confirm, complete, cancel.
	g.PATCH("/bookings/:id/status", a.TransitionBooking)
	// Append-only audit trail of status changes.
	g.GET("/bookings/:id/logs", a.GetBookingLogs)
}
