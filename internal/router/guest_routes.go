package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
)

// RegisterGuest registers guest-scoped endpoints under /v1.  All routes
// require a valid JWT; admins may use them too, acting on their own
// bookings.  Guests can create bookings, list and inspect their own
// bookings and cancel them.
func RegisterGuest(e *echo.Echo, h *handler.GuestHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("GUEST", "ADMIN"),
	)
	// Creation enters the lifecycle in PENDING; confirmation is an
	// admin operation.
	g.POST("/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	// Cancellation of one's own booking; ownership and state checks
	// happen in the engine.
	g.DELETE("/bookings/:id", h.CancelBooking)
}
