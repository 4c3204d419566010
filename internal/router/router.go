package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-room-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/hotel-room-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	// The health endpoint is used by load balancers and monitoring
	// systems to verify that the service and its database are up.
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register,
	// login and the two refresh variants.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; the handler accepts a
	// refresh_token body or an Authorization header.
	g.POST("/logout", a.Logout)

	// Routes below require a valid access token with a known role.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "GUEST"))
	auth.GET("/me", a.Me)

	// Alias so clients can call either /v1/auth/logout or /v1/logout
	// with a valid refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler returns sanitized data for room types,
// rooms and availability.  These routes apply no JWT or role middleware so
// visitors can browse the inventory before creating an account.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// List the active room type catalogue
	e.GET("/v1/room-types", p.GetRoomTypes)
	// List active rooms, optionally filtered by ?room_type_id=
	e.GET("/v1/rooms", p.GetRooms)
	// Single room with its type details
	e.GET("/v1/rooms/:id", p.GetRoom)
	// Availability calendar of a room for a date range.  Only confirmed
	// stays show up here; pending bookings do not block the calendar.
	e.GET("/v1/rooms/:id/calendar", p.GetRoomCalendar)
	// Live availability check for a concrete stay.  Runs against the
	// active booking set, so pending bookings count.
	e.GET("/v1/rooms/:id/availability", p.CheckAvailability)
}
