package handler

import (
	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// AdminHandler bundles the dependencies of the back-office endpoints:
// room type and room management plus booking operations that guests
// cannot perform themselves.
type AdminHandler struct {
	RoomTypes *repository.RoomTypeRepo
	Rooms     *repository.RoomRepo
	Bookings  *repository.BookingRepo
	Engine    *booking.Service
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(roomTypes *repository.RoomTypeRepo, rooms *repository.RoomRepo, bookings *repository.BookingRepo, engine *booking.Service) *AdminHandler {
	if roomTypes == nil || rooms == nil || bookings == nil || engine == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{
		RoomTypes: roomTypes,
		Rooms:     rooms,
		Bookings:  bookings,
		Engine:    engine,
	}
}
