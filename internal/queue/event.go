// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingStatusEvent is published whenever a booking enters a new
// lifecycle status.  It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type BookingStatusEvent struct {
	BookingID        uint64 `json:"booking_id"`
	UserID           uint64 `json:"user_id"`
	GuestName        string `json:"guest_name"`
	RoomID           uint64 `json:"room_id"`
	RoomNumber       string `json:"room_number"`
	RoomTypeName     string `json:"room_type_name"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Guests           uint32 `json:"guests"`
	TotalAmountCents uint64 `json:"total_amount_cents"`
	Status           string `json:"status"`
	OccurredAt       string `json:"occurred_at"`
}
