package booking

import "time"

// DateOnly truncates t to midnight UTC.  Check-in and check-out carry
// date-only semantics throughout the engine; every comparison and
// every stored timestamp goes through this normalization first.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights occupied by the half-open range
// [checkIn, checkOut).  The count is defined against day boundaries,
// not wall-clock hours: both endpoints are truncated to their dates
// and the count is the number of midnights crossed between them.  A
// 25-hour stay that crosses two midnights counts as 2 nights; the
// same 25 hours crossing a single midnight counts as 1.  Ranges that
// cross no boundary return 0.
func Nights(checkIn, checkOut time.Time) uint32 {
	from := DateOnly(checkIn)
	to := DateOnly(checkOut)
	if !to.After(from) {
		return 0
	}
	return uint32(to.Sub(from) / (24 * time.Hour))
}

// TotalCents computes the total price for a stay: nightly base price
// multiplied by the number of nights.  All arithmetic is on integer
// cents; the engine never touches binary floating point for money.
// The product is computed and stored in 64 bits so a long stay at a
// high nightly rate cannot wrap.
func TotalCents(basePriceCents uint32, checkIn, checkOut time.Time) uint64 {
	return uint64(basePriceCents) * uint64(Nights(checkIn, checkOut))
}
