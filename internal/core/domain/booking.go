package domain

import "time"

const (
	// MinNights and MaxNights bound a single reservation.
	MinNights = 1
	MaxNights = 3
)

// Booking is a reservation of a campground for a date range, owned by a user.
// Overlapping bookings for the same campground and dates are allowed; the
// (user, campground) pair carries no uniqueness constraint.
type Booking struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user"`
	CampgroundID string    `json:"campground"`
	StartDate    time.Time `json:"startDate"`
	Nights       int       `json:"nights"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidNights reports whether n is within the allowed reservation length.
func ValidNights(n int) bool {
	return n >= MinNights && n <= MaxNights
}
