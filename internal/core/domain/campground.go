package domain

import "time"

// Campground is a bookable site. Bookings reference it by id; the reverse
// relation is computed on demand, never stored.
type Campground struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Telephone string    `json:"telephone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
