package handler

import (
	"fmt"
	"time"
)

// bookingRequest is the user-scoped create/update payload. The owner is
// never part of the body; it always comes from the verified token.
type bookingRequest struct {
	StartDate      string `json:"startDate"      validate:"required"`
	Nights         int    `json:"nights"         validate:"required,min=1,max=3"`
	CampgroundName string `json:"campgroundName" validate:"required"`
}

// adminBookingRequest additionally names the booking's owner by email.
type adminBookingRequest struct {
	Email          string `json:"email"          validate:"required,email"`
	StartDate      string `json:"startDate"      validate:"required"`
	Nights         int    `json:"nights"         validate:"required,min=1,max=3"`
	CampgroundName string `json:"campgroundName" validate:"required"`
}

type bookingMutationResponse struct {
	Message string `json:"message"`
	Booking any    `json:"booking"`
}

// parseStartDate accepts both a bare date and a full RFC 3339 timestamp.
func parseStartDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid startDate %q", s)
}
