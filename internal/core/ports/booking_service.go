package ports

import (
	"context"
	"time"

	"github.com/trailhead/campground-api/internal/core/domain"
)

// BookingOwner is the populated owner view embedded in booking responses.
type BookingOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// BookingDetail is a booking with its owner and campground expanded inline.
type BookingDetail struct {
	ID         string             `json:"id"`
	StartDate  time.Time          `json:"startDate"`
	Nights     int                `json:"nights"`
	User       BookingOwner       `json:"user"`
	Campground *domain.Campground `json:"campground"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// BookingPage is the paginated list envelope.
type BookingPage struct {
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Bookings   []BookingDetail `json:"bookings"`
}

// CreateBookingInput carries the data for creating a booking. OwnerID is the
// acting user's id and is always taken from the verified token, never from
// the request body. OwnerEmail is only honoured on the admin path, where it
// selects the booking's owner.
type CreateBookingInput struct {
	OwnerID        string
	OwnerEmail     string
	CampgroundName string
	StartDate      time.Time
	Nights         int
}

// UpdateBookingInput mirrors CreateBookingInput for the update path.
// ScopeOwnerID non-empty restricts the lookup to that owner (user scope);
// empty means admin scope.
type UpdateBookingInput struct {
	ScopeOwnerID   string
	OwnerEmail     string
	CampgroundName string
	StartDate      time.Time
	Nights         int
}

// BookingService defines the booking use cases. ownerID empty selects the
// admin (unscoped) behaviour; non-empty scopes everything to that owner.
type BookingService interface {
	List(ctx context.Context, ownerID string, page, limit int) (*BookingPage, error)
	Get(ctx context.Context, id, ownerID string) (*BookingDetail, error)
	Create(ctx context.Context, in CreateBookingInput) (*BookingDetail, error)
	Update(ctx context.Context, id string, in UpdateBookingInput) (*BookingDetail, error)
	Delete(ctx context.Context, id, ownerID string) error
}
