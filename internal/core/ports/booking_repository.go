package ports

import (
	"context"

	"github.com/trailhead/campground-api/internal/core/domain"
)

// BookingPageFilter carries the query parameters for listing bookings.
// OwnerID empty means no owner filter (admin scope); non-empty scopes every
// operation to that owner.
type BookingPageFilter struct {
	OwnerID string
	Page    int // 1-based
	Limit   int
}

// BookingRepository defines persistence operations for bookings.
// Every method taking ownerID applies the owner filter only when ownerID is
// non-empty, mirroring the admin/user split in the service layer.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// FindByID returns ErrBookingNotFound both when the id is absent and when
	// the booking belongs to a different owner.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Booking, error)
	FindPage(ctx context.Context, filter BookingPageFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id, ownerID string) error
	// DeleteByCampground removes all bookings referencing the campground and
	// returns how many were deleted. Used by the cascade on campground delete.
	DeleteByCampground(ctx context.Context, campgroundID string) (int64, error)
}
