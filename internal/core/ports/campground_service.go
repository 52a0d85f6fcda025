package ports

import (
	"context"

	"github.com/trailhead/campground-api/internal/core/domain"
)

// PageRef describes an adjacent page; present in the response only when that
// page actually exists.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// CampgroundPage is the list envelope for campgrounds.
type CampgroundPage struct {
	Count int                  `json:"count"`
	Next  *PageRef             `json:"next,omitempty"`
	Prev  *PageRef             `json:"prev,omitempty"`
	Data  []*domain.Campground `json:"data"`
}

// CampgroundInput carries the fields for creating a campground.
type CampgroundInput struct {
	Name      string
	Address   string
	Telephone string
}

// CampgroundService defines the campground use cases.
type CampgroundService interface {
	List(ctx context.Context, q CampgroundListQuery) (*CampgroundPage, error)
	Get(ctx context.Context, id string) (*domain.Campground, error)
	Create(ctx context.Context, in CampgroundInput) (*domain.Campground, error)
	Update(ctx context.Context, id string, patch CampgroundPatch) (*domain.Campground, error)
	// Delete removes the campground and cascades to every booking that
	// references it (two explicit steps, dependents first).
	Delete(ctx context.Context, id string) error
}
