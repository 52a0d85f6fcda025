package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
	"github.com/trailhead/campground-api/internal/core/validate"
)

// CampgroundService implements campground CRUD. List accepts only typed,
// allow-listed predicates; raw query strings never reach the repository.
type CampgroundService struct {
	campgrounds ports.CampgroundRepository
	bookings    ports.BookingRepository
	logger      zerolog.Logger
}

func NewCampgroundService(campgrounds ports.CampgroundRepository, bookings ports.BookingRepository, logger zerolog.Logger) *CampgroundService {
	return &CampgroundService{campgrounds: campgrounds, bookings: bookings, logger: logger}
}

func (s *CampgroundService) List(ctx context.Context, q ports.CampgroundListQuery) (*ports.CampgroundPage, error) {
	if q.Page < 1 {
		q.Page = validate.DefaultPage
	}
	if q.Limit < 1 || q.Limit > validate.MaxLimit {
		q.Limit = validate.DefaultLimit
	}
	if len(q.Sort) == 0 {
		q.Sort = []ports.SortField{{Field: "createdAt", Desc: true}}
	}

	rows, err := s.campgrounds.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := s.campgrounds.Count(ctx, q.Filters)
	if err != nil {
		return nil, err
	}

	page := &ports.CampgroundPage{Count: len(rows), Data: rows}
	if int64(q.Page*q.Limit) < total {
		page.Next = &ports.PageRef{Page: q.Page + 1, Limit: q.Limit}
	}
	if q.Page > 1 {
		page.Prev = &ports.PageRef{Page: q.Page - 1, Limit: q.Limit}
	}
	return page, nil
}

func (s *CampgroundService) Get(ctx context.Context, id string) (*domain.Campground, error) {
	if !validate.ObjectID(id) {
		return nil, domain.ErrInvalidID
	}
	return s.campgrounds.FindByID(ctx, id)
}

func (s *CampgroundService) Create(ctx context.Context, in ports.CampgroundInput) (*domain.Campground, error) {
	if in.Name == "" || in.Address == "" || in.Telephone == "" {
		return nil, domain.NewValidationError("Name, address and telephone are required")
	}

	created, err := s.campgrounds.Create(ctx, &domain.Campground{
		Name:      in.Name,
		Address:   in.Address,
		Telephone: in.Telephone,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("campground_id", created.ID).Str("name", created.Name).Msg("campground created")
	return created, nil
}

func (s *CampgroundService) Update(ctx context.Context, id string, patch ports.CampgroundPatch) (*domain.Campground, error) {
	if !validate.ObjectID(id) {
		return nil, domain.ErrInvalidID
	}
	if patch.Name == nil && patch.Address == nil && patch.Telephone == nil {
		return nil, domain.NewValidationError("No fields to update")
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, domain.NewValidationError("Name must not be empty")
	}

	updated, err := s.campgrounds.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("campground_id", id).Msg("campground updated")
	return updated, nil
}

// Delete removes the campground and every booking referencing it. Dependents
// go first so a failure never leaves bookings pointing at a deleted parent.
func (s *CampgroundService) Delete(ctx context.Context, id string) error {
	if !validate.ObjectID(id) {
		return domain.ErrInvalidID
	}
	if _, err := s.campgrounds.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.bookings.DeleteByCampground(ctx, id)
	if err != nil {
		return err
	}
	if err := s.campgrounds.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("campground_id", id).Int64("bookings_removed", removed).Msg("campground deleted")
	return nil
}

var _ ports.CampgroundService = (*CampgroundService)(nil)
