package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
	"github.com/trailhead/campground-api/internal/core/validate"
)

// BookingService implements the booking use cases. An empty ownerID selects
// the admin (unscoped) behaviour; a non-empty ownerID scopes every lookup to
// that owner, so a foreign booking is indistinguishable from a missing one.
type BookingService struct {
	bookings    ports.BookingRepository
	campgrounds ports.CampgroundRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, campgrounds ports.CampgroundRepository, users ports.UserRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, campgrounds: campgrounds, users: users, logger: logger}
}

func (s *BookingService) List(ctx context.Context, ownerID string, page, limit int) (*ports.BookingPage, error) {
	rows, err := s.bookings.FindPage(ctx, ports.BookingPageFilter{OwnerID: ownerID, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	total, err := s.bookings.Count(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	details, err := s.populate(ctx, rows)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.BookingPage{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Bookings:   details,
	}, nil
}

func (s *BookingService) Get(ctx context.Context, id, ownerID string) (*ports.BookingDetail, error) {
	if !validate.ObjectID(id) {
		return nil, domain.ErrInvalidID
	}
	b, err := s.bookings.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.populateOne(ctx, b)
}

func (s *BookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*ports.BookingDetail, error) {
	if in.StartDate.IsZero() || !domain.ValidNights(in.Nights) || in.CampgroundName == "" {
		return nil, domain.NewValidationError("startDate, nights and campgroundName are required")
	}

	ownerID := in.OwnerID
	if in.OwnerEmail != "" {
		// Admin path: the booking's owner is resolved by email.
		owner, err := s.users.FindByEmail(ctx, in.OwnerEmail)
		if err != nil {
			return nil, err
		}
		ownerID = owner.ID
	}

	cg, err := s.campgrounds.FindByName(ctx, in.CampgroundName)
	if err != nil {
		return nil, err
	}

	created, err := s.bookings.Create(ctx, &domain.Booking{
		UserID:       ownerID,
		CampgroundID: cg.ID,
		StartDate:    in.StartDate,
		Nights:       in.Nights,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("booking create failed")
		return nil, err
	}

	s.logger.Info().Str("booking_id", created.ID).Str("user_id", ownerID).Str("campground_id", cg.ID).Msg("booking created")
	return s.populateOne(ctx, created)
}

func (s *BookingService) Update(ctx context.Context, id string, in ports.UpdateBookingInput) (*ports.BookingDetail, error) {
	if !validate.ObjectID(id) {
		return nil, domain.ErrInvalidID
	}
	if in.StartDate.IsZero() || !domain.ValidNights(in.Nights) || in.CampgroundName == "" {
		return nil, domain.NewValidationError("startDate, nights and campgroundName are required")
	}

	b, err := s.bookings.FindByID(ctx, id, in.ScopeOwnerID)
	if err != nil {
		return nil, err
	}

	if in.OwnerEmail != "" {
		// Admin path: reassign the booking to the user behind the email.
		owner, err := s.users.FindByEmail(ctx, in.OwnerEmail)
		if err != nil {
			return nil, err
		}
		b.UserID = owner.ID
	}

	cg, err := s.campgrounds.FindByName(ctx, in.CampgroundName)
	if err != nil {
		return nil, err
	}

	b.CampgroundID = cg.ID
	b.StartDate = in.StartDate
	b.Nights = in.Nights

	if err := s.bookings.Update(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("booking_id", id).Msg("booking update failed")
		return nil, err
	}

	s.logger.Info().Str("booking_id", id).Msg("booking updated")
	return s.populateOne(ctx, b)
}

func (s *BookingService) Delete(ctx context.Context, id, ownerID string) error {
	if !validate.ObjectID(id) {
		return domain.ErrInvalidID
	}
	if _, err := s.bookings.FindByID(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info().Str("booking_id", id).Str("owner_scope", ownerID).Msg("booking deleted")
	return nil
}

// populate expands owner and campground references for a page of bookings,
// batching lookups so each referenced document is fetched once.
func (s *BookingService) populate(ctx context.Context, rows []*domain.Booking) ([]ports.BookingDetail, error) {
	owners := make(map[string]*domain.User)
	grounds := make(map[string]*domain.Campground)

	details := make([]ports.BookingDetail, 0, len(rows))
	for _, b := range rows {
		owner, ok := owners[b.UserID]
		if !ok {
			u, err := s.users.FindByID(ctx, b.UserID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			owner = u // nil when the owner row is gone
			owners[b.UserID] = owner
		}

		cg, ok := grounds[b.CampgroundID]
		if !ok {
			g, err := s.campgrounds.FindByID(ctx, b.CampgroundID)
			if err != nil && !errors.Is(err, domain.ErrCampgroundNotFound) {
				return nil, err
			}
			cg = g
			grounds[b.CampgroundID] = cg
		}

		details = append(details, toDetail(b, owner, cg))
	}
	return details, nil
}

func (s *BookingService) populateOne(ctx context.Context, b *domain.Booking) (*ports.BookingDetail, error) {
	details, err := s.populate(ctx, []*domain.Booking{b})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func toDetail(b *domain.Booking, owner *domain.User, cg *domain.Campground) ports.BookingDetail {
	d := ports.BookingDetail{
		ID:         b.ID,
		StartDate:  b.StartDate,
		Nights:     b.Nights,
		Campground: cg,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	d.User.ID = b.UserID
	if owner != nil {
		d.User.Username = owner.Username
		d.User.Email = owner.Email
	}
	return d
}

var _ ports.BookingService = (*BookingService)(nil)
