package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
)

const bookingsCollection = "bookings"

// BookingRepository persists bookings. Owner scoping happens at the query
// level: when an owner id is supplied it is part of the filter, so a lookup
// on someone else's booking misses exactly like a lookup on a missing id.
type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

type mongoBooking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"user"`
	CampgroundID primitive.ObjectID `bson:"campground"`
	StartDate    time.Time          `bson:"startDate"`
	Nights       int                `bson:"nights"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (m mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:           m.ID.Hex(),
		UserID:       m.UserID.Hex(),
		CampgroundID: m.CampgroundID.Hex(),
		StartDate:    m.StartDate,
		Nights:       m.Nights,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// scopedFilter builds the (id, owner) filter. An invalid owner id cannot
// match anything, so it yields an impossible filter rather than an error.
func scopedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		uid, err := primitive.ObjectIDFromHex(ownerID)
		if err != nil {
			return nil, domain.ErrBookingNotFound
		}
		filter["user"] = uid
	}
	return filter, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	uid, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return nil, fmt.Errorf("booking owner id: %w", err)
	}
	cid, err := primitive.ObjectIDFromHex(b.CampgroundID)
	if err != nil {
		return nil, fmt.Errorf("booking campground id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoBooking{
		UserID:       uid,
		CampgroundID: cid,
		StartDate:    b.StartDate,
		Nights:       b.Nights,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	out := *b
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Booking, error) {
	filter, err := scopedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookingRepository) FindPage(ctx context.Context, filter ports.BookingPageFilter) ([]*domain.Booking, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		uid, err := primitive.ObjectIDFromHex(filter.OwnerID)
		if err != nil {
			return []*domain.Booking{}, nil
		}
		query["user"] = uid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Booking, 0, filter.Limit)
	for cur.Next(ctx) {
		var mb mongoBooking
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		out = append(out, mb.toDomain())
	}
	return out, cur.Err()
}

func (r *BookingRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	query := bson.M{}
	if ownerID != "" {
		uid, err := primitive.ObjectIDFromHex(ownerID)
		if err != nil {
			return 0, nil
		}
		query["user"] = uid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, query)
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return domain.ErrBookingNotFound
	}
	uid, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return fmt.Errorf("booking owner id: %w", err)
	}
	cid, err := primitive.ObjectIDFromHex(b.CampgroundID)
	if err != nil {
		return fmt.Errorf("booking campground id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"user":       uid,
		"campground": cid,
		"startDate":  b.StartDate,
		"nights":     b.Nights,
		"updatedAt":  time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := scopedFilter(id, ownerID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteByCampground(ctx context.Context, campgroundID string) (int64, error) {
	cid, err := primitive.ObjectIDFromHex(campgroundID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"campground": cid})
	if err != nil {
		return 0, fmt.Errorf("cascade delete bookings: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the lookup indexes used by owner scoping and the
// cascade delete.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "campground", Value: 1}}},
	})
	return err
}
