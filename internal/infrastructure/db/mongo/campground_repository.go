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

const campgroundsCollection = "campgrounds"

// CampgroundRepository persists campgrounds and translates the typed filter
// predicates into bson. Only the operators named in ports.FilterOp exist
// here; there is no path from a raw query string to a Mongo operator.
type CampgroundRepository struct {
	coll *mongo.Collection
}

func NewCampgroundRepository(db *mongo.Database) *CampgroundRepository {
	return &CampgroundRepository{coll: db.Collection(campgroundsCollection)}
}

type mongoCampground struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name,omitempty"`
	Address   string             `bson:"address,omitempty"`
	Telephone string             `bson:"telephone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}

func (m mongoCampground) toDomain() *domain.Campground {
	return &domain.Campground{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Address:   m.Address,
		Telephone: m.Telephone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// buildFilter translates typed predicates into a bson document.
func buildFilter(filters []ports.Filter) bson.M {
	query := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case ports.OpEq:
			query[f.Field] = f.Value
		case ports.OpGt:
			query[f.Field] = bson.M{"$gt": f.Value}
		case ports.OpGte:
			query[f.Field] = bson.M{"$gte": f.Value}
		case ports.OpLt:
			query[f.Field] = bson.M{"$lt": f.Value}
		case ports.OpLte:
			query[f.Field] = bson.M{"$lte": f.Value}
		case ports.OpIn:
			query[f.Field] = bson.M{"$in": f.Value}
		}
	}
	return query
}

func (r *CampgroundRepository) Create(ctx context.Context, cg *domain.Campground) (*domain.Campground, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoCampground{
		Name:      cg.Name,
		Address:   cg.Address,
		Telephone: cg.Telephone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert campground: %w", err)
	}

	out := *cg
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (r *CampgroundRepository) FindByID(ctx context.Context, id string) (*domain.Campground, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCampgroundNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCampground
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampgroundNotFound
		}
		return nil, fmt.Errorf("find campground: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CampgroundRepository) FindByName(ctx context.Context, name string) (*domain.Campground, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCampground
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampgroundNotFound
		}
		return nil, fmt.Errorf("find campground by name: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CampgroundRepository) List(ctx context.Context, q ports.CampgroundListQuery) ([]*domain.Campground, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	if len(q.Select) > 0 {
		projection := bson.M{}
		for _, field := range q.Select {
			projection[field] = 1
		}
		opts.SetProjection(projection)
	}

	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, sf := range q.Sort {
			dir := 1
			if sf.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: sf.Field, Value: dir})
		}
		opts.SetSort(sort)
	}

	cur, err := r.coll.Find(ctx, buildFilter(q.Filters), opts)
	if err != nil {
		return nil, fmt.Errorf("list campgrounds: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Campground, 0, q.Limit)
	for cur.Next(ctx) {
		var mc mongoCampground
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode campground: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cur.Err()
}

func (r *CampgroundRepository) Count(ctx context.Context, filters []ports.Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, buildFilter(filters))
}

func (r *CampgroundRepository) Update(ctx context.Context, id string, patch ports.CampgroundPatch) (*domain.Campground, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCampgroundNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Telephone != nil {
		set["telephone"] = *patch.Telephone
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCampground
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampgroundNotFound
		}
		return nil, fmt.Errorf("update campground: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CampgroundRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCampgroundNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete campground: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCampgroundNotFound
	}
	return nil
}
