package ports

import (
	"context"

	"github.com/trailhead/campground-api/internal/core/domain"
)

// FilterOp is a comparison operator allowed in campground list queries.
// Anything outside this set is rejected at parse time; raw operator strings
// never reach the persistence layer.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpIn  FilterOp = "in"
)

// ParseFilterOp maps a raw operator token to a FilterOp.
func ParseFilterOp(s string) (FilterOp, bool) {
	switch FilterOp(s) {
	case OpEq, OpGt, OpGte, OpLt, OpLte, OpIn:
		return FilterOp(s), true
	}
	return "", false
}

// Filter is one typed field/operator/value predicate.
// Value is a string, float64, or []any for OpIn.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// SortField is a single sort key; Desc follows a leading '-' in the query.
type SortField struct {
	Field string
	Desc  bool
}

// CampgroundListQuery carries predicates, projection, ordering and the
// pagination window for the campground list endpoint.
type CampgroundListQuery struct {
	Filters []Filter
	Select  []string // empty = all fields
	Sort    []SortField
	Page    int // 1-based
	Limit   int
}

// CampgroundPatch is a partial update; nil fields are left untouched.
type CampgroundPatch struct {
	Name      *string
	Address   *string
	Telephone *string
}

// CampgroundRepository defines persistence operations for campgrounds.
type CampgroundRepository interface {
	Create(ctx context.Context, cg *domain.Campground) (*domain.Campground, error)
	FindByID(ctx context.Context, id string) (*domain.Campground, error)
	FindByName(ctx context.Context, name string) (*domain.Campground, error)
	List(ctx context.Context, q CampgroundListQuery) ([]*domain.Campground, error)
	Count(ctx context.Context, filters []Filter) (int64, error)
	Update(ctx context.Context, id string, patch CampgroundPatch) (*domain.Campground, error)
	Delete(ctx context.Context, id string) error
}
