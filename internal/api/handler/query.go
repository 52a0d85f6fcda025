package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
	"github.com/trailhead/campground-api/internal/core/validate"
)

// reservedParams are query keys with their own meaning; everything else is
// treated as a filter predicate.
var reservedParams = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
}

// filterableFields is the allow-list of campground fields that may appear in
// filter predicates. Unknown fields are rejected, not passed through.
var filterableFields = map[string]struct{}{
	"name":      {},
	"address":   {},
	"telephone": {},
	"createdAt": {},
	"updatedAt": {},
}

// parseCampgroundQuery translates raw query parameters into a typed list
// query. Filter keys take the form `field` (equality) or `field[op]` with op
// one of gt, gte, lt, lte, in; anything else is a validation error. Values
// parse as numbers when possible, strings otherwise; `in` splits on commas.
func parseCampgroundQuery(params url.Values) (ports.CampgroundListQuery, error) {
	var q ports.CampgroundListQuery

	page, err := validate.Pagination(params.Get("page"), params.Get("limit"), validate.Strict)
	if err != nil {
		return q, err
	}
	q.Page = page.Page
	q.Limit = page.Limit

	if raw := params.Get("select"); raw != "" {
		q.Select = splitFields(raw)
	}
	if raw := params.Get("sort"); raw != "" {
		for _, field := range splitFields(raw) {
			sf := ports.SortField{Field: field}
			if strings.HasPrefix(field, "-") {
				sf = ports.SortField{Field: field[1:], Desc: true}
			}
			q.Sort = append(q.Sort, sf)
		}
	}

	for key, values := range params {
		if _, reserved := reservedParams[key]; reserved || len(values) == 0 {
			continue
		}

		field, opToken := key, "eq"
		if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
			field = key[:i]
			opToken = key[i+1 : len(key)-1]
		}

		op, ok := ports.ParseFilterOp(opToken)
		if !ok {
			return q, domain.NewValidationError("Unsupported filter operator: " + opToken)
		}
		if _, ok := filterableFields[field]; !ok {
			return q, domain.NewValidationError("Unsupported filter field: " + field)
		}

		q.Filters = append(q.Filters, ports.Filter{
			Field: field,
			Op:    op,
			Value: filterValue(op, values[0]),
		})
	}

	return q, nil
}

func splitFields(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// filterValue types a raw value: numbers become float64 so Mongo comparison
// operators behave numerically; everything else stays a string.
func filterValue(op ports.FilterOp, raw string) any {
	if op == ports.OpIn {
		parts := strings.Split(raw, ",")
		values := make([]any, 0, len(parts))
		for _, p := range parts {
			values = append(values, scalarValue(strings.TrimSpace(p)))
		}
		return values
	}
	return scalarValue(raw)
}

func scalarValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
