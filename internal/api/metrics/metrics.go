// Package metrics defines the custom Prometheus metrics for the campground
// booking API. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default registry
// at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campground"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthDeniedTotal counts requests short-circuited by an access-control gate.
// Label:
//   - reason: "missing_header", "invalid_token", "revoked", "forbidden"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests rejected by the auth gates, by reason.",
	},
	[]string{"reason"},
)

// BookingsCreatedTotal counts created bookings.
// Label:
//   - scope: "user" (self-service) or "admin" (created on behalf of a user)
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by actor scope.",
	},
	[]string{"scope"},
)

// CascadeDeletesTotal counts campground deletions, which cascade to every
// booking referencing the campground.
var CascadeDeletesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "campground_cascade_deletes_total",
		Help:      "Total number of campground deletions (each cascades to its bookings).",
	},
)
