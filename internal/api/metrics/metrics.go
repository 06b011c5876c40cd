// Package metrics defines and registers all custom Prometheus metrics for the
// rental platform API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "not_found", or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// PropertiesCreatedTotal counts newly created listings.
// Label:
//   - property_type: "Apartment", "Villa", "PG", "Plot", or "Commercial"
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created, by type.",
	},
	[]string{"property_type"},
)

// SearchesTotal counts listing search requests.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of listing search requests served.",
	},
)

// ImagesUploadedTotal counts listing images forwarded to object storage.
var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of listing images uploaded to object storage.",
	},
)

// UsersBlockedTotal counts admin block/unblock operations.
// Label:
//   - action: "block" or "unblock"
var UsersBlockedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_blocked_total",
		Help:      "Total number of admin block/unblock operations.",
	},
	[]string{"action"},
)
