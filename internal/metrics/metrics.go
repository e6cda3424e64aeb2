package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// register | login | validate ; success | failure
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Authentication attempts by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	// add | remove | merge ; ok | conflict | not_found | error
	FavoritesOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_operations_total",
			Help: "Favorites mutations by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_upstream_requests_total",
			Help: "Requests sent to the movie catalog upstream",
		},
		[]string{"endpoint", "outcome"},
	)

	HashQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "password_hash_queue_depth",
			Help: "Password hashing jobs waiting for a worker",
		},
	)

	initOnce sync.Once
)

// /metrics
var Handler = promhttp.Handler

// Init registers the collectors on the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal, AuthEvents, FavoritesOps, CatalogRequests, HashQueueDepth)
	})
}
