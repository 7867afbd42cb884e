package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// PlansTotal counts plan requests by outcome (ok, cached, invalid, error)
	PlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_plans_total", Help: "Route plans by outcome."},
		[]string{"outcome"},
	)
	// ConstructionSeconds records the time spent ranking savings and building routes
	ConstructionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_construction_seconds", Help: "Route construction duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10)},
	)
	// SavingsPairs counts ranked savings pairs
	SavingsPairs = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_savings_pairs_total", Help: "Savings pairs ranked."},
	)
	// ConstructionActions counts constructor decisions by action (create, extend, merge, skip)
	ConstructionActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_construction_actions_total", Help: "Route constructor decisions by action."},
		[]string{"action"},
	)
	// UnassignedPoints counts points left off every route
	UnassignedPoints = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_unassigned_points_total", Help: "Points left unassigned after construction."},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlansTotal)
		Registry.MustRegister(ConstructionSeconds)
		Registry.MustRegister(SavingsPairs)
		Registry.MustRegister(ConstructionActions)
		Registry.MustRegister(UnassignedPoints)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
