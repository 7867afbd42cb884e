package api

import (
	"context"
	"net/http"
	"savings-route-service/internal/api/handlers"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/metrics"
	"savings-route-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Deps are the adapters and defaults the HTTP API is built from.
// Cache, Plans and Ping may be nil; a nil Limiter disables rate limiting.
type Deps struct {
	Points   ports.PointRepository
	Provider ports.DistanceProvider
	Cache    ports.RouteCache
	Plans    ports.PlanRepository
	Limiter  *rate.Limiter
	Ping     func(ctx context.Context) error

	Depot        domain.Point
	MaxCapacity  int
	VehicleSpeed float64
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	pointHandler := &handlers.PointHandler{Repo: d.Points}
	planHandler := &handlers.PlanHandler{
		Repo:            d.Points,
		Provider:        d.Provider,
		Cache:           d.Cache,
		Plans:           d.Plans,
		DefaultDepot:    d.Depot,
		DefaultCapacity: d.MaxCapacity,
		DefaultSpeed:    d.VehicleSpeed,
	}

	healthHandler := &handlers.HealthHandler{Ping: d.Ping}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/points", pointHandler.List)
	mux.Handle("/plans", rateLimitMiddleware(d.Limiter, http.HandlerFunc(planHandler.Plan)))
	mux.HandleFunc("/plans/", planHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
