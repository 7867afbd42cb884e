package services

import (
	"math"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/ports"
	"time"
)

// RouteDistance is the length of the closed tour depot -> path... -> depot.
// Empty routes have zero length.
func RouteDistance(depot domain.Point, route *domain.Route, distanceProvider ports.DistanceProvider) float64 {
	if route == nil || route.IsEmpty() {
		return 0
	}

	total := distanceProvider.Distance(depot, route.Path[0])
	for i := 0; i < len(route.Path)-1; i++ {
		total += distanceProvider.Distance(route.Path[i], route.Path[i+1])
	}
	total += distanceProvider.Distance(route.Path[len(route.Path)-1], depot)

	return total
}

// TotalDistance sums RouteDistance over all routes.
func TotalDistance(depot domain.Point, routes []*domain.Route, distanceProvider ports.DistanceProvider) float64 {
	total := 0.0
	for _, r := range routes {
		total += RouteDistance(depot, r, distanceProvider)
	}
	return total
}

// ValidateRoutes reports whether every route stays within maxCapacity.
func ValidateRoutes(routes []*domain.Route, maxCapacity int) bool {
	for _, r := range routes {
		if r.CapacityUsed > maxCapacity {
			return false
		}
	}
	return true
}

// SummaryOptions controls what Summarize adds beyond route totals.
type SummaryOptions struct {
	MaxCapacity int
	Unassigned  []domain.Point
	// Arrival estimates are attached when IncludeArrivals is set.
	IncludeArrivals bool
	VehicleSpeed    float64
	DepartAt        time.Time
}

// Summarize builds the route-by-route report. It reads routes without
// modifying them, so repeated calls yield the same summary.
// Distances are rounded half away from zero to two decimal places.
func Summarize(
	routes []*domain.Route,
	depot domain.Point,
	distanceProvider ports.DistanceProvider,
	opts SummaryOptions,
) (*domain.PlanSummary, error) {
	summary := &domain.PlanSummary{
		Depot:       depot.Coord(),
		MaxCapacity: opts.MaxCapacity,
		NumRoutes:   len(routes),
		Routes:      make([]domain.RouteSummary, 0, len(routes)),
		Unassigned:  append([]domain.Point(nil), opts.Unassigned...),
	}

	total := 0.0
	for i, r := range routes {
		d := RouteDistance(depot, r, distanceProvider)
		total += d
		summary.TotalCapacityUsed += r.CapacityUsed

		rs := domain.RouteSummary{
			RouteID:      i,
			Points:       r.Coords(),
			CapacityUsed: r.CapacityUsed,
			NumPoints:    r.Size(),
			Distance:     roundTo(d, 2),
		}

		if opts.IncludeArrivals {
			arrivals, err := EstimateArrivals(r, depot, distanceProvider, opts.VehicleSpeed, opts.DepartAt)
			if err != nil {
				return nil, err
			}
			rs.Arrivals = arrivals
		}

		summary.Routes = append(summary.Routes, rs)
	}
	summary.TotalDistance = roundTo(total, 2)

	return summary, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
