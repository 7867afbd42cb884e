package services

import (
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/ports"
	"time"
)

// DefaultVehicleSpeed is the vehicle speed in distance units per minute.
const DefaultVehicleSpeed = 20.0

// EstimateArrivals walks the route from the depot and returns the arrival time
// at each point in path order. Each leg takes distance/speed minutes, added
// cumulatively to startAt.
func EstimateArrivals(
	route *domain.Route,
	depot domain.Point,
	distanceProvider ports.DistanceProvider,
	speed float64,
	startAt time.Time,
) ([]domain.Arrival, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("estimate arrivals: %w: vehicle speed must be positive, got %g", domain.ErrInvalidInput, speed)
	}

	arrivals := make([]domain.Arrival, 0, route.Size())
	prev := depot
	minutes := 0.0
	for _, p := range route.Path {
		minutes += distanceProvider.Distance(prev, p) / speed
		arrivals = append(arrivals, domain.Arrival{
			Point:    p.Coord(),
			ArriveAt: startAt.Add(time.Duration(minutes * float64(time.Minute))),
		})
		prev = p
	}

	return arrivals, nil
}
