package ports

import "savings-route-service/internal/domain"

// Contract for the travel cost between two points.
// Implementations must be symmetric, non-negative and zero only for equal points.
type DistanceProvider interface {
	// Return the travel cost between a and b.
	Distance(a, b domain.Point) float64
	// Stable identifier used to key cached constructions. Providers that can
	// return different costs for the same points must return different names.
	Name() string
}
