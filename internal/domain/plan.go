package domain

import "time"

// Arrival is the estimated time a vehicle reaches one stop of a route.
type Arrival struct {
	Point    Coord
	ArriveAt time.Time
}

// RouteSummary describes one finished route.
type RouteSummary struct {
	RouteID      int
	Points       []Coord
	CapacityUsed int
	NumPoints    int
	Distance     float64
	Arrivals     []Arrival
}

// PlanSummary is the read-only report produced for a set of finished routes.
// TotalDistance and per-route Distance are rounded to two decimal places.
type PlanSummary struct {
	PlanID            string
	CreatedAt         time.Time
	Depot             Coord
	MaxCapacity       int
	NumRoutes         int
	TotalCapacityUsed int
	TotalDistance     float64
	Routes            []RouteSummary
	Unassigned        []Point
}

// Complete reports whether the plan serves every requested point.
func (s *PlanSummary) Complete() bool { return len(s.Unassigned) == 0 }
