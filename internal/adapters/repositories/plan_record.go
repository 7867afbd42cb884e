package repositories

import (
	"savings-route-service/internal/domain"
	"time"
)

// planRecord is the JSON document stored for a plan summary.
type planRecord struct {
	PlanID            string        `json:"plan_id"`
	CreatedAt         time.Time     `json:"created_at"`
	Depot             domain.Coord  `json:"depot"`
	MaxCapacity       int           `json:"max_capacity"`
	NumRoutes         int           `json:"num_routes"`
	TotalCapacityUsed int           `json:"total_capacity_used"`
	TotalDistance     float64       `json:"total_distance"`
	Routes            []routeRecord `json:"routes"`
	Unassigned        []pointRecord `json:"unassigned"`
}

type routeRecord struct {
	RouteID      int             `json:"route_id"`
	Points       []domain.Coord  `json:"points"`
	CapacityUsed int             `json:"capacity_used"`
	NumPoints    int             `json:"num_points"`
	Distance     float64         `json:"distance"`
	Arrivals     []arrivalRecord `json:"arrivals,omitempty"`
}

type arrivalRecord struct {
	Point    domain.Coord `json:"point"`
	ArriveAt time.Time    `json:"arrive_at"`
}

type pointRecord struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Demand int `json:"demand"`
}

func toPlanRecord(s *domain.PlanSummary) planRecord {
	rec := planRecord{
		PlanID:            s.PlanID,
		CreatedAt:         s.CreatedAt,
		Depot:             s.Depot,
		MaxCapacity:       s.MaxCapacity,
		NumRoutes:         s.NumRoutes,
		TotalCapacityUsed: s.TotalCapacityUsed,
		TotalDistance:     s.TotalDistance,
		Routes:            make([]routeRecord, 0, len(s.Routes)),
		Unassigned:        make([]pointRecord, 0, len(s.Unassigned)),
	}

	for _, r := range s.Routes {
		rr := routeRecord{
			RouteID:      r.RouteID,
			Points:       append([]domain.Coord(nil), r.Points...),
			CapacityUsed: r.CapacityUsed,
			NumPoints:    r.NumPoints,
			Distance:     r.Distance,
		}
		for _, a := range r.Arrivals {
			rr.Arrivals = append(rr.Arrivals, arrivalRecord{Point: a.Point, ArriveAt: a.ArriveAt})
		}
		rec.Routes = append(rec.Routes, rr)
	}

	for _, p := range s.Unassigned {
		rec.Unassigned = append(rec.Unassigned, pointRecord{X: p.X, Y: p.Y, Demand: p.Demand})
	}

	return rec
}

func (rec planRecord) toDomain() *domain.PlanSummary {
	s := &domain.PlanSummary{
		PlanID:            rec.PlanID,
		CreatedAt:         rec.CreatedAt,
		Depot:             rec.Depot,
		MaxCapacity:       rec.MaxCapacity,
		NumRoutes:         rec.NumRoutes,
		TotalCapacityUsed: rec.TotalCapacityUsed,
		TotalDistance:     rec.TotalDistance,
		Routes:            make([]domain.RouteSummary, 0, len(rec.Routes)),
	}

	for _, rr := range rec.Routes {
		r := domain.RouteSummary{
			RouteID:      rr.RouteID,
			Points:       append([]domain.Coord(nil), rr.Points...),
			CapacityUsed: rr.CapacityUsed,
			NumPoints:    rr.NumPoints,
			Distance:     rr.Distance,
		}
		for _, a := range rr.Arrivals {
			r.Arrivals = append(r.Arrivals, domain.Arrival{Point: a.Point, ArriveAt: a.ArriveAt})
		}
		s.Routes = append(s.Routes, r)
	}

	for _, p := range rec.Unassigned {
		s.Unassigned = append(s.Unassigned, domain.NewPoint(p.X, p.Y, p.Demand))
	}

	return s
}
