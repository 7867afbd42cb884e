package dto

import "time"

type PlanRequest struct {
	Depot           *CoordDTO  `json:"depot"`
	MaxCapacity     int        `json:"max_capacity"`
	Points          []PointDTO `json:"points"`
	ServeUnassigned bool       `json:"serve_unassigned"`
	VehicleSpeed    float64    `json:"vehicle_speed"`
	DepartAt        *time.Time `json:"depart_at"`
}

type ArrivalResponse struct {
	Point    CoordDTO  `json:"point"`
	ArriveAt time.Time `json:"arrive_at"`
}

type RouteResponse struct {
	RouteID      int               `json:"route_id"`
	Points       []CoordDTO        `json:"points"`
	CapacityUsed int               `json:"capacity_used"`
	NumPoints    int               `json:"num_points"`
	Distance     float64           `json:"distance"`
	ArrivalTime  []ArrivalResponse `json:"arrival_time,omitempty"`
}

type PlanResponse struct {
	PlanID            string          `json:"plan_id"`
	CreatedAt         time.Time       `json:"created_at"`
	Depot             CoordDTO        `json:"depot"`
	MaxCapacity       int             `json:"max_capacity"`
	NumRoutes         int             `json:"num_routes"`
	TotalCapacityUsed int             `json:"total_capacity_used"`
	TotalDistance     float64         `json:"total_distance"`
	Complete          bool            `json:"complete"`
	Unassigned        []PointDTO      `json:"unassigned"`
	Routes            []RouteResponse `json:"routes"`
}
