package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"savings-route-service/internal/api/dto"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/ports"
	"savings-route-service/internal/services"
	"strings"
	"time"
)

const maxPlanBodyBytes = 4 << 20

type PlanHandler struct {
	Repo     ports.PointRepository
	Provider ports.DistanceProvider
	Cache    ports.RouteCache
	Plans    ports.PlanRepository

	DefaultDepot    domain.Point
	DefaultCapacity int
	DefaultSpeed    float64
}

// Plan builds routes for the requested points, or for the configured point
// source when the request carries none, and returns the stored summary.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	depot := h.DefaultDepot
	if req.Depot != nil {
		depot = domain.Depot(req.Depot.X, req.Depot.Y)
	}

	capacity := req.MaxCapacity
	if capacity == 0 {
		capacity = h.DefaultCapacity
	}
	if capacity < 1 {
		writeError(w, r, http.StatusBadRequest, "max_capacity must be positive")
		return
	}

	speed := req.VehicleSpeed
	if speed == 0 {
		speed = h.DefaultSpeed
	}
	if speed < 0 {
		writeError(w, r, http.StatusBadRequest, "vehicle_speed must be positive")
		return
	}

	if len(req.Points) > services.MaxPlanPoints {
		writeError(w, r, http.StatusBadRequest, "too many points")
		return
	}

	// Only an absent points field falls back to the point source; an empty
	// list plans zero points.
	var points []domain.Point
	if req.Points != nil {
		points = make([]domain.Point, 0, len(req.Points))
		for _, p := range req.Points {
			points = append(points, domain.NewPoint(p.X, p.Y, p.Demand))
		}
	} else {
		if h.Repo == nil {
			writeError(w, r, http.StatusBadRequest, "points are required")
			return
		}
		var err error
		points, err = h.Repo.ListPoints(r.Context())
		if err != nil {
			log.Printf("list points failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		if len(points) > services.MaxPlanPoints {
			writeError(w, r, http.StatusBadRequest, "too many points")
			return
		}
	}

	depart := time.Now()
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	svcReq := services.PlanRoutesRequest{
		Depot:           depot,
		MaxCapacity:     capacity,
		ServeUnassigned: req.ServeUnassigned,
		VehicleSpeed:    speed,
		DepartAt:        depart,
	}

	summary, err := services.PlanRoutes(r.Context(), svcReq, points, h.Provider, h.Cache, h.Plans)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("plan routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(summary))
}

// Get returns a stored plan summary by id: GET /plans/{id}.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/plans/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}

	if h.Plans == nil {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}

	summary, err := h.Plans.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			writeError(w, r, http.StatusNotFound, "plan not found")
			return
		}
		log.Printf("get plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(summary))
}

func toPlanResponse(s *domain.PlanSummary) dto.PlanResponse {
	res := dto.PlanResponse{
		PlanID:            s.PlanID,
		CreatedAt:         s.CreatedAt,
		Depot:             dto.CoordDTO{X: s.Depot.X, Y: s.Depot.Y},
		MaxCapacity:       s.MaxCapacity,
		NumRoutes:         s.NumRoutes,
		TotalCapacityUsed: s.TotalCapacityUsed,
		TotalDistance:     s.TotalDistance,
		Complete:          s.Complete(),
		Unassigned:        make([]dto.PointDTO, 0, len(s.Unassigned)),
		Routes:            make([]dto.RouteResponse, 0, len(s.Routes)),
	}

	for _, p := range s.Unassigned {
		res.Unassigned = append(res.Unassigned, dto.PointDTO{X: p.X, Y: p.Y, Demand: p.Demand})
	}

	for _, rs := range s.Routes {
		route := dto.RouteResponse{
			RouteID:      rs.RouteID,
			Points:       make([]dto.CoordDTO, 0, len(rs.Points)),
			CapacityUsed: rs.CapacityUsed,
			NumPoints:    rs.NumPoints,
			Distance:     rs.Distance,
		}
		for _, c := range rs.Points {
			route.Points = append(route.Points, dto.CoordDTO{X: c.X, Y: c.Y})
		}
		for _, a := range rs.Arrivals {
			route.ArrivalTime = append(route.ArrivalTime, dto.ArrivalResponse{
				Point:    dto.CoordDTO{X: a.Point.X, Y: a.Point.Y},
				ArriveAt: a.ArriveAt,
			})
		}
		res.Routes = append(res.Routes, route)
	}

	return res
}
