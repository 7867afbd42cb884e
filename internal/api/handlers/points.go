package handlers

import (
	"log"
	"net/http"
	"savings-route-service/internal/api/dto"
	"savings-route-service/internal/ports"
)

// PointHandler exposes read-only point retrieval endpoints.
type PointHandler struct {
	Repo ports.PointRepository
}

func (h *PointHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	points, err := h.Repo.ListPoints(r.Context())
	if err != nil {
		log.Printf("list points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPointsResponse{
		Points: make([]dto.PointDTO, 0, len(points)),
	}
	for _, p := range points {
		res.Points = append(res.Points, dto.PointDTO{X: p.X, Y: p.Y, Demand: p.Demand})
	}

	writeJSON(w, r, http.StatusOK, res)
}
