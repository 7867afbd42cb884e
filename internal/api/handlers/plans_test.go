package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/api/dto"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/services"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPointRepository struct {
	points []domain.Point
	err    error
}

func (s stubPointRepository) ListPoints(ctx context.Context) ([]domain.Point, error) {
	return s.points, s.err
}

func newPlanHandler(repo stubPointRepository) *PlanHandler {
	return &PlanHandler{
		Repo:            repo,
		Provider:        distance.NewEuclideanDistanceProvider(),
		Plans:           repositories.NewMemoryPlanRepository(),
		DefaultDepot:    domain.Depot(0, 0),
		DefaultCapacity: 40,
		DefaultSpeed:    20,
	}
}

func postPlan(t *testing.T, h *PlanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanWithInlinePoints(t *testing.T) {
	h := newPlanHandler(stubPointRepository{})

	rec := postPlan(t, h, `{
		"depot": {"x": 0, "y": 0},
		"max_capacity": 40,
		"points": [{"x": 0, "y": 10, "demand": 5}, {"x": 10, "y": 0, "demand": 5}],
		"depart_at": "2026-01-01T08:00:00Z"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))

	assert.NotEmpty(t, res.PlanID)
	assert.Equal(t, 1, res.NumRoutes)
	assert.Equal(t, 10, res.TotalCapacityUsed)
	assert.Equal(t, 34.14, res.TotalDistance)
	assert.True(t, res.Complete)
	assert.Empty(t, res.Unassigned)
	require.Len(t, res.Routes, 1)
	assert.Equal(t, 2, res.Routes[0].NumPoints)
	require.Len(t, res.Routes[0].ArrivalTime, 2)
	assert.True(t, res.Routes[0].ArrivalTime[0].ArriveAt.Before(res.Routes[0].ArrivalTime[1].ArriveAt))
}

func TestPlanFallsBackToRepositoryPoints(t *testing.T) {
	h := newPlanHandler(stubPointRepository{points: []domain.Point{
		domain.NewPoint(10, 0, 5),
		domain.NewPoint(20, 0, 5),
		domain.NewPoint(3, 3, 99),
	}})

	rec := postPlan(t, h, `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 40, res.MaxCapacity)
	assert.False(t, res.Complete)
	assert.Equal(t, []dto.PointDTO{{X: 3, Y: 3, Demand: 99}}, res.Unassigned)
}

func TestPlanRejectsBadRequests(t *testing.T) {
	h := newPlanHandler(stubPointRepository{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"max_capacity":`},
		{"unknown field", `{"hub": "x"}`},
		{"two objects", `{} {}`},
		{"negative capacity", `{"max_capacity": -1, "points": [{"x": 1, "y": 1, "demand": 1}]}`},
		{"negative speed", `{"vehicle_speed": -5, "points": [{"x": 1, "y": 1, "demand": 1}]}`},
		{"negative demand", `{"points": [{"x": 1, "y": 1, "demand": -1}]}`},
		{"duplicate points", `{"points": [{"x": 1, "y": 1, "demand": 1}, {"x": 1, "y": 1, "demand": 2}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postPlan(t, h, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPlanRepositoryFailureIsInternalError(t *testing.T) {
	h := newPlanHandler(stubPointRepository{err: errors.New("db down")})

	rec := postPlan(t, h, `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestPlanMethodNotAllowed(t *testing.T) {
	h := newPlanHandler(stubPointRepository{})

	rec := httptest.NewRecorder()
	h.Plan(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestGetReturnsStoredPlan(t *testing.T) {
	h := newPlanHandler(stubPointRepository{})

	rec := postPlan(t, h, `{"points": [{"x": 10, "y": 0, "demand": 5}, {"x": 20, "y": 0, "demand": 5}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/plans/"+created.PlanID, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, created.PlanID, got.PlanID)
	assert.Equal(t, created.TotalDistance, got.TotalDistance)
	assert.Equal(t, created.Routes[0].Points, got.Routes[0].Points)
}

func TestGetUnknownPlan(t *testing.T) {
	h := newPlanHandler(stubPointRepository{})

	for _, path := range []string{"/plans/does-not-exist", "/plans/", "/plans/a/b"} {
		rec := httptest.NewRecorder()
		h.Get(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func manyPointsJSON(n int) string {
	var b strings.Builder
	b.WriteString(`{"points": [`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"x": %d, "y": 0, "demand": 1}`, i)
	}
	b.WriteString(`]}`)
	return b.String()
}

func TestPlanRejectsTooManyInlinePoints(t *testing.T) {
	h := newPlanHandler(stubPointRepository{})

	rec := postPlan(t, h, manyPointsJSON(services.MaxPlanPoints+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many points")
}

func TestPlanRejectsTooManyRepositoryPoints(t *testing.T) {
	points := make([]domain.Point, 0, services.MaxPlanPoints+1)
	for i := 0; i <= services.MaxPlanPoints; i++ {
		points = append(points, domain.NewPoint(i, 0, 1))
	}
	h := newPlanHandler(stubPointRepository{points: points})

	rec := postPlan(t, h, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many points")
}

func TestPlanEmptyPointListDoesNotUseRepository(t *testing.T) {
	h := newPlanHandler(stubPointRepository{points: []domain.Point{domain.NewPoint(10, 0, 5)}})

	rec := postPlan(t, h, `{"points": []}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 0, res.NumRoutes)
	assert.Empty(t, res.Routes)
	assert.Equal(t, 0.0, res.TotalDistance)
	assert.True(t, res.Complete)
}
