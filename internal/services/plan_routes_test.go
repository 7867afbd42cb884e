package services

import (
	"context"
	"errors"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRouteCache struct {
	entries map[string]*domain.Construction
	gets    int
	puts    int
	getErr  error
}

func newFakeRouteCache() *fakeRouteCache {
	return &fakeRouteCache{entries: map[string]*domain.Construction{}}
}

func (f *fakeRouteCache) Get(ctx context.Context, key string) (*domain.Construction, bool, error) {
	f.gets++
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	c, ok := f.entries[key]
	return c, ok, nil
}

func (f *fakeRouteCache) Put(ctx context.Context, key string, c *domain.Construction) error {
	f.puts++
	f.entries[key] = c
	return nil
}

func planRequest() PlanRoutesRequest {
	return PlanRoutesRequest{
		Depot:        domain.Depot(0, 0),
		MaxCapacity:  40,
		VehicleSpeed: 20,
		DepartAt:     time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestPlanRoutesBuildsAndStoresSummary(t *testing.T) {
	ctx := context.Background()
	provider := distance.NewEuclideanDistanceProvider()
	plans := repositories.NewMemoryPlanRepository()

	points := []domain.Point{domain.NewPoint(0, 10, 5), domain.NewPoint(10, 0, 5), domain.NewPoint(5, 5, 50)}

	summary, err := PlanRoutes(ctx, planRequest(), points, provider, nil, plans)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.PlanID)
	assert.Equal(t, 1, summary.NumRoutes)
	assert.Equal(t, 10, summary.TotalCapacityUsed)
	assert.Equal(t, 34.14, summary.TotalDistance)
	assert.Equal(t, []domain.Point{points[2]}, summary.Unassigned)
	assert.False(t, summary.Complete())
	require.Len(t, summary.Routes[0].Arrivals, 2)

	stored, err := plans.GetPlan(ctx, summary.PlanID)
	require.NoError(t, err)
	assert.Equal(t, summary.TotalDistance, stored.TotalDistance)
	assert.Equal(t, summary.Routes[0].Points, stored.Routes[0].Points)
}

func TestPlanRoutesServesLeftovers(t *testing.T) {
	provider := distance.NewEuclideanDistanceProvider()
	req := planRequest()
	req.MaxCapacity = 8
	req.ServeUnassigned = true

	points := []domain.Point{domain.NewPoint(10, 0, 5), domain.NewPoint(0, 10, 5), domain.NewPoint(10, 10, 5)}

	summary, err := PlanRoutes(context.Background(), req, points, provider, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.NumRoutes)
	assert.True(t, summary.Complete())
	for _, r := range summary.Routes {
		assert.Equal(t, 1, r.NumPoints)
		assert.LessOrEqual(t, r.CapacityUsed, 8)
	}
}

func TestPlanRoutesUsesCache(t *testing.T) {
	ctx := context.Background()
	provider := distance.NewEuclideanDistanceProvider()
	cache := newFakeRouteCache()

	points := []domain.Point{domain.NewPoint(10, 0, 1), domain.NewPoint(20, 0, 1), domain.NewPoint(30, 0, 1)}

	first, err := PlanRoutes(ctx, planRequest(), points, provider, cache, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)

	second, err := PlanRoutes(ctx, planRequest(), points, provider, cache, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.puts, "a cache hit must not re-store the construction")

	assert.NotEqual(t, first.PlanID, second.PlanID)
	assert.Equal(t, first.Routes, second.Routes)
}

func TestPlanRoutesIgnoresCacheFailures(t *testing.T) {
	provider := distance.NewEuclideanDistanceProvider()
	cache := newFakeRouteCache()
	cache.getErr = errors.New("redis down")

	summary, err := PlanRoutes(context.Background(), planRequest(),
		[]domain.Point{domain.NewPoint(1, 0, 1), domain.NewPoint(2, 0, 1)}, provider, cache, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NumRoutes)
}

func TestPlanRoutesRejectsInvalidInput(t *testing.T) {
	provider := distance.NewEuclideanDistanceProvider()

	req := planRequest()
	req.MaxCapacity = 0
	_, err := PlanRoutes(context.Background(), req, nil, provider, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = planRequest()
	req.VehicleSpeed = -1
	_, err = PlanRoutes(context.Background(), req, nil, provider, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = PlanRoutes(context.Background(), planRequest(),
		[]domain.Point{domain.NewPoint(1, 1, 1), domain.NewPoint(1, 1, 2)}, provider, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFingerprintDependsOnInputs(t *testing.T) {
	depot := domain.Depot(0, 0)
	a := domain.NewPoint(1, 2, 3)
	b := domain.NewPoint(4, 5, 6)

	base := Fingerprint("euclidean", depot, 40, []domain.Point{a, b})
	assert.Equal(t, base, Fingerprint("euclidean", depot, 40, []domain.Point{a, b}))
	assert.NotEqual(t, base, Fingerprint("euclidean", depot, 40, []domain.Point{b, a}))
	assert.NotEqual(t, base, Fingerprint("euclidean", depot, 41, []domain.Point{a, b}))
	assert.NotEqual(t, base, Fingerprint("mock", depot, 40, []domain.Point{a, b}))
	assert.NotEqual(t, base, Fingerprint("euclidean", domain.Depot(1, 0), 40, []domain.Point{a, b}))
}

func TestPlanRoutesRejectsTooManyPoints(t *testing.T) {
	provider := distance.NewEuclideanDistanceProvider()

	points := make([]domain.Point, 0, MaxPlanPoints+1)
	for i := 0; i <= MaxPlanPoints; i++ {
		points = append(points, domain.NewPoint(i, 0, 1))
	}

	_, err := PlanRoutes(context.Background(), planRequest(), points, provider, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := planRequest()
	req.MaxPoints = 2
	_, err = PlanRoutes(context.Background(), req, points[:3], provider, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = PlanRoutes(context.Background(), req, points[:2], provider, nil, nil)
	assert.NoError(t, err)
}

func TestPlanRoutesCacheSeparatesCostTables(t *testing.T) {
	ctx := context.Background()
	cache := newFakeRouteCache()

	a := domain.NewPoint(10, 0, 5)
	b := domain.NewPoint(0, 10, 5)
	c := domain.NewPoint(-10, 0, 5)
	points := []domain.Point{a, b, c}

	req := planRequest()
	req.MaxCapacity = 10

	plain := distance.NewMockDistanceProvider(nil)
	shortcut := distance.NewMockDistanceProvider([]distance.MockPair{{From: a.Coord(), To: c.Coord(), Cost: 2}})

	first, err := PlanRoutes(ctx, req, points, plain, cache, nil)
	require.NoError(t, err)
	second, err := PlanRoutes(ctx, req, points, shortcut, cache, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.puts, "each table must build its own construction")
	assert.Equal(t, []domain.Coord{a.Coord(), b.Coord()}, first.Routes[0].Points)
	assert.Equal(t, []domain.Coord{a.Coord(), c.Coord()}, second.Routes[0].Points)
}
