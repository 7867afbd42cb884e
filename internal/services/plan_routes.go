package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/metrics"
	"savings-route-service/internal/platform/obs"
	"savings-route-service/internal/ports"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPlanPoints bounds the points of one plan. Ranking holds one pair for
// every two points, so memory grows with the square of the point count.
const MaxPlanPoints = 1000

type PlanRoutesRequest struct {
	Depot           domain.Point
	MaxCapacity     int
	ServeUnassigned bool
	VehicleSpeed    float64
	DepartAt        time.Time
	// MaxPoints overrides MaxPlanPoints when positive.
	MaxPoints int
}

// PlanRoutes constructs routes for points and returns the stored summary.
//
// cache and plans are optional. Cache failures are logged and planning
// continues without the cache; a failure to persist the plan is returned.
func PlanRoutes(
	ctx context.Context,
	req PlanRoutesRequest,
	points []domain.Point,
	provider ports.DistanceProvider,
	cache ports.RouteCache,
	plans ports.PlanRepository,
) (_ *domain.PlanSummary, err error) {
	defer obs.Time(ctx, "services.PlanRoutes")(&err)

	if provider == nil {
		return nil, errors.New("plan routes: distance provider must be non-nil")
	}

	speed := req.VehicleSpeed
	if speed == 0 {
		speed = DefaultVehicleSpeed
	}
	if speed < 0 {
		metrics.PlansTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("plan routes: %w: vehicle speed must be positive, got %g", domain.ErrInvalidInput, speed)
	}

	limit := req.MaxPoints
	if limit <= 0 {
		limit = MaxPlanPoints
	}
	if len(points) > limit {
		metrics.PlansTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("plan routes: %w: %d points exceeds the limit of %d", domain.ErrInvalidInput, len(points), limit)
	}

	if err := ValidateInput(points, req.MaxCapacity); err != nil {
		metrics.PlansTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("plan routes: %w", err)
	}

	outcome := "ok"
	key := Fingerprint(provider.Name(), req.Depot, req.MaxCapacity, points)

	var construction *domain.Construction
	if cache != nil {
		cached, ok, cerr := cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("req_id=%s op=route.cache.Get key=%s err=%v", obs.RequestID(ctx), key, cerr)
		} else if ok {
			construction = cached
			outcome = "cached"
		}
	}

	if construction == nil {
		construction, err = ConstructRoutes(req.Depot, points, req.MaxCapacity, provider)
		if err != nil {
			metrics.PlansTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("plan routes: %w", err)
		}

		if cache != nil {
			if perr := cache.Put(ctx, key, construction); perr != nil {
				log.Printf("req_id=%s op=route.cache.Put key=%s err=%v", obs.RequestID(ctx), key, perr)
			}
		}
	}

	if req.ServeUnassigned {
		construction = ServeLeftovers(construction, req.MaxCapacity)
	}

	if !ValidateRoutes(construction.Routes, req.MaxCapacity) {
		metrics.PlansTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("plan routes: constructed routes exceed capacity %d", req.MaxCapacity)
	}

	departAt := req.DepartAt
	if departAt.IsZero() {
		departAt = time.Now()
	}

	summary, err := Summarize(construction.Routes, req.Depot, provider, SummaryOptions{
		MaxCapacity:     req.MaxCapacity,
		Unassigned:      construction.Unassigned,
		IncludeArrivals: true,
		VehicleSpeed:    speed,
		DepartAt:        departAt,
	})
	if err != nil {
		metrics.PlansTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("plan routes: summarize: %w", err)
	}

	summary.PlanID = uuid.New().String()
	summary.CreatedAt = time.Now().UTC()

	if len(summary.Unassigned) > 0 {
		log.Printf("req_id=%s op=services.PlanRoutes plan_id=%s unassigned=%d", obs.RequestID(ctx), summary.PlanID, len(summary.Unassigned))
	}

	if plans != nil {
		if err := plans.SavePlan(ctx, summary); err != nil {
			metrics.PlansTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("plan routes: save plan %s: %w", summary.PlanID, err)
		}
	}

	metrics.PlansTotal.WithLabelValues(outcome).Inc()
	return summary, nil
}

// Fingerprint keys a construction by everything that determines it: the
// distance provider, the depot, the capacity and the ordered points.
// providerName must identify the distance function, not just its kind; see
// ports.DistanceProvider.
func Fingerprint(providerName string, depot domain.Point, maxCapacity int, points []domain.Point) string {
	var b strings.Builder
	b.WriteString(providerName)
	b.WriteString("|")
	b.WriteString(strconv.Itoa(depot.X) + "," + strconv.Itoa(depot.Y))
	b.WriteString("|")
	b.WriteString(strconv.Itoa(maxCapacity))
	for _, p := range points {
		b.WriteString("|")
		b.WriteString(strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + "," + strconv.Itoa(p.Demand))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
