package services

import (
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/metrics"
	"savings-route-service/internal/ports"
	"time"
)

type constructAction string

const (
	actionCreate constructAction = "create"
	actionExtend constructAction = "extend"
	actionMerge  constructAction = "merge"
	actionSkip   constructAction = "skip"
)

// Reasons attached to skipped pairs.
const (
	skipInterior  = "interior"
	skipCapacity  = "capacity"
	skipSameRoute = "same_route"
)

// constructStep records one constructor decision. Route is the route created or
// mutated by the step and is nil when the pair was skipped.
type constructStep struct {
	Pair   domain.SavingPair
	Action constructAction
	Reason string
	Route  *domain.Route
}

// ValidateInput rejects input the constructor cannot plan for.
// Empty input is valid. A point whose demand exceeds maxCapacity is valid and
// ends up unassigned.
func ValidateInput(points []domain.Point, maxCapacity int) error {
	if maxCapacity <= 0 {
		return fmt.Errorf("%w: max capacity must be positive, got %d", domain.ErrInvalidInput, maxCapacity)
	}

	seen := make(map[domain.Coord]struct{}, len(points))
	for i, p := range points {
		if p.Demand < 0 {
			return fmt.Errorf("%w: point %d at %s has negative demand %d", domain.ErrInvalidInput, i, p.Coord(), p.Demand)
		}
		if _, ok := seen[p.Coord()]; ok {
			return fmt.Errorf("%w: duplicate point coordinates %s", domain.ErrInvalidInput, p.Coord())
		}
		seen[p.Coord()] = struct{}{}
	}

	return nil
}

// ConstructRoutes builds capacity-feasible routes from the depot with the
// Clarke-Wright savings heuristic.
//
// The ranked savings list is walked once, most-saving pair first, and every
// decision is final. Interior points are never touched again, so routes only
// grow at their ends. Points never reached by a usable pair are returned in
// Construction.Unassigned rather than dropped.
func ConstructRoutes(
	depot domain.Point,
	points []domain.Point,
	maxCapacity int,
	distanceProvider ports.DistanceProvider,
) (*domain.Construction, error) {
	if err := ValidateInput(points, maxCapacity); err != nil {
		return nil, fmt.Errorf("construct routes: %w", err)
	}

	start := time.Now()
	ranked := RankSavings(depot, points, distanceProvider)

	actions := make(map[constructAction]int, 4)
	c := buildRoutes(ranked, points, maxCapacity, func(s constructStep) {
		actions[s.Action]++
	})

	metrics.ConstructionSeconds.Observe(time.Since(start).Seconds())
	metrics.SavingsPairs.Add(float64(len(ranked)))
	for a, n := range actions {
		metrics.ConstructionActions.WithLabelValues(string(a)).Add(float64(n))
	}
	metrics.UnassignedPoints.Add(float64(len(c.Unassigned)))

	return c, nil
}

// buildRoutes runs the constructor over an already ranked savings list.
// onStep, when non-nil, observes every decision in order.
func buildRoutes(
	ranked []domain.SavingPair,
	points []domain.Point,
	maxCapacity int,
	onStep func(constructStep),
) *domain.Construction {
	set := newRouteSet(len(points))

	emit := func(pair domain.SavingPair, action constructAction, reason string, r *domain.Route) {
		if onStep != nil {
			onStep(constructStep{Pair: pair, Action: action, Reason: reason, Route: r})
		}
	}

	for _, pair := range ranked {
		p1, p2 := pair.Point1, pair.Point2

		// Interior points are locked.
		if set.isInterior(p1) || set.isInterior(p2) {
			emit(pair, actionSkip, skipInterior, nil)
			continue
		}

		h1, r1, ok1 := set.lookup(p1)
		h2, r2, ok2 := set.lookup(p2)

		switch {
		case !ok1 && !ok2:
			if p1.Demand+p2.Demand > maxCapacity {
				emit(pair, actionSkip, skipCapacity, nil)
				continue
			}
			r := domain.NewRoute(p1, p2)
			set.add(r)
			emit(pair, actionCreate, "", r)

		case ok1 && !ok2:
			if !r1.CanAccommodate(p2.Demand, maxCapacity) {
				emit(pair, actionSkip, skipCapacity, nil)
				continue
			}
			emit(pair, actionExtend, "", set.extend(h1, p1, p2))

		case !ok1 && ok2:
			if !r2.CanAccommodate(p1.Demand, maxCapacity) {
				emit(pair, actionSkip, skipCapacity, nil)
				continue
			}
			emit(pair, actionExtend, "", set.extend(h2, p2, p1))

		case h1 == h2:
			// Both ends of one route: joining them would close a cycle.
			emit(pair, actionSkip, skipSameRoute, nil)

		default:
			if r1.CapacityUsed+r2.CapacityUsed > maxCapacity {
				emit(pair, actionSkip, skipCapacity, nil)
				continue
			}
			emit(pair, actionMerge, "", set.merge(h1, p1, h2, p2))
		}
	}

	c := &domain.Construction{Routes: set.ordered()}
	for _, p := range points {
		if !set.isAssigned(p) {
			c.Unassigned = append(c.Unassigned, p)
		}
	}

	return c
}

// ServeLeftovers returns a copy of c in which every unassigned point that fits
// the capacity on its own gets a single-point out-and-back route, appended in
// the order the points were left over. Points heavier than maxCapacity stay
// unassigned. c is not modified.
func ServeLeftovers(c *domain.Construction, maxCapacity int) *domain.Construction {
	out := &domain.Construction{Routes: make([]*domain.Route, 0, len(c.Routes)+len(c.Unassigned))}
	for _, r := range c.Routes {
		out.Routes = append(out.Routes, r.Clone())
	}

	for _, p := range c.Unassigned {
		if p.Demand > maxCapacity {
			out.Unassigned = append(out.Unassigned, p)
			continue
		}
		out.Routes = append(out.Routes, domain.NewRoute(p))
	}

	return out
}
