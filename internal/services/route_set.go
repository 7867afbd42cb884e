package services

import (
	"savings-route-service/internal/domain"
	"slices"
)

// routeHandle identifies a route inside a routeSet. Handles are never reused,
// so a merged route always sorts after the routes it replaced.
type routeHandle int

// routeSet is the constructor's working collection of routes.
// owner maps every assigned point to the handle of the route holding it; it is
// updated on each mutation so edge and interior checks are O(1).
type routeSet struct {
	next   routeHandle
	routes map[routeHandle]*domain.Route
	owner  map[domain.Coord]routeHandle
}

func newRouteSet(pointCount int) *routeSet {
	return &routeSet{
		routes: make(map[routeHandle]*domain.Route, pointCount/2+1),
		owner:  make(map[domain.Coord]routeHandle, pointCount),
	}
}

func (s *routeSet) add(r *domain.Route) routeHandle {
	h := s.next
	s.next++

	s.routes[h] = r
	for _, p := range r.Path {
		s.owner[p.Coord()] = h
	}
	return h
}

func (s *routeSet) lookup(p domain.Point) (routeHandle, *domain.Route, bool) {
	h, ok := s.owner[p.Coord()]
	if !ok {
		return 0, nil, false
	}
	return h, s.routes[h], true
}

func (s *routeSet) isAssigned(p domain.Point) bool {
	_, ok := s.owner[p.Coord()]
	return ok
}

// isInterior reports whether p sits strictly inside its route.
// An assigned point that is neither start nor end is interior.
func (s *routeSet) isInterior(p domain.Point) bool {
	_, r, ok := s.lookup(p)
	return ok && !r.IsEdge(p)
}

// extend places p next to the edge point of route h.
func (s *routeSet) extend(h routeHandle, edge, p domain.Point) *domain.Route {
	r := s.routes[h]
	if r.IsStart(edge) {
		r.PrependPoint(p)
	} else {
		r.AppendPoint(p)
	}
	s.owner[p.Coord()] = h
	return r
}

// merge replaces routes a and b with their join through connectors p1 and p2.
func (s *routeSet) merge(a routeHandle, p1 domain.Point, b routeHandle, p2 domain.Point) *domain.Route {
	joined := joinRoutes(s.routes[a], p1, s.routes[b], p2)
	delete(s.routes, a)
	delete(s.routes, b)
	s.add(joined)
	return joined
}

// ordered returns the routes by handle: surviving routes in creation order,
// each merge result placed where it was created.
func (s *routeSet) ordered() []*domain.Route {
	handles := make([]routeHandle, 0, len(s.routes))
	for h := range s.routes {
		handles = append(handles, h)
	}
	slices.Sort(handles)

	out := make([]*domain.Route, 0, len(handles))
	for _, h := range handles {
		out = append(out, s.routes[h])
	}
	return out
}

// joinRoutes concatenates a and b so that connector p1 of a and connector p2 of b
// become adjacent. A connector counts as the start when it is the first point.
//
//	start-start: reverse(a) + b
//	start-end:   b + a
//	end-start:   a + b
//	end-end:     a + reverse(b)
func joinRoutes(a *domain.Route, p1 domain.Point, b *domain.Route, p2 domain.Point) *domain.Route {
	aStart := a.IsStart(p1)
	bStart := b.IsStart(p2)

	var first, second []domain.Point
	switch {
	case aStart && bStart:
		first, second = a.Reversed().Path, b.Path
	case aStart:
		first, second = b.Path, a.Path
	case bStart:
		first, second = a.Path, b.Path
	default:
		first, second = a.Path, b.Reversed().Path
	}

	path := make([]domain.Point, 0, len(first)+len(second))
	path = append(path, first...)
	path = append(path, second...)

	return &domain.Route{Path: path, CapacityUsed: a.CapacityUsed + b.CapacityUsed}
}
