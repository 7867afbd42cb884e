package domain

// Route is one vehicle's visiting order. The depot is implicit at both ends and
// is never stored in Path. CapacityUsed always equals the summed demand of Path;
// keeping it within the vehicle capacity is the caller's job.
type Route struct {
	Path         []Point
	CapacityUsed int
}

// NewRoute builds a route over the given points in order.
func NewRoute(points ...Point) *Route {
	r := &Route{Path: make([]Point, 0, len(points))}
	for _, p := range points {
		r.AppendPoint(p)
	}
	return r
}

func (r *Route) Size() int { return len(r.Path) }

func (r *Route) IsEmpty() bool { return len(r.Path) == 0 }

func (r *Route) Start() (Point, bool) {
	if len(r.Path) == 0 {
		return Point{}, false
	}
	return r.Path[0], true
}

func (r *Route) End() (Point, bool) {
	if len(r.Path) == 0 {
		return Point{}, false
	}
	return r.Path[len(r.Path)-1], true
}

// EdgePoints returns the first and last points. Routes with fewer than two
// points return their only points (possibly none).
func (r *Route) EdgePoints() []Point {
	if len(r.Path) <= 1 {
		return append([]Point(nil), r.Path...)
	}
	return []Point{r.Path[0], r.Path[len(r.Path)-1]}
}

// InteriorPoints returns every point strictly between the first and last.
func (r *Route) InteriorPoints() []Point {
	if len(r.Path) <= 2 {
		return nil
	}
	return append([]Point(nil), r.Path[1:len(r.Path)-1]...)
}

func (r *Route) IsStart(p Point) bool {
	return len(r.Path) > 0 && r.Path[0].Equal(p)
}

func (r *Route) IsEnd(p Point) bool {
	return len(r.Path) > 0 && r.Path[len(r.Path)-1].Equal(p)
}

func (r *Route) IsEdge(p Point) bool { return r.IsStart(p) || r.IsEnd(p) }

func (r *Route) IsInterior(p Point) bool {
	if len(r.Path) <= 2 || r.IsEdge(p) {
		return false
	}
	for _, q := range r.Path[1 : len(r.Path)-1] {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

func (r *Route) Contains(p Point) bool {
	for _, q := range r.Path {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// CanAccommodate reports whether additional demand still fits under maxCapacity.
func (r *Route) CanAccommodate(demand, maxCapacity int) bool {
	return r.CapacityUsed+demand <= maxCapacity
}

func (r *Route) PrependPoint(p Point) {
	r.Path = append([]Point{p}, r.Path...)
	r.CapacityUsed += p.Demand
}

func (r *Route) AppendPoint(p Point) {
	r.Path = append(r.Path, p)
	r.CapacityUsed += p.Demand
}

// Reversed returns a copy of the route visited in the opposite direction.
func (r *Route) Reversed() *Route {
	out := &Route{Path: make([]Point, len(r.Path)), CapacityUsed: r.CapacityUsed}
	for i, p := range r.Path {
		out.Path[len(r.Path)-1-i] = p
	}
	return out
}

func (r *Route) Clone() *Route {
	return &Route{Path: append([]Point(nil), r.Path...), CapacityUsed: r.CapacityUsed}
}

func (r *Route) Coords() []Coord {
	out := make([]Coord, 0, len(r.Path))
	for _, p := range r.Path {
		out = append(out, p.Coord())
	}
	return out
}

// Construction is the outcome of one route-construction run.
// Unassigned lists, in input order, every point left off all routes.
type Construction struct {
	Routes     []*Route
	Unassigned []Point
}

// Complete reports whether every input point was placed on a route.
func (c *Construction) Complete() bool { return len(c.Unassigned) == 0 }
