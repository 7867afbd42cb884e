package domain

// SavingPair is an unordered pair of distinct points with the distance saved by
// serving both on one route instead of two depot round trips.
type SavingPair struct {
	Point1 Point
	Point2 Point
	Saving float64
}

func (s SavingPair) Contains(p Point) bool {
	return s.Point1.Equal(p) || s.Point2.Equal(p)
}

// Other returns the partner of p in the pair. ok is false when p is not a member.
func (s SavingPair) Other(p Point) (other Point, ok bool) {
	switch {
	case s.Point1.Equal(p):
		return s.Point2, true
	case s.Point2.Equal(p):
		return s.Point1, true
	}
	return Point{}, false
}
