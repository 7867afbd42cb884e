package domain

import "fmt"

// Coord is the planar coordinate pair that identifies a Point.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

// Point is an immutable delivery location with the demand it places on a vehicle.
// Identity is the coordinate pair: two points at the same coordinates are the
// same point even when their demand differs. Maps and sets key on Coord.
type Point struct {
	X      int
	Y      int
	Demand int
}

func NewPoint(x, y, demand int) Point {
	return Point{X: x, Y: y, Demand: demand}
}

// Depot returns a demand-free point at the given coordinates.
func Depot(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Coord() Coord { return Coord{X: p.X, Y: p.Y} }

// Equal reports coordinate equality; demand is ignored.
func (p Point) Equal(other Point) bool { return p.X == other.X && p.Y == other.Y }

func (p Point) String() string {
	return fmt.Sprintf("Point(%d, %d, demand=%d)", p.X, p.Y, p.Demand)
}
