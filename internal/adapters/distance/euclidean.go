package distance

import (
	"math"
	"savings-route-service/internal/domain"
)

// EuclideanDistanceProvider is the default straight-line DistanceProvider.
type EuclideanDistanceProvider struct{}

func NewEuclideanDistanceProvider() *EuclideanDistanceProvider {
	return &EuclideanDistanceProvider{}
}

func (EuclideanDistanceProvider) Distance(a, b domain.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func (EuclideanDistanceProvider) Name() string { return "euclidean" }
