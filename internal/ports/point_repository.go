package ports

import (
	"context"
	"savings-route-service/internal/domain"
)

// Port: a boundary for retrieving delivery points from a data source.
type PointRepository interface {
	// Retrieve all delivery points in a stable order.
	ListPoints(ctx context.Context) ([]domain.Point, error)
}
