package ports

import (
	"context"
	"savings-route-service/internal/domain"
)

// Optional cache of constructions keyed by an input fingerprint.
type RouteCache interface {
	// ok is false on a cache miss.
	Get(ctx context.Context, key string) (c *domain.Construction, ok bool, err error)
	Put(ctx context.Context, key string, c *domain.Construction) error
}
