package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/obs"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "cw:construction:"

// RedisRouteCache is a Redis-backed cache of route constructions keyed by an
// input fingerprint. Entries expire after TTL; a zero TTL keeps them forever.
type RedisRouteCache struct {
	rdb *redis.Client
	TTL time.Duration
}

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, TTL: ttl}
}

// NewRedisRouteCacheFromURL parses a redis:// URL and returns a cache over a new client.
func NewRedisRouteCacheFromURL(url string, ttl time.Duration) (*RedisRouteCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("route cache: parse redis url: %w", err)
	}
	return NewRedisRouteCache(redis.NewClient(opt), ttl), nil
}

type cachedPoint struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Demand int `json:"demand"`
}

type cachedConstruction struct {
	Routes     [][]cachedPoint `json:"routes"`
	Unassigned []cachedPoint   `json:"unassigned"`
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ *domain.Construction, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.rdb == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	var cached cachedConstruction
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode: %w", err)
	}

	out := &domain.Construction{Routes: make([]*domain.Route, 0, len(cached.Routes))}
	for _, path := range cached.Routes {
		r := domain.NewRoute()
		for _, p := range path {
			r.AppendPoint(domain.NewPoint(p.X, p.Y, p.Demand))
		}
		out.Routes = append(out.Routes, r)
	}
	for _, p := range cached.Unassigned {
		out.Unassigned = append(out.Unassigned, domain.NewPoint(p.X, p.Y, p.Demand))
	}

	return out, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, construction *domain.Construction) error {
	if c.rdb == nil {
		return errors.New("route cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("put route cache: key must not be empty")
	}
	if construction == nil {
		return errors.New("put route cache: construction must not be nil")
	}

	cached := cachedConstruction{Routes: make([][]cachedPoint, 0, len(construction.Routes))}
	for _, r := range construction.Routes {
		path := make([]cachedPoint, 0, r.Size())
		for _, p := range r.Path {
			path = append(path, cachedPoint{X: p.X, Y: p.Y, Demand: p.Demand})
		}
		cached.Routes = append(cached.Routes, path)
	}
	for _, p := range construction.Unassigned {
		cached.Unassigned = append(cached.Unassigned, cachedPoint{X: p.X, Y: p.Y, Demand: p.Demand})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("put route cache: encode: %w", err)
	}

	if err := c.rdb.Set(ctx, keyPrefix+key, data, c.TTL).Err(); err != nil {
		return fmt.Errorf("put route cache key=%q: %w", key, err)
	}

	return nil
}

// Ping verifies the Redis connection.
func (c *RedisRouteCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("route cache: ping: %w", err)
	}
	return nil
}

func (c *RedisRouteCache) Close() error { return c.rdb.Close() }
