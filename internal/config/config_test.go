package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "POINTS_CSV", "DEPOT_X", "DEPOT_Y", "MAX_CAPACITY",
		"VEHICLE_SPEED", "REDIS_URL", "CACHE_TTL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/locations.csv", cfg.PointsCSV)
	assert.Equal(t, 40, cfg.MaxCapacity)
	assert.Equal(t, 20.0, cfg.VehicleSpeed)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEPOT_X", "-5")
	t.Setenv("DEPOT_Y", "7")
	t.Setenv("MAX_CAPACITY", "25")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_URL", " redis://localhost:6379/0 ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, -5, cfg.DepotX)
	assert.Equal(t, 7, cfg.DepotY)
	assert.Equal(t, 25, cfg.MaxCapacity)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_CAPACITY", "lots")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAX_CAPACITY", "0")
	_, err = Load()
	assert.Error(t, err)
}
