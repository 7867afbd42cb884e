package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	PointsCSV      string
	DepotX         int
	DepotY         int
	MaxCapacity    int
	VehicleSpeed   float64
	RedisURL       string
	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from the environment, applying defaults for
// unset keys. Set keys that fail to parse are reported.
func Load() (Config, error) {
	var err error
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		PointsCSV:   Get("POINTS_CSV", "data/locations.csv"),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
	}

	if cfg.DepotX, err = GetInt("DEPOT_X", 0); err != nil {
		return Config{}, err
	}
	if cfg.DepotY, err = GetInt("DEPOT_Y", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxCapacity, err = GetInt("MAX_CAPACITY", 40); err != nil {
		return Config{}, err
	}
	if cfg.VehicleSpeed, err = GetFloat("VEHICLE_SPEED", 20); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = GetDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = GetFloat("RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = GetInt("RATE_LIMIT_BURST", 10); err != nil {
		return Config{}, err
	}

	if cfg.MaxCapacity <= 0 {
		return Config{}, fmt.Errorf("config: MAX_CAPACITY must be positive, got %d", cfg.MaxCapacity)
	}
	if cfg.VehicleSpeed <= 0 {
		return Config{}, fmt.Errorf("config: VEHICLE_SPEED must be positive, got %g", cfg.VehicleSpeed)
	}

	return cfg, nil
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
