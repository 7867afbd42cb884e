package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"savings-route-service/internal/adapters/cache"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/api"
	"savings-route-service/internal/config"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/metrics"
	"savings-route-service/internal/platform/db"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or CSV, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.RegisterDefault()

	deps := api.Deps{
		Provider:     distance.NewEuclideanDistanceProvider(),
		Depot:        domain.Depot(cfg.DepotX, cfg.DepotY),
		MaxCapacity:  cfg.MaxCapacity,
		VehicleSpeed: cfg.VehicleSpeed,
	}

	if cfg.RateLimitRPS > 0 {
		deps.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	// Postgres backs both points and plans when configured; otherwise points
	// come from the CSV file and plans live in memory.
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}

		deps.Points = repositories.NewSQLPointRepository(conn)
		deps.Plans = repositories.NewSQLPlanRepository(conn)
		deps.Ping = conn.PingContext
		log.Printf("Using postgres point and plan store")
	} else {
		deps.Points = repositories.NewCSVPointRepository(cfg.PointsCSV)
		deps.Plans = repositories.NewMemoryPlanRepository()
		log.Printf("Using csv points path=%s with in-memory plans", cfg.PointsCSV)
	}

	if cfg.RedisURL != "" {
		routeCache, err := openRouteCache(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer routeCache.Close()
		deps.Cache = routeCache
	}

	router := api.NewRouter(deps)

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func openRouteCache(ctx context.Context, url string, ttl time.Duration) (*cache.RedisRouteCache, error) {
	c, err := cache.NewRedisRouteCacheFromURL(url, ttl)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		_ = c.Close()
		return nil, err
	}

	log.Printf("Using redis route cache ttl=%s", ttl)
	return c, nil
}
