package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/config"
	"savings-route-service/internal/platform/db"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool creates the Postgres schema and loads points from a CSV file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", config.Get("POINTS_CSV", "data/locations.csv"))
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding points from %s...", seedPath)
	n, err := repositories.SeedPointsFromCSV(ctx, conn, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. points=%d", n)

	return nil
}
