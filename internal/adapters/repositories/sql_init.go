package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
)

// Initialize the database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS points (
		point_id BIGSERIAL PRIMARY KEY,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		demand INTEGER NOT NULL CHECK (demand >= 0),
		UNIQUE (x, y)
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		max_capacity INTEGER NOT NULL,
		num_routes INTEGER NOT NULL,
		num_unassigned INTEGER NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL,
		summary JSONB NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_created_at
	ON plans(created_at);
	`

	statements := []string{
		createPointsQuery,
		createPlansQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the points table from a CSV file of x,y,demand rows.
// Existing points at the same coordinates have their demand updated.
func SeedPointsFromCSV(ctx context.Context, db *sql.DB, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("seed points: open %q: %w", csvPath, err)
	}
	defer f.Close()

	points, err := ParsePointsCSV(f)
	if err != nil {
		return 0, fmt.Errorf("seed points: %w", err)
	}

	for i, p := range points {
		if p.Demand < 0 {
			return 0, fmt.Errorf("seed points: row %d: demand cannot be negative: %d", i+1, p.Demand)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed points: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO points (x, y, demand)
	VALUES ($1, $2, $3)
	ON CONFLICT (x, y) DO UPDATE
	SET demand = EXCLUDED.demand;
	`)
	if err != nil {
		return 0, fmt.Errorf("seed points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.X, p.Y, p.Demand); err != nil {
			return 0, fmt.Errorf("seed points: insert %s: %w", p.Coord(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed points: commit tx: %w", err)
	}

	return len(points), nil
}
