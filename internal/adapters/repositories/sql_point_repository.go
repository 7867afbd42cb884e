package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/obs"
)

// SQL-backed implementation of the PointRepository port.
type SQLPointRepository struct{ DB *sql.DB }

func NewSQLPointRepository(db *sql.DB) *SQLPointRepository {
	return &SQLPointRepository{DB: db}
}

// Return all points in insertion order so savings tie-breaks are stable.
func (s *SQLPointRepository) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.repository.ListPoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	query := `
	SELECT
		x,
		y,
		demand
	FROM points
	ORDER BY point_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list points: query points table: %w", err)
	}
	defer rows.Close()

	points := make([]domain.Point, 0, 64)
	for rows.Next() {
		var x, y, demand int
		if err := rows.Scan(&x, &y, &demand); err != nil {
			return nil, fmt.Errorf("list points: scan row: %w", err)
		}
		points = append(points, domain.NewPoint(x, y, demand))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list points: row iteration: %w", err)
	}

	return points, nil
}
