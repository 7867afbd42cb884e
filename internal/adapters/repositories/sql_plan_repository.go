package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/obs"
)

// SQL-backed implementation of the PlanRepository port.
// Summaries are stored as a JSONB document next to a few queryable totals.
type SQLPlanRepository struct{ DB *sql.DB }

func NewSQLPlanRepository(db *sql.DB) *SQLPlanRepository {
	return &SQLPlanRepository{DB: db}
}

func (s *SQLPlanRepository) SavePlan(ctx context.Context, plan *domain.PlanSummary) (err error) {
	defer obs.Time(ctx, "plans.repository.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("sql plan repository: DB is nil")
	}
	if plan == nil || plan.PlanID == "" {
		return errors.New("save plan: plan id must not be empty")
	}

	doc, err := json.Marshal(toPlanRecord(plan))
	if err != nil {
		return fmt.Errorf("save plan: encode summary: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plan: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO plans (plan_id, created_at, max_capacity, num_routes, num_unassigned, total_distance, summary)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (plan_id) DO UPDATE
	SET summary = EXCLUDED.summary,
		total_distance = EXCLUDED.total_distance;
	`, plan.PlanID, plan.CreatedAt, plan.MaxCapacity, plan.NumRoutes, len(plan.Unassigned), plan.TotalDistance, doc)
	if err != nil {
		return fmt.Errorf("save plan plan_id=%q: %w", plan.PlanID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save plan commit: %w", err)
	}

	return nil
}

func (s *SQLPlanRepository) GetPlan(ctx context.Context, planID string) (_ *domain.PlanSummary, err error) {
	defer obs.Time(ctx, "plans.repository.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("sql plan repository: DB is nil")
	}

	var doc []byte
	err = s.DB.QueryRowContext(ctx, `SELECT summary FROM plans WHERE plan_id = $1;`, planID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %q: %w", planID, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %q: query plans table: %w", planID, err)
	}

	var rec planRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("get plan %q: decode summary: %w", planID, err)
	}

	return rec.toDomain(), nil
}
