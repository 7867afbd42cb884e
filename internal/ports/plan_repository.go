package ports

import (
	"context"
	"savings-route-service/internal/domain"
)

// Port: persistence for finished plan summaries.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.PlanSummary) error
	// Return domain.ErrPlanNotFound when no plan has the given id.
	GetPlan(ctx context.Context, planID string) (*domain.PlanSummary, error)
}
