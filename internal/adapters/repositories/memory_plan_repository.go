package repositories

import (
	"context"
	"fmt"
	"savings-route-service/internal/domain"
	"sync"
)

// In-memory PlanRepository used when no database is configured.
// Plans are stored as records so callers never share state with the store.
type MemoryPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]planRecord
}

func NewMemoryPlanRepository() *MemoryPlanRepository {
	return &MemoryPlanRepository{plans: make(map[string]planRecord)}
}

func (m *MemoryPlanRepository) SavePlan(ctx context.Context, plan *domain.PlanSummary) error {
	if plan == nil || plan.PlanID == "" {
		return fmt.Errorf("save plan: plan id must not be empty")
	}

	m.mu.Lock()
	m.plans[plan.PlanID] = toPlanRecord(plan)
	m.mu.Unlock()
	return nil
}

func (m *MemoryPlanRepository) GetPlan(ctx context.Context, planID string) (*domain.PlanSummary, error) {
	m.mu.RLock()
	rec, ok := m.plans[planID]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("get plan %q: %w", planID, domain.ErrPlanNotFound)
	}
	return rec.toDomain(), nil
}
