package goals

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finanza-app/finanza-backend/internal/domain"
	"github.com/finanza-app/finanza-backend/internal/usecase/portfolio"
)

// Progress returns the goal's completion percentage, unclamped: a goal
// past its target reports more than 100. A non-positive target is invalid
// input and reports 0 rather than dividing into infinity.
func Progress(goal *domain.FinancialGoal) float64 {
	if goal.TargetValue.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	progress, _ := goal.CurrentValue.
		Div(goal.TargetValue).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return progress
}

// GoalStatus pairs a goal with its derived progress percentage
type GoalStatus struct {
	Goal     *domain.FinancialGoal `json:"goal"`
	Progress float64               `json:"progress"`
}

// AllocationDrift compares the target share of one asset class against
// what the portfolio actually holds right now.
type AllocationDrift struct {
	Class         domain.AssetType `json:"class"`
	TargetPercent float64          `json:"target_percent"`
	ActualPercent float64          `json:"actual_percent"`
	// Deviation is actual minus target: positive means overweight.
	Deviation float64 `json:"deviation"`
}

// Service handles goal-related operations
type Service struct {
	GoalRepo       domain.GoalRepository
	AllocationRepo domain.AllocationGoalsRepository
	Portfolio      *portfolio.Service
}

// NewService creates a new goals Service instance
func NewService(goalRepo domain.GoalRepository, allocationRepo domain.AllocationGoalsRepository, portfolioService *portfolio.Service) *Service {
	return &Service{
		GoalRepo:       goalRepo,
		AllocationRepo: allocationRepo,
		Portfolio:      portfolioService,
	}
}

// List retrieves the user's goals with progress attached
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]GoalStatus, error) {
	goals, err := s.GoalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	statuses := make([]GoalStatus, 0, len(goals))
	for _, goal := range goals {
		statuses = append(statuses, GoalStatus{
			Goal:     goal,
			Progress: Progress(goal),
		})
	}

	return statuses, nil
}

// Drift reports, per asset class, how far the current portfolio allocation
// strays from the user's configured targets.
func (s *Service) Drift(ctx context.Context, userID uuid.UUID) ([]AllocationDrift, error) {
	targets, err := s.AllocationRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocation targets: %w", err)
	}

	metrics, err := s.Portfolio.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}

	drifts := make([]AllocationDrift, 0, len(domain.AssetTypes()))
	for _, class := range domain.AssetTypes() {
		target := targets.Target(class)
		actual := metrics.AllocationByType[class]
		drifts = append(drifts, AllocationDrift{
			Class:         class,
			TargetPercent: target,
			ActualPercent: actual,
			Deviation:     actual - target,
		})
	}

	return drifts, nil
}
