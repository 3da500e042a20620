package domain

import (
	"context"

	"github.com/google/uuid"
)

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error

	// GetByID retrieves an asset by its ID, scoped to the owning user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Asset, error)

	// ListByUser retrieves all assets owned by the given user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Asset, error)

	// Update replaces an existing asset
	Update(ctx context.Context, asset *Asset) error

	// Delete removes an asset, scoped to the owning user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// GoalRepository defines the interface for financial goal persistence operations
type GoalRepository interface {
	// Create creates a new goal
	Create(ctx context.Context, goal *FinancialGoal) error

	// ListByUser retrieves all goals owned by the given user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*FinancialGoal, error)

	// Update replaces an existing goal
	Update(ctx context.Context, goal *FinancialGoal) error

	// Delete removes a goal, scoped to the owning user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// AllocationGoalsRepository defines the interface for allocation target persistence
type AllocationGoalsRepository interface {
	// Get retrieves the user's allocation targets.
	// Implementations return DefaultAllocationGoals when the user has
	// never saved a strategy.
	Get(ctx context.Context, userID uuid.UUID) (*AllocationGoals, error)

	// Upsert creates or replaces the user's allocation targets
	Upsert(ctx context.Context, goals *AllocationGoals) error
}
