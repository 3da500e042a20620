package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

// allocationGoalsRepository implements domain.AllocationGoalsRepository
type allocationGoalsRepository struct {
	db *DB
}

// NewAllocationGoalsRepository creates a new allocation goals repository
func NewAllocationGoalsRepository(db *DB) domain.AllocationGoalsRepository {
	return &allocationGoalsRepository{db: db}
}

// Get retrieves the user's allocation targets, falling back to the
// default strategy when the user has never saved one.
func (r *allocationGoalsRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.AllocationGoals, error) {
	query := `
		SELECT user_id, fixed_income, variable_income, crypto
		FROM allocation_goals
		WHERE user_id = $1
	`

	var goals domain.AllocationGoals
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&goals.UserID,
		&goals.FixedIncome,
		&goals.VariableIncome,
		&goals.Crypto,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultAllocationGoals(userID), nil
		}
		return nil, fmt.Errorf("failed to get allocation goals: %w", err)
	}

	return &goals, nil
}

// Upsert creates or replaces the user's allocation targets
func (r *allocationGoalsRepository) Upsert(ctx context.Context, goals *domain.AllocationGoals) error {
	query := `
		INSERT INTO allocation_goals (user_id, fixed_income, variable_income, crypto)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET fixed_income = $2, variable_income = $3, crypto = $4
	`

	_, err := r.db.ExecContext(ctx, query,
		goals.UserID,
		goals.FixedIncome,
		goals.VariableIncome,
		goals.Crypto,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert allocation goals: %w", err)
	}

	return nil
}
