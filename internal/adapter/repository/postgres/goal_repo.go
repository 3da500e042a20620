package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{db: db}
}

// Create creates a new goal
func (r *goalRepository) Create(ctx context.Context, goal *domain.FinancialGoal) error {
	query := `
		INSERT INTO financial_goals (id, user_id, name, target_value, current_value, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.TargetValue.String(),
		goal.CurrentValue.String(),
		goal.Deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// ListByUser retrieves all goals owned by the given user
func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialGoal, error) {
	query := `
		SELECT id, user_id, name, target_value, current_value, deadline
		FROM financial_goals
		WHERE user_id = $1
		ORDER BY deadline, name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.FinancialGoal
	for rows.Next() {
		var goal domain.FinancialGoal
		var targetStr, currentStr string
		var deadline sql.NullTime

		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Name,
			&targetStr,
			&currentStr,
			&deadline,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal row: %w", err)
		}

		if deadline.Valid {
			goal.Deadline = deadline.Time
		}

		target, err := decimal.NewFromString(targetStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse target_value: %w", err)
		}
		goal.TargetValue = target

		current, err := decimal.NewFromString(currentStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse current_value: %w", err)
		}
		goal.CurrentValue = current

		goals = append(goals, &goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goal rows: %w", err)
	}

	return goals, nil
}

// Update replaces an existing goal
func (r *goalRepository) Update(ctx context.Context, goal *domain.FinancialGoal) error {
	query := `
		UPDATE financial_goals
		SET name = $3, target_value = $4, current_value = $5, deadline = $6
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.TargetValue.String(),
		goal.CurrentValue.String(),
		goal.Deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal not found: %w", sql.ErrNoRows)
	}

	return nil
}

// Delete removes a goal, scoped to the owning user
func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM financial_goals WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal not found: %w", sql.ErrNoRows)
	}

	return nil
}
