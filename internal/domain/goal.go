package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialGoal represents a wealth target in the domain layer.
// CurrentValue is tracked externally by the user; the engine only derives
// the unclamped progress percentage from it.
type FinancialGoal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	TargetValue  decimal.Decimal
	CurrentValue decimal.Decimal
	Deadline     time.Time
}

// Validate ensures the goal adheres to domain rules
// Returns an error if validation fails
func (g *FinancialGoal) Validate() error {
	if g.Name == "" {
		return errors.New("goal name cannot be empty")
	}

	if g.TargetValue.LessThanOrEqual(decimal.Zero) {
		return errors.New("goal target value must be positive")
	}

	if g.CurrentValue.IsNegative() {
		return errors.New("goal current value cannot be negative")
	}

	return nil
}

// AllocationGoals holds the target portfolio share per asset class.
// There is no contract that the three percentages sum to 100; the UI
// hints at it but the backend stores whatever the user set.
type AllocationGoals struct {
	UserID         uuid.UUID
	FixedIncome    float64
	VariableIncome float64
	Crypto         float64
}

// Validate ensures each target percentage is within 0-100
func (ag *AllocationGoals) Validate() error {
	for _, pct := range []float64{ag.FixedIncome, ag.VariableIncome, ag.Crypto} {
		if pct < 0 || pct > 100 {
			return errors.New("allocation target must be between 0 and 100")
		}
	}
	return nil
}

// Target returns the configured percentage for the given asset class
func (ag *AllocationGoals) Target(t AssetType) float64 {
	switch t {
	case AssetTypeFixedIncome:
		return ag.FixedIncome
	case AssetTypeVariableIncome:
		return ag.VariableIncome
	case AssetTypeCrypto:
		return ag.Crypto
	}
	return 0
}

// DefaultAllocationGoals returns the targets applied before a user
// customizes their strategy.
func DefaultAllocationGoals(userID uuid.UUID) *AllocationGoals {
	return &AllocationGoals{
		UserID:         userID,
		FixedIncome:    60,
		VariableIncome: 30,
		Crypto:         10,
	}
}
