package goals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/finanza-app/finanza-backend/internal/domain"
	"github.com/finanza-app/finanza-backend/internal/usecase/portfolio"
)

var now = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

// MockGoalRepository is a mock implementation of GoalRepository for testing
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.FinancialGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FinancialGoal), args.Error(1)
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.FinancialGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockAllocationGoalsRepository is a mock implementation of AllocationGoalsRepository
type MockAllocationGoalsRepository struct {
	mock.Mock
}

func (m *MockAllocationGoalsRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.AllocationGoals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AllocationGoals), args.Error(1)
}

func (m *MockAllocationGoalsRepository) Upsert(ctx context.Context, goals *domain.AllocationGoals) error {
	args := m.Called(ctx, goals)
	return args.Error(0)
}

// MockAssetRepository backs the portfolio service used by Drift
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Asset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func goalWith(current, target float64) *domain.FinancialGoal {
	return &domain.FinancialGoal{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Name:         "Reserva",
		TargetValue:  decimal.NewFromFloat(target),
		CurrentValue: decimal.NewFromFloat(current),
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		target   float64
		expected float64
	}{
		{"halfway", 5000, 10000, 50},
		{"complete", 10000, 10000, 100},
		{"past target stays unclamped", 15000, 10000, 150},
		{"zero target guards division", 5000, 0, 0},
		{"negative target guards division", 5000, -100, 0},
		{"nothing saved", 0, 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Progress(goalWith(tt.current, tt.target)), 1e-9)
		})
	}
}

func TestList_AttachesProgress(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGoalRepository)
	userID := uuid.New()

	mockRepo.On("ListByUser", ctx, userID).Return([]*domain.FinancialGoal{
		goalWith(2500, 10000),
		goalWith(12000, 10000),
	}, nil)

	service := NewService(mockRepo, nil, nil)

	statuses, err := service.List(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, statuses, 2)
	assert.InDelta(t, 25, statuses[0].Progress, 1e-9)
	assert.InDelta(t, 120, statuses[1].Progress, 1e-9)
	mockRepo.AssertExpectations(t)
}

func TestList_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGoalRepository)
	userID := uuid.New()

	mockRepo.On("ListByUser", ctx, userID).Return(nil, errors.New("connection refused"))

	service := NewService(mockRepo, nil, nil)

	statuses, err := service.List(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, statuses)
	mockRepo.AssertExpectations(t)
}

func TestDrift(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockAllocation := new(MockAllocationGoalsRepository)
	mockAllocation.On("Get", ctx, userID).Return(&domain.AllocationGoals{
		UserID:         userID,
		FixedIncome:    60,
		VariableIncome: 30,
		Crypto:         10,
	}, nil)

	// portfolio split 50/50 between fixed and variable income, no crypto
	mockAssets := new(MockAssetRepository)
	mockAssets.On("ListByUser", ctx, userID).Return([]*domain.Asset{
		{
			ID:               uuid.New(),
			Name:             "CDB",
			Type:             domain.AssetTypeFixedIncome,
			InvestedAmount:   decimal.NewFromInt(5000),
			AllocationDate:   now,
			MaturityDate:     now.AddDate(1, 0, 0),
			PaymentFrequency: domain.PaymentAtMaturity,
		},
		{
			ID:               uuid.New(),
			Name:             "ETF",
			Type:             domain.AssetTypeVariableIncome,
			InvestedAmount:   decimal.NewFromInt(5000),
			AllocationDate:   now,
			MaturityDate:     now.AddDate(1, 0, 0),
			PaymentFrequency: domain.PaymentAtMaturity,
		},
	}, nil)

	portfolioService := portfolio.NewService(mockAssets, func() time.Time { return now })
	service := NewService(nil, mockAllocation, portfolioService)

	drifts, err := service.Drift(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, drifts, 3)

	byClass := make(map[domain.AssetType]AllocationDrift, len(drifts))
	for _, d := range drifts {
		byClass[d.Class] = d
	}

	assert.InDelta(t, -10, byClass[domain.AssetTypeFixedIncome].Deviation, 1e-9)
	assert.InDelta(t, 20, byClass[domain.AssetTypeVariableIncome].Deviation, 1e-9)
	assert.InDelta(t, -10, byClass[domain.AssetTypeCrypto].Deviation, 1e-9)
	mockAllocation.AssertExpectations(t)
	mockAssets.AssertExpectations(t)
}

func TestDrift_AllocationRepoError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockAllocation := new(MockAllocationGoalsRepository)
	mockAllocation.On("Get", ctx, userID).Return(nil, errors.New("connection refused"))

	service := NewService(nil, mockAllocation, nil)

	drifts, err := service.Drift(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, drifts)
	mockAllocation.AssertExpectations(t)
}
