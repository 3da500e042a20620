package portfolio

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

var now = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

// MockAssetRepository is a mock implementation of AssetRepository for testing
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

// testAsset builds a 12-month AT_MATURITY asset allocated at "now", so its
// maturity profit percent equals its annual yield exactly.
func testAsset(name string, assetType domain.AssetType, invested, yieldRate float64) *domain.Asset {
	return &domain.Asset{
		ID:               uuid.New(),
		Name:             name,
		Type:             assetType,
		Subtype:          domain.AssetSubtypeCDB,
		YieldRate:        yieldRate,
		InvestedAmount:   decimal.NewFromFloat(invested),
		AllocationDate:   now,
		MaturityDate:     now.AddDate(1, 0, 0),
		PaymentFrequency: domain.PaymentAtMaturity,
	}
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	m := Aggregate(nil, now)

	assert.Zero(t, m.TotalInvested)
	assert.Zero(t, m.TotalCurrentValue)
	assert.Zero(t, m.TotalMaturityValue)
	assert.Zero(t, m.TotalDividendsAccrued)
	assert.Zero(t, m.TotalDividendsProjected)
	assert.Zero(t, m.ProfitPercent) // guarded division, not NaN
	assert.Zero(t, m.AverageYieldRate)
	assert.NotNil(t, m.AllocationByType)
	assert.Empty(t, m.AllocationByType)
	assert.Empty(t, m.Assets)
	assert.Empty(t, m.Ranking)
}

func TestAggregate_Totals(t *testing.T) {
	assets := []*domain.Asset{
		testAsset("CDB A", domain.AssetTypeFixedIncome, 10000, 12),
		testAsset("CDB B", domain.AssetTypeFixedIncome, 5000, 10),
	}

	m := Aggregate(assets, now)

	assert.InDelta(t, 15000, m.TotalInvested, 0.001)
	// zero months elapsed: current value equals principal
	assert.InDelta(t, 15000, m.TotalCurrentValue, 0.001)
	// 10000*1.12 + 5000*1.10
	assert.InDelta(t, 16700, m.TotalMaturityValue, 0.5)
	assert.InDelta(t, 11, m.AverageYieldRate, 0.001)
	assert.Zero(t, m.ProfitPercent)
}

func TestAggregate_AllocationSumsToHundred(t *testing.T) {
	assets := []*domain.Asset{
		testAsset("CDB", domain.AssetTypeFixedIncome, 6000, 10),
		testAsset("ETF", domain.AssetTypeVariableIncome, 3000, 8),
		testAsset("BTC", domain.AssetTypeCrypto, 1000, 0),
	}

	m := Aggregate(assets, now)

	sum := 0.0
	for _, pct := range m.AllocationByType {
		sum += pct
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.InDelta(t, 60, m.AllocationByType[domain.AssetTypeFixedIncome], 1e-9)
	assert.InDelta(t, 30, m.AllocationByType[domain.AssetTypeVariableIncome], 1e-9)
	assert.InDelta(t, 10, m.AllocationByType[domain.AssetTypeCrypto], 1e-9)
}

func TestAggregate_ZeroValuedPortfolio(t *testing.T) {
	assets := []*domain.Asset{
		testAsset("Empty", domain.AssetTypeFixedIncome, 0, 10),
	}

	m := Aggregate(assets, now)

	// nothing to allocate: percentages stay empty instead of NaN
	assert.Empty(t, m.AllocationByType)
	assert.Zero(t, m.ProfitPercent)
	for _, a := range m.Assets {
		assert.False(t, math.IsNaN(a.ProfitPercent))
	}
}

func TestAggregate_RankingOrder(t *testing.T) {
	// maturity profits 5%, 20%, -3% must rank as 20%, 5%, -3%
	assets := []*domain.Asset{
		testAsset("Five", domain.AssetTypeFixedIncome, 1000, 5),
		testAsset("Twenty", domain.AssetTypeVariableIncome, 1000, 20),
		testAsset("MinusThree", domain.AssetTypeCrypto, 1000, -3),
	}

	m := Aggregate(assets, now)

	assert.Len(t, m.Ranking, 3)
	assert.Equal(t, "Twenty", m.Ranking[0].Name)
	assert.Equal(t, "Five", m.Ranking[1].Name)
	assert.Equal(t, "MinusThree", m.Ranking[2].Name)
	assert.InDelta(t, 20, m.Ranking[0].ProfitPercent, 0.001)
	assert.InDelta(t, -3, m.Ranking[2].ProfitPercent, 0.001)
}

func TestAggregate_RankingTopThreeAndStableTies(t *testing.T) {
	assets := []*domain.Asset{
		testAsset("First", domain.AssetTypeFixedIncome, 1000, 10),
		testAsset("Second", domain.AssetTypeFixedIncome, 1000, 10),
		testAsset("Third", domain.AssetTypeFixedIncome, 1000, 10),
		testAsset("Fourth", domain.AssetTypeFixedIncome, 1000, 10),
	}

	m := Aggregate(assets, now)

	// ties keep input order, list caps at three
	assert.Len(t, m.Ranking, 3)
	assert.Equal(t, "First", m.Ranking[0].Name)
	assert.Equal(t, "Second", m.Ranking[1].Name)
	assert.Equal(t, "Third", m.Ranking[2].Name)
}

func TestAggregate_IndicatorBreakdownFixedIncomeOnly(t *testing.T) {
	cdb := testAsset("CDB", domain.AssetTypeFixedIncome, 4000, 10)
	cdb.Indicator = domain.IndicatorCDI
	tesouro := testAsset("Tesouro", domain.AssetTypeFixedIncome, 6000, 10)
	tesouro.Indicator = domain.IndicatorIPCA
	etf := testAsset("ETF", domain.AssetTypeVariableIncome, 5000, 8)

	m := Aggregate([]*domain.Asset{cdb, tesouro, etf}, now)

	assert.InDelta(t, 40, m.AllocationByIndicator[domain.IndicatorCDI], 1e-9)
	assert.InDelta(t, 60, m.AllocationByIndicator[domain.IndicatorIPCA], 1e-9)
	assert.NotContains(t, m.AllocationByIndicator, domain.IndicatorOther)
}

func TestOverview_UsesInjectedClock(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAssetRepository)
	userID := uuid.New()

	asset := testAsset("CDB", domain.AssetTypeFixedIncome, 10000, 12)
	asset.AllocationDate = now.AddDate(-1, 0, 0)
	asset.MaturityDate = asset.AllocationDate.AddDate(2, 0, 0)

	mockRepo.On("ListByUser", ctx, userID).Return([]*domain.Asset{asset}, nil)

	service := NewService(mockRepo, func() time.Time { return now })

	m, err := service.Overview(ctx, userID)

	assert.NoError(t, err)
	assert.InDelta(t, 11200, m.TotalCurrentValue, 0.5)
	mockRepo.AssertExpectations(t)
}

func TestOverview_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAssetRepository)
	userID := uuid.New()

	mockRepo.On("ListByUser", ctx, userID).Return(nil, errors.New("connection refused"))

	service := NewService(mockRepo, func() time.Time { return now })

	m, err := service.Overview(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, m)
	mockRepo.AssertExpectations(t)
}
