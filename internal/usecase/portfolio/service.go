package portfolio

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finanza-app/finanza-backend/internal/domain"
	"github.com/finanza-app/finanza-backend/internal/usecase/valuation"
)

// rankingSize caps the top-performance list shown on the dashboard
const rankingSize = 3

// AssetPerformance is the per-asset row of the aggregated portfolio view
type AssetPerformance struct {
	AssetID        uuid.UUID           `json:"asset_id"`
	Name           string              `json:"name"`
	Type           domain.AssetType    `json:"type"`
	Subtype        domain.AssetSubtype `json:"subtype"`
	InvestedAmount float64             `json:"invested_amount"`
	CurrentValue   float64             `json:"current_value"`
	MaturityValue  float64             `json:"maturity_value"`
	// ProfitPercent is the projected profit at maturity over the principal
	ProfitPercent   float64 `json:"profit_percent"`
	ProjectedProfit float64 `json:"projected_profit"`
}

// Metrics captures the aggregated state of a user's portfolio at one instant
type Metrics struct {
	TotalInvested           float64 `json:"total_invested"`
	TotalCurrentValue       float64 `json:"total_current_value"`
	TotalMaturityValue      float64 `json:"total_maturity_value"`
	TotalDividendsAccrued   float64 `json:"total_dividends_accrued"`
	TotalDividendsProjected float64 `json:"total_dividends_projected"`
	CurrentProfit           float64 `json:"current_profit"`
	ProfitPercent           float64 `json:"profit_percent"`
	AverageYieldRate        float64 `json:"average_yield_rate"`

	// AllocationByType holds the percentage of total current value held in
	// each asset class. Percentages sum to 100 whenever the portfolio has
	// positive current value, and to 0 when it is empty or worthless.
	AllocationByType    map[domain.AssetType]float64    `json:"allocation_by_type"`
	AllocationBySubtype map[domain.AssetSubtype]float64 `json:"allocation_by_subtype"`
	// AllocationByIndicator covers fixed-income assets only, keyed by the
	// index they track.
	AllocationByIndicator map[domain.YieldIndicator]float64 `json:"allocation_by_indicator"`

	Assets  []AssetPerformance `json:"assets"`
	Ranking []AssetPerformance `json:"ranking"`
}

// Aggregate folds the valuation engine over a snapshot of assets in one
// pass. It is a pure function: same assets and instant, same metrics.
func Aggregate(assets []*domain.Asset, asOf time.Time) *Metrics {
	m := &Metrics{
		AllocationByType:      make(map[domain.AssetType]float64),
		AllocationBySubtype:   make(map[domain.AssetSubtype]float64),
		AllocationByIndicator: make(map[domain.YieldIndicator]float64),
		Assets:                make([]AssetPerformance, 0, len(assets)),
	}

	currentByType := make(map[domain.AssetType]float64)
	currentBySubtype := make(map[domain.AssetSubtype]float64)
	currentByIndicator := make(map[domain.YieldIndicator]float64)
	fixedIncomeTotal := 0.0
	yieldSum := 0.0

	for _, asset := range assets {
		p := valuation.Project(asset, asOf)
		invested := asset.InvestedAmount.InexactFloat64()

		m.TotalInvested += invested
		m.TotalCurrentValue += p.CurrentValue
		m.TotalMaturityValue += p.MaturityValue
		m.TotalDividendsAccrued += p.DividendsAccrued
		m.TotalDividendsProjected += p.DividendsProjected
		yieldSum += asset.YieldRate

		currentByType[asset.Type] += p.CurrentValue
		currentBySubtype[asset.Subtype] += p.CurrentValue
		if asset.Type == domain.AssetTypeFixedIncome {
			indicator := asset.Indicator
			if indicator == "" {
				indicator = domain.IndicatorOther
			}
			currentByIndicator[indicator] += p.CurrentValue
			fixedIncomeTotal += p.CurrentValue
		}

		m.Assets = append(m.Assets, AssetPerformance{
			AssetID:         asset.ID,
			Name:            asset.Name,
			Type:            asset.Type,
			Subtype:         asset.Subtype,
			InvestedAmount:  invested,
			CurrentValue:    p.CurrentValue,
			MaturityValue:   p.MaturityValue,
			ProfitPercent:   p.ProfitPercent,
			ProjectedProfit: p.MaturityValue - invested,
		})
	}

	m.CurrentProfit = m.TotalCurrentValue - m.TotalInvested
	if m.TotalInvested > 0 {
		m.ProfitPercent = m.CurrentProfit / m.TotalInvested * 100
	}
	if len(assets) > 0 {
		m.AverageYieldRate = yieldSum / float64(len(assets))
	}

	if m.TotalCurrentValue > 0 {
		for t, v := range currentByType {
			m.AllocationByType[t] = v / m.TotalCurrentValue * 100
		}
		for st, v := range currentBySubtype {
			m.AllocationBySubtype[st] = v / m.TotalCurrentValue * 100
		}
	}
	if fixedIncomeTotal > 0 {
		for ind, v := range currentByIndicator {
			m.AllocationByIndicator[ind] = v / fixedIncomeTotal * 100
		}
	}

	m.Ranking = rank(m.Assets)

	return m
}

// rank returns the top performers by projected maturity profit percent.
// The sort is stable, so ties keep their original input order.
func rank(assets []AssetPerformance) []AssetPerformance {
	ranked := make([]AssetPerformance, len(assets))
	copy(ranked, assets)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProfitPercent > ranked[j].ProfitPercent
	})

	if len(ranked) > rankingSize {
		ranked = ranked[:rankingSize]
	}
	return ranked
}

// Service computes portfolio metrics over the user's stored assets.
// It holds no state between calls: every request re-reads the snapshot
// and recomputes from scratch.
type Service struct {
	AssetRepo domain.AssetRepository
	Now       valuation.Clock
}

// NewService creates a new portfolio Service instance.
// A nil clock defaults to wall-clock time.
func NewService(assetRepo domain.AssetRepository, now valuation.Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		AssetRepo: assetRepo,
		Now:       now,
	}
}

// Overview fetches the user's assets and aggregates them as of now
func (s *Service) Overview(ctx context.Context, userID uuid.UUID) (*Metrics, error) {
	assets, err := s.AssetRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	return Aggregate(assets, s.Now()), nil
}
