package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// assetRequest is the asset create/update payload. Dates travel as
// YYYY-MM-DD strings; monetary amounts and percentages as JSON numbers,
// decoded through decimal to avoid float drift at rest.
type assetRequest struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Subtype          string          `json:"subtype"`
	Indicator        string          `json:"indicator"`
	YieldRate        float64         `json:"yield_rate"`
	InvestedAmount   decimal.Decimal `json:"invested_amount"`
	AllocationDate   string          `json:"allocation_date"`
	MaturityDate     string          `json:"maturity_date"`
	PaymentFrequency string          `json:"payment_frequency"`
	DividendYield    float64         `json:"dividend_yield"`
	TaxExempt        bool            `json:"tax_exempt"`
	IncomeTax        decimal.Decimal `json:"income_tax"`
	AdminFee         decimal.Decimal `json:"admin_fee"`
	PerformanceFee   decimal.Decimal `json:"performance_fee"`
	FGCGuaranty      bool            `json:"fgc_guaranty"`
}

// toDomain builds the domain asset; Validate decides whether it is usable
func (req *assetRequest) toDomain(id, userID uuid.UUID) *domain.Asset {
	return &domain.Asset{
		ID:               id,
		UserID:           userID,
		Name:             req.Name,
		Type:             domain.AssetType(req.Type),
		Subtype:          domain.AssetSubtype(req.Subtype),
		Indicator:        domain.YieldIndicator(req.Indicator),
		YieldRate:        req.YieldRate,
		InvestedAmount:   req.InvestedAmount,
		AllocationDate:   parseDate(req.AllocationDate),
		MaturityDate:     parseDate(req.MaturityDate),
		PaymentFrequency: domain.PaymentFrequency(req.PaymentFrequency),
		DividendYield:    req.DividendYield,
		TaxExempt:        req.TaxExempt,
		IncomeTax:        req.IncomeTax,
		AdminFee:         req.AdminFee,
		PerformanceFee:   req.PerformanceFee,
		FGCGuaranty:      req.FGCGuaranty,
	}
}

// assetResponse mirrors assetRequest plus the identifiers
type assetResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Subtype          string          `json:"subtype"`
	Indicator        string          `json:"indicator,omitempty"`
	YieldRate        float64         `json:"yield_rate"`
	InvestedAmount   decimal.Decimal `json:"invested_amount"`
	AllocationDate   string          `json:"allocation_date,omitempty"`
	MaturityDate     string          `json:"maturity_date,omitempty"`
	PaymentFrequency string          `json:"payment_frequency"`
	DividendYield    float64         `json:"dividend_yield"`
	TaxExempt        bool            `json:"tax_exempt"`
	IncomeTax        decimal.Decimal `json:"income_tax"`
	AdminFee         decimal.Decimal `json:"admin_fee"`
	PerformanceFee   decimal.Decimal `json:"performance_fee"`
	FGCGuaranty      bool            `json:"fgc_guaranty"`
}

func toAssetResponse(a *domain.Asset) assetResponse {
	return assetResponse{
		ID:               a.ID,
		Name:             a.Name,
		Type:             string(a.Type),
		Subtype:          string(a.Subtype),
		Indicator:        string(a.Indicator),
		YieldRate:        a.YieldRate,
		InvestedAmount:   a.InvestedAmount,
		AllocationDate:   formatDate(a.AllocationDate),
		MaturityDate:     formatDate(a.MaturityDate),
		PaymentFrequency: string(a.PaymentFrequency),
		DividendYield:    a.DividendYield,
		TaxExempt:        a.TaxExempt,
		IncomeTax:        a.IncomeTax,
		AdminFee:         a.AdminFee,
		PerformanceFee:   a.PerformanceFee,
		FGCGuaranty:      a.FGCGuaranty,
	}
}

// goalRequest is the goal create/update payload
type goalRequest struct {
	Name         string          `json:"name"`
	TargetValue  decimal.Decimal `json:"target_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Deadline     string          `json:"deadline"`
}

func (req *goalRequest) toDomain(id, userID uuid.UUID) *domain.FinancialGoal {
	return &domain.FinancialGoal{
		ID:           id,
		UserID:       userID,
		Name:         req.Name,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Deadline:     parseDate(req.Deadline),
	}
}

// goalResponse pairs the stored goal with its derived progress
type goalResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	TargetValue  decimal.Decimal `json:"target_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Deadline     string          `json:"deadline,omitempty"`
	Progress     float64         `json:"progress"`
}

func toGoalResponse(g *domain.FinancialGoal, progress float64) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Name:         g.Name,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Deadline:     formatDate(g.Deadline),
		Progress:     progress,
	}
}

// allocationGoalsRequest carries the target portfolio shares
type allocationGoalsRequest struct {
	FixedIncome    float64 `json:"fixed_income"`
	VariableIncome float64 `json:"variable_income"`
	Crypto         float64 `json:"crypto"`
}

// parseDate decodes YYYY-MM-DD, returning the zero time for anything
// unparsable; the valuation engine treats zero dates as zero duration.
func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
