// Package valuation is the single source of truth for time-value-of-money
// arithmetic over assets. Every view (dashboard, investments, reports,
// ranking) derives its numbers from here instead of re-deriving the
// formula locally.
package valuation

import (
	"math"
	"time"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

// Clock supplies the reference "now" instant. Injecting it keeps the
// engine a pure function of its inputs.
type Clock func() time.Time

// Projection is the full per-asset valuation breakdown computed in one pass.
type Projection struct {
	MonthsElapsed      int     `json:"months_elapsed"`
	TotalMonths        int     `json:"total_months"`
	CurrentValue       float64 `json:"current_value"`
	MaturityValue      float64 `json:"maturity_value"`
	DividendsAccrued   float64 `json:"dividends_accrued"`
	DividendsProjected float64 `json:"dividends_projected"`
	// ProfitPercent is the projected profit at maturity over the
	// principal, 0 for a zero principal.
	ProfitPercent float64 `json:"profit_percent"`
}

// Project computes the asset's valuation breakdown as of the given instant.
//
// Elapsed time is counted in whole calendar months, floored at zero: an
// allocation date in the future contributes no accrual. The investment's
// total duration is floored at one month, so a maturity in the allocation
// month (or before it) is valued as a degenerate 1-month instrument rather
// than dividing by zero. A zero (unparsable) allocation or maturity date is
// treated as "asOf", i.e. zero duration.
func Project(a *domain.Asset, asOf time.Time) Projection {
	invested := sanitize(a.InvestedAmount.InexactFloat64())

	allocDate := a.AllocationDate
	if allocDate.IsZero() {
		allocDate = asOf
	}
	maturityDate := a.MaturityDate
	if maturityDate.IsZero() {
		maturityDate = asOf
	}

	monthsElapsed := MonthsBetween(allocDate, asOf)
	if monthsElapsed < 0 {
		monthsElapsed = 0
	}

	totalMonths := MonthsBetween(allocDate, maturityDate)
	if totalMonths < 1 {
		totalMonths = 1
	}

	rate := MonthlyRate(a.YieldRate)
	compound := a.PaymentFrequency == domain.PaymentAtMaturity

	current := invested
	if monthsElapsed > 0 {
		current = valueAt(invested, rate, monthsElapsed, compound)
	}
	maturity := valueAt(invested, rate, totalMonths, compound)

	monthlyDivRate := sanitize(a.DividendYield) / 100 / 12
	remaining := totalMonths - monthsElapsed
	if remaining < 0 {
		remaining = 0
	}

	profitPercent := 0.0
	if invested > 0 {
		profitPercent = (maturity - invested) / invested * 100
	}

	return Projection{
		MonthsElapsed:      monthsElapsed,
		TotalMonths:        totalMonths,
		CurrentValue:       current,
		MaturityValue:      maturity,
		DividendsAccrued:   invested * monthlyDivRate * float64(monthsElapsed),
		DividendsProjected: invested * monthlyDivRate * float64(remaining),
		ProfitPercent:      profitPercent,
	}
}

// CurrentValue computes the asset's accrued value as of the given instant.
func CurrentValue(a *domain.Asset, asOf time.Time) float64 {
	return Project(a, asOf).CurrentValue
}

// MaturityValue computes the asset's projected value at its maturity date.
// It does not depend on "now", so the allocation date serves as the
// reference instant; when that date is zero the maturity date stands in,
// which values the asset as a degenerate 1-month instrument instead of
// measuring the duration from year 1.
func MaturityValue(a *domain.Asset) float64 {
	ref := a.AllocationDate
	if ref.IsZero() {
		ref = a.MaturityDate
	}
	return Project(a, ref).MaturityValue
}

// MonthlyRate converts an annual nominal percentage into the monthly
// effective rate r such that (1+r)^12 = 1 + annualPct/100. Non-finite
// inputs and rates below -100% (which have no real monthly root) yield 0.
func MonthlyRate(annualPct float64) float64 {
	base := 1 + sanitize(annualPct)/100
	if base < 0 {
		return 0
	}
	r := math.Pow(base, 1.0/12) - 1
	return sanitize(r)
}

// MonthsBetween counts whole calendar months from one date to another,
// ignoring the day of month. The result is negative when to precedes from.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// valueAt applies n months of accrual to the principal. Compound accrual
// grows geometrically, simple accrual linearly over the same monthly rate.
func valueAt(principal, rate float64, n int, compound bool) float64 {
	var v float64
	if compound {
		v = principal * math.Pow(1+rate, float64(n))
	} else {
		v = principal * (1 + rate*float64(n))
	}
	return sanitize(v)
}

// sanitize normalizes NaN and infinities to 0 so one malformed asset can
// never poison a portfolio-wide sum.
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
