// Package simulator implements the "what-if" contribution calculator.
// It is independent of stored assets: a forward projection over a
// hypothetical initial amount and monthly contributions, sharing the
// monthly-rate transform with the valuation engine.
package simulator

import (
	"math"

	"github.com/finanza-app/finanza-backend/internal/usecase/valuation"
)

// maxYears bounds runaway inputs; the UI slider never goes past 40.
const maxYears = 100

// Input holds the simulation parameters
type Input struct {
	InitialAmount       float64 `json:"initial_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualRate          float64 `json:"annual_rate"` // %
	Years               int     `json:"years"`
}

// YearlySnapshot is the simulation state at the end of one year
type YearlySnapshot struct {
	Year             int     `json:"year"`
	TotalAccumulated float64 `json:"total_accumulated"`
	TotalContributed float64 `json:"total_contributed"`
	Profit           float64 `json:"profit"`
}

// Result is the full simulation output
type Result struct {
	Years            []YearlySnapshot `json:"years"`
	FinalTotal       float64          `json:"final_total"`
	TotalContributed float64          `json:"total_contributed"`
	TotalProfit      float64          `json:"total_profit"`
}

// Simulate runs the month-by-month projection. Each month accrues the
// monthly effective rate on the running principal, then adds the
// contribution; a snapshot is emitted at the end of every year.
// Non-positive year counts produce an empty series.
func Simulate(in Input) Result {
	years := in.Years
	if years < 0 {
		years = 0
	}
	if years > maxYears {
		years = maxYears
	}

	initial := sanitize(in.InitialAmount)
	contribution := sanitize(in.MonthlyContribution)
	rate := valuation.MonthlyRate(in.AnnualRate)

	result := Result{Years: make([]YearlySnapshot, 0, years)}
	current := initial

	for year := 1; year <= years; year++ {
		for month := 1; month <= 12; month++ {
			current += current*rate + contribution
		}

		contributed := initial + contribution*12*float64(year)
		result.Years = append(result.Years, YearlySnapshot{
			Year:             year,
			TotalAccumulated: current,
			TotalContributed: contributed,
			Profit:           current - contributed,
		})
	}

	result.FinalTotal = current
	result.TotalContributed = initial + contribution*12*float64(years)
	result.TotalProfit = current - result.TotalContributed

	return result
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
