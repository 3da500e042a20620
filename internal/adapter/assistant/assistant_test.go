package assistant

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

func TestDecodeDraft(t *testing.T) {
	raw := `{
		"name": "CDB Banco Inter",
		"type": "FIXED_INCOME",
		"subtype": "CDB",
		"yieldRate": 13.5,
		"investedAmount": 5000,
		"allocationDate": "2026-02-01",
		"maturityDate": "2028-02-01",
		"paymentFrequency": "AT_MATURITY"
	}`

	draft, err := decodeDraft(raw)

	assert.NoError(t, err)
	assert.Equal(t, "CDB Banco Inter", draft.Name)
	assert.Equal(t, 13.5, draft.YieldRate)
	assert.Equal(t, 5000.0, draft.InvestedAmount)
	assert.Equal(t, "AT_MATURITY", draft.PaymentFrequency)
}

func TestDecodeDraft_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty response", ""},
		{"whitespace only", "   \n"},
		{"not json", "comprei um CDB"},
		{"missing name", `{"type": "FIXED_INCOME", "investedAmount": 100}`},
		{"blank name", `{"name": "  ", "investedAmount": 100}`},
		{"zero amount", `{"name": "CDB", "investedAmount": 0}`},
		{"negative amount", `{"name": "CDB", "investedAmount": -50}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := decodeDraft(tt.raw)

			assert.Error(t, err)
			assert.Nil(t, draft)
		})
	}
}

func TestDecodeInsights(t *testing.T) {
	raw := `{
		"insights": [
			{"title": "Concentração em renda fixa", "description": "80% do portfólio", "action": "Diversifique", "severity": "warning"}
		],
		"monthlyAporteNeeded": [
			{"goalName": "Reserva", "suggestedAporte": 850.5}
		]
	}`

	report, err := decodeInsights(raw)

	assert.NoError(t, err)
	assert.Len(t, report.Insights, 1)
	assert.Equal(t, "Concentração em renda fixa", report.Insights[0].Title)
	assert.Len(t, report.MonthlyContributions, 1)
	assert.Equal(t, "Reserva", report.MonthlyContributions[0].GoalName)
	assert.Equal(t, 850.5, report.MonthlyContributions[0].SuggestedAmount)
}

func TestDecodeInsights_EmptyArraysAreValid(t *testing.T) {
	report, err := decodeInsights(`{"insights": [], "monthlyAporteNeeded": []}`)

	assert.NoError(t, err)
	assert.Empty(t, report.Insights)
	assert.Empty(t, report.MonthlyContributions)
}

func TestDecodeInsights_Rejections(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json"} {
		report, err := decodeInsights(raw)

		assert.Error(t, err)
		assert.Nil(t, report)
	}
}

func TestInsightsPrompt(t *testing.T) {
	assets := []*domain.Asset{
		{
			ID:             uuid.New(),
			Name:           "Tesouro IPCA",
			Subtype:        domain.AssetSubtypeTesouro,
			YieldRate:      6.1,
			InvestedAmount: decimal.NewFromInt(5000),
		},
	}
	goals := []*domain.FinancialGoal{
		{
			ID:           uuid.New(),
			Name:         "Reserva",
			TargetValue:  decimal.NewFromInt(30000),
			CurrentValue: decimal.NewFromInt(12000),
			Deadline:     time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	prompt, err := insightsPrompt(assets, goals)

	assert.NoError(t, err)
	assert.Contains(t, prompt, `"Tesouro IPCA"`)
	assert.Contains(t, prompt, `"TESOURO"`)
	assert.Contains(t, prompt, `"Reserva"`)
	assert.Contains(t, prompt, "2027-12-31")
	assert.Contains(t, prompt, "aporte mensal")
}

func TestInsightsPrompt_EmptyInputs(t *testing.T) {
	prompt, err := insightsPrompt(nil, nil)

	assert.NoError(t, err)
	assert.Contains(t, prompt, "Portfólio: []")
	assert.Contains(t, prompt, "Metas: []")
}
