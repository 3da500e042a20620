package assistant

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

const extractInstruction = `Extraia dados de investimento do texto do usuário.
'type' deve ser: 'FIXED_INCOME', 'VARIABLE_INCOME' ou 'CRYPTO'.
'paymentFrequency' deve ser: 'MONTHLY', 'QUARTERLY', 'SEMIANNUALLY', 'ANNUALLY' ou 'AT_MATURITY'.
Datas no formato YYYY-MM-DD. Valores monetários como números, taxas como percentual anual.`

const explainInstruction = `Você é o assistente Finanza, um analista de investimentos.
Responda de forma curta e objetiva usando apenas os dados do portfólio fornecidos.`

// extractSchema mirrors the asset form: the model must hand back a record
// the standard Asset validation can accept or reject.
var extractSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":             {Type: genai.TypeString},
		"type":             {Type: genai.TypeString},
		"subtype":          {Type: genai.TypeString},
		"yieldRate":        {Type: genai.TypeNumber},
		"investedAmount":   {Type: genai.TypeNumber},
		"allocationDate":   {Type: genai.TypeString},
		"maturityDate":     {Type: genai.TypeString},
		"paymentFrequency": {Type: genai.TypeString},
		"dividendYield":    {Type: genai.TypeNumber},
	},
	Required: []string{"name", "type", "subtype", "investedAmount"},
}

var insightsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"insights": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"action":      {Type: genai.TypeString},
					"severity":    {Type: genai.TypeString},
				},
				Required: []string{"title", "description", "action", "severity"},
			},
		},
		"monthlyAporteNeeded": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"goalName":        {Type: genai.TypeString},
					"suggestedAporte": {Type: genai.TypeNumber},
				},
			},
		},
	},
}

// insightsPrompt condenses assets and goals into the analysis request.
// Only the fields the advisory needs are sent, not the full records.
func insightsPrompt(assets []*domain.Asset, goals []*domain.FinancialGoal) (string, error) {
	type assetSummary struct {
		Name   string  `json:"name"`
		Type   string  `json:"type"`
		Amount float64 `json:"amount"`
		Yield  float64 `json:"yield"`
	}
	type goalSummary struct {
		Name     string  `json:"name"`
		Target   float64 `json:"target"`
		Current  float64 `json:"current"`
		Deadline string  `json:"deadline"`
	}

	assetSummaries := make([]assetSummary, 0, len(assets))
	for _, a := range assets {
		assetSummaries = append(assetSummaries, assetSummary{
			Name:   a.Name,
			Type:   string(a.Subtype),
			Amount: a.InvestedAmount.InexactFloat64(),
			Yield:  a.YieldRate,
		})
	}

	goalSummaries := make([]goalSummary, 0, len(goals))
	for _, g := range goals {
		goalSummaries = append(goalSummaries, goalSummary{
			Name:     g.Name,
			Target:   g.TargetValue.InexactFloat64(),
			Current:  g.CurrentValue.InexactFloat64(),
			Deadline: g.Deadline.Format("2006-01-02"),
		})
	}

	assetsJSON, err := json.Marshal(assetSummaries)
	if err != nil {
		return "", fmt.Errorf("failed to encode assets for insights: %w", err)
	}
	goalsJSON, err := json.Marshal(goalSummaries)
	if err != nil {
		return "", fmt.Errorf("failed to encode goals for insights: %w", err)
	}

	return fmt.Sprintf(`Como um consultor financeiro sênior, analise o seguinte portfólio e metas de um usuário:

Portfólio: %s
Metas: %s

Gere insights específicos sobre:
1. Se as metas são atingíveis.
2. Sugestões de aporte mensal.
3. Alocação ideal.`, assetsJSON, goalsJSON), nil
}
