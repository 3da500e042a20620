// Package assistant adapts the external Gemini language-model API into the
// three AI features of the product: free-text asset extraction, portfolio
// Q&A, and goal insights. The backend never reasons locally; it only
// validates the model's output shape before letting it near the domain.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/finanza-app/finanza-backend/internal/domain"
	"github.com/finanza-app/finanza-backend/internal/usecase/portfolio"
	"github.com/finanza-app/finanza-backend/pkg/logger"
)

// fallbackAnswer is returned when the model call fails; the chat UI shows
// it instead of surfacing an internal error.
const fallbackAnswer = "Desculpe, tive um problema ao processar. Tente novamente."

// Service is the Gemini-backed assistant
type Service struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// New creates a new assistant backed by the Gemini API
func New(ctx context.Context, apiKey, model string, log *logger.Logger) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Service{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

// ExtractAsset asks the model to turn free text ("comprei 5k de CDB a
// 110% do CDI vencendo em 2027...") into a partial asset record. The
// result goes through standard asset validation downstream; nil is
// returned when the model produced nothing usable.
func (s *Service) ExtractAsset(ctx context.Context, text string) (*domain.AssetDraft, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text("Extraia: "+text),
		&genai.GenerateContentConfig{
			SystemInstruction: systemContent(extractInstruction),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    extractSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("asset extraction failed: %w", err)
	}

	draft, err := decodeDraft(resp.Text())
	if err != nil {
		s.log.WithError(err).Warn("asset extraction returned unusable output")
		return nil, nil
	}

	return draft, nil
}

// Explain answers a free-form question about the user's portfolio. The
// aggregated snapshot rides along as system context so the model never
// needs direct data access.
func (s *Service) Explain(ctx context.Context, question string, snapshot *portfolio.Metrics) (string, error) {
	contextJSON, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode portfolio snapshot: %w", err)
	}

	instruction := fmt.Sprintf("%s\nDados do portfólio: %s", explainInstruction, contextJSON)

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(question),
		&genai.GenerateContentConfig{
			SystemInstruction: systemContent(instruction),
			Temperature:       genai.Ptr[float32](0.7),
		},
	)
	if err != nil {
		s.log.WithError(err).Warn("assistant question failed")
		return fallbackAnswer, nil
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return fallbackAnswer, nil
	}

	return answer, nil
}

// Insight is one advisory item generated for the user's goals
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Severity    string `json:"severity"`
}

// GoalContribution is the model's suggested monthly contribution for one goal
type GoalContribution struct {
	GoalName        string  `json:"goalName"`
	SuggestedAmount float64 `json:"suggestedAporte"`
}

// InsightReport is the structured insight payload for the goals view
type InsightReport struct {
	Insights             []Insight          `json:"insights"`
	MonthlyContributions []GoalContribution `json:"monthlyAporteNeeded"`
}

// Insights analyzes the portfolio against the user's goals and produces
// advisory items plus suggested monthly contributions.
func (s *Service) Insights(ctx context.Context, assets []*domain.Asset, goalList []*domain.FinancialGoal) (*InsightReport, error) {
	prompt, err := insightsPrompt(assets, goalList)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   insightsSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("insight generation failed: %w", err)
	}

	return decodeInsights(resp.Text())
}

func systemContent(instruction string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: instruction}}}
}

// decodeDraft parses the model's JSON into an AssetDraft, rejecting
// payloads missing the fields extraction promises.
func decodeDraft(raw string) (*domain.AssetDraft, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty extraction response")
	}

	var draft domain.AssetDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	if strings.TrimSpace(draft.Name) == "" || draft.InvestedAmount <= 0 {
		return nil, fmt.Errorf("extraction response missing required fields")
	}

	return &draft, nil
}

func decodeInsights(raw string) (*InsightReport, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty insights response")
	}

	var report InsightReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to decode insights response: %w", err)
	}

	return &report, nil
}
