package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"wellbeing/ai"
	"wellbeing/domain/core"
	"wellbeing/domain/survey"
	"wellbeing/internal"
	"wellbeing/internal/config"
	"wellbeing/ports"
)

// Fallback text for narrative fields the model leaves out
const (
	FallbackSummary      = "No summary available."
	FallbackStrengths    = "No strengths data available."
	FallbackIntervention = "No intervention recommendations available."
)

// InsightService turns a school summary into an AI narrative
type InsightService struct {
	client     ports.LLMClient
	prompts    *ai.PromptManager
	benchmarks survey.Benchmarks
	logger     *internal.Logger
}

// NewInsightService creates an insight generator on top of any LLM client
func NewInsightService(client ports.LLMClient, prompts *ai.PromptManager, benchmarks survey.Benchmarks, logger *internal.Logger) *InsightService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if prompts == nil {
		prompts = ai.NewPromptManager("", logger)
	}
	return &InsightService{
		client:     client,
		prompts:    prompts,
		benchmarks: benchmarks,
		logger:     logger,
	}
}

// NewInsightGenerator builds the generator for the configured provider.
// Returns core.ErrInsightsUnavailable when no provider or key is configured.
func NewInsightGenerator(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*InsightService, error) {
	if !cfg.AI.Enabled() {
		return nil, core.ErrInsightsUnavailable
	}

	llmConfig := Config{
		APIKey:      cfg.AI.APIKey(),
		Model:       cfg.AI.Model,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
	}

	var client ports.LLMClient
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		c, err := NewOpenAIClient(llmConfig)
		if err != nil {
			return nil, err
		}
		client = c
	default:
		c, err := NewGeminiClient(ctx, llmConfig, logger)
		if err != nil {
			return nil, err
		}
		client = c
	}

	return NewInsightService(client, ai.NewPromptManager(cfg.AI.PromptsDir, logger), cfg.Benchmarks, logger), nil
}

// GenerateInsights implements ports.InsightGenerator
func (s *InsightService) GenerateInsights(ctx context.Context, summary survey.SchoolSummary) (*survey.AIInsights, error) {
	prompt, err := s.BuildPrompt(summary)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("[InsightService] Requesting insights for %q", summary.School)
	content, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("[InsightService] LLM call failed for %q: %v", summary.School, err)
		return nil, err
	}

	insights, err := ParseInsights(content)
	if err != nil {
		s.logger.Warn("[InsightService] Unparseable response for %q: %v", summary.School, err)
		return nil, err
	}
	return insights, nil
}

// BuildPrompt renders the school insights template for one summary
func (s *InsightService) BuildPrompt(summary survey.SchoolSummary) (string, error) {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	return s.prompts.RenderPrompt(ai.SchoolInsightsPrompt, map[string]string{
		"SUMMARY_JSON":       string(summaryJSON),
		"BENCHMARK_ANXIETY":  formatPercent(s.benchmarks.Anxiety),
		"BENCHMARK_PRESSURE": formatPercent(s.benchmarks.Pressure),
		"BENCHMARK_SUPPORT":  formatPercent(s.benchmarks.Support),
	})
}

// ParseInsights extracts the narrative object from raw model output, filling absent fields with
// fallback text
func ParseInsights(content string) (*survey.AIInsights, error) {
	object := ai.ExtractJSONObject(content)
	if object == "" {
		return nil, core.ErrMalformedInsights
	}

	var parsed struct {
		ExecutiveSummary string `json:"executive_summary"`
		Strengths        string `json:"strengths"`
		Intervention     string `json:"intervention"`
	}
	if err := json.Unmarshal([]byte(object), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedInsights, err)
	}

	return &survey.AIInsights{
		ExecutiveSummary: orDefault(parsed.ExecutiveSummary, FallbackSummary),
		Strengths:        orDefault(parsed.Strengths, FallbackStrengths),
		Intervention:     orDefault(parsed.Intervention, FallbackIntervention),
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
