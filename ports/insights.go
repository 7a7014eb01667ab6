package ports

import (
	"context"

	"wellbeing/domain/survey"
)

// InsightGenerator produces the narrative for one school's summary
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, summary survey.SchoolSummary) (*survey.AIInsights, error)
}

// InsightFunc adapts a plain function to InsightGenerator
type InsightFunc func(ctx context.Context, summary survey.SchoolSummary) (*survey.AIInsights, error)

func (f InsightFunc) GenerateInsights(ctx context.Context, summary survey.SchoolSummary) (*survey.AIInsights, error) {
	return f(ctx, summary)
}
