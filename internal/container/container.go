package container

import (
	"context"
	stderrors "errors"
	"fmt"

	"wellbeing/adapters/excel"
	"wellbeing/adapters/llm"
	"wellbeing/app"
	"wellbeing/domain/core"
	"wellbeing/domain/survey"
	"wellbeing/internal"
	"wellbeing/internal/config"
	"wellbeing/internal/session"
	"wellbeing/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	Reader   *excel.DataReader
	Insights ports.InsightGenerator // nil when AI is not configured

	// Services
	Reports *app.ReportService
	Store   *session.Store[*app.Analysis]
}

// New creates a new dependency injection container
func New(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	readerConfig := excel.DefaultReaderConfig()
	if cfg.Server.MaxUploadBytes > 0 {
		readerConfig.MaxBytes = cfg.Server.MaxUploadBytes
	}
	c.Reader = excel.NewDataReader(readerConfig, logger)

	if err := c.initInsights(ctx); err != nil {
		return nil, err
	}

	c.Reports = app.NewReportService(app.ReportServiceConfig{
		Decoder:     c.Reader,
		Insights:    c.Insights,
		Layout:      survey.DefaultLayout,
		Benchmarks:  cfg.Benchmarks,
		Concurrency: cfg.AI.Concurrency,
		Logger:      logger,
	})
	c.Store = session.NewStore[*app.Analysis](cfg.Session.TTL, cfg.Session.MaxUploads, logger)

	logger.Debug("[Container] Initialized (insights enabled: %v)", c.Insights != nil)
	return c, nil
}

// initInsights wires the narrative generator. A missing provider or key leaves it nil.
func (c *Container) initInsights(ctx context.Context) error {
	gen, err := llm.NewInsightGenerator(ctx, c.Config, c.Logger)
	if stderrors.Is(err, core.ErrInsightsUnavailable) {
		c.Logger.Warn("[Container] AI insights disabled: set GEMINI_API_KEY or OPENAI_API_KEY to enable them")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to initialize insight generator: %w", err)
	}
	c.Insights = gen
	return nil
}
