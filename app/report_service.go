package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"wellbeing/domain/core"
	"wellbeing/domain/survey"
	"wellbeing/internal"
	"wellbeing/internal/errors"
	"wellbeing/internal/profiling"
	"wellbeing/internal/scoring"
	"wellbeing/ports"
)

const defaultInsightConcurrency = 3

// Analysis is the scored result of one uploaded spreadsheet
type Analysis struct {
	ID            core.UploadID             `json:"upload_id"`
	FileName      string                    `json:"file_name"`
	Schools       []survey.SchoolMetrics    `json:"schools"`
	Profiles      []profiling.SchoolProfile `json:"-"`
	TotalStudents int                       `json:"total_students"`
	Stats         scoring.NormalizeStats    `json:"stats"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// School looks up one school's metrics by name
func (a *Analysis) School(name string) (survey.SchoolMetrics, error) {
	for _, m := range a.Schools {
		if m.SchoolName == name {
			return m, nil
		}
	}
	return survey.SchoolMetrics{}, schoolNotFound(name)
}

// Profile looks up one school's drill-down profile by name
func (a *Analysis) Profile(name string) (profiling.SchoolProfile, error) {
	for _, p := range a.Profiles {
		if p.SchoolName == name {
			return p, nil
		}
	}
	return profiling.SchoolProfile{}, schoolNotFound(name)
}

func schoolNotFound(name string) error {
	return fmt.Errorf("%w: %q", core.ErrSchoolNotFound, name)
}

// ReportServiceConfig bundles the collaborators of a ReportService
type ReportServiceConfig struct {
	Decoder     ports.GridDecoder
	Insights    ports.InsightGenerator // nil when no AI provider is configured
	Layout      survey.Layout
	Benchmarks  survey.Benchmarks
	Concurrency int
	Logger      *internal.Logger
}

// ReportService runs the decode, score and narrate pipeline
type ReportService struct {
	decoder     ports.GridDecoder
	insights    ports.InsightGenerator
	normalizer  *scoring.Normalizer
	profiler    *profiling.SchoolProfiler
	layout      survey.Layout
	benchmarks  survey.Benchmarks
	concurrency int
	logger      *internal.Logger
}

// NewReportService creates the report pipeline
func NewReportService(cfg ReportServiceConfig) *ReportService {
	logger := cfg.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = defaultInsightConcurrency
	}
	return &ReportService{
		decoder:     cfg.Decoder,
		insights:    cfg.Insights,
		normalizer:  scoring.NewNormalizer(cfg.Layout, logger),
		profiler:    profiling.NewSchoolProfiler(cfg.Layout),
		layout:      cfg.Layout,
		benchmarks:  cfg.Benchmarks,
		concurrency: concurrency,
		logger:      logger,
	}
}

// InsightsEnabled reports whether a narrative generator is wired
func (s *ReportService) InsightsEnabled() bool {
	return s.insights != nil
}

// Analyze decodes an uploaded file and computes metrics and profiles for every school.
// A file whose rows are all filtered out yields an Analysis with no schools, not an error.
func (s *ReportService) Analyze(ctx context.Context, filename string, data []byte) (*Analysis, error) {
	start := time.Now()

	grid, err := s.decoder.Decode(ctx, filename, data)
	if err != nil {
		s.logAnalyzeFailure(filename, err)
		return nil, errors.Wrapf(err, "failed to read %s", filename)
	}

	buckets, stats, err := s.normalizer.Normalize(grid)
	if err != nil {
		s.logAnalyzeFailure(filename, err)
		return nil, errors.Wrapf(err, "failed to process %s", filename)
	}

	metrics, err := scoring.AggregateConcurrent(ctx, buckets, s.layout, runtime.GOMAXPROCS(0))
	if err != nil {
		return nil, err
	}

	profiles, err := s.profiler.ProfileAll(buckets)
	if err != nil {
		return nil, errors.Wrap(err, "failed to profile scores")
	}

	total := 0
	for _, m := range metrics {
		total += m.TotalStudents
	}

	analysis := &Analysis{
		ID:            core.NewUploadID(),
		FileName:      filename,
		Schools:       metrics,
		Profiles:      profiles,
		TotalStudents: total,
		Stats:         stats,
		CreatedAt:     time.Now().UTC(),
	}

	s.logger.Info("[ReportService] Analyzed %s: %d schools, %d students in %v",
		filename, len(metrics), total, time.Since(start))
	if len(metrics) == 0 {
		s.logger.Warn("[ReportService] No data found in %s", filename)
	}
	return analysis, nil
}

// GenerateInsights produces the narrative report for one school
func (s *ReportService) GenerateInsights(ctx context.Context, metrics survey.SchoolMetrics) (*survey.SchoolReport, error) {
	if s.insights == nil {
		return nil, errors.WithCode(errors.CodeUnavailable, core.ErrInsightsUnavailable)
	}

	report := s.newReport(metrics)

	insights, err := s.insights.GenerateInsights(ctx, metrics.Summary())
	if err != nil {
		return report, s.wrapInsightError(err, metrics.SchoolName)
	}
	report.Insights = insights
	return report, nil
}

// GenerateAll narrates every school with bounded concurrency. Results are index-aligned with the
// input; a failing school carries its message in SchoolReport.Error and does not fail the batch.
func (s *ReportService) GenerateAll(ctx context.Context, schools []survey.SchoolMetrics) ([]survey.SchoolReport, error) {
	if s.insights == nil {
		return nil, errors.WithCode(errors.CodeUnavailable, core.ErrInsightsUnavailable)
	}

	reports := make([]survey.SchoolReport, len(schools))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, m := range schools {
		i, m := i, m
		g.Go(func() error {
			report, err := s.GenerateInsights(gctx, m)
			if err != nil {
				s.logger.Warn("[ReportService] Insights failed for %q: %v", m.SchoolName, err)
				failed := s.newReport(m)
				failed.Error = err.Error()
				reports[i] = *failed
				return nil
			}
			reports[i] = *report
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return reports, err
	}
	return reports, nil
}

func (s *ReportService) newReport(m survey.SchoolMetrics) *survey.SchoolReport {
	return &survey.SchoolReport{
		Metrics:          m.WithoutStudents(),
		DominantCategory: m.DominantCategory(),
		Benchmarks:       s.benchmarks.Compare(m),
	}
}

// logAnalyzeFailure keeps rejected uploads out of the error log
func (s *ReportService) logAnalyzeFailure(filename string, err error) {
	if core.IsInputError(err) {
		s.logger.Debug("[ReportService] Rejected %s: %v", filename, err)
		return
	}
	s.logger.Error("[ReportService] Failed to analyze %s: %v", filename, err)
}

func (s *ReportService) wrapInsightError(err error, school string) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.IsAppError(err) || stderrors.Is(err, core.ErrMalformedInsights) || stderrors.Is(err, core.ErrInsightsUnavailable) {
		return errors.Wrapf(err, "insights for %s", school)
	}
	return errors.ExternalServiceError("AI", err)
}
