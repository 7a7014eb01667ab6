package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"wellbeing/adapters/excel"
	"wellbeing/domain/core"
	"wellbeing/domain/survey"
	"wellbeing/internal"
	apperrors "wellbeing/internal/errors"
)

type mockInsights struct {
	mock.Mock
	mu sync.Mutex
}

func (m *mockInsights) GenerateInsights(ctx context.Context, summary survey.SchoolSummary) (*survey.AIInsights, error) {
	m.mu.Lock()
	args := m.Called(ctx, summary)
	m.mu.Unlock()
	if v := args.Get(0); v != nil {
		return v.(*survey.AIInsights), args.Error(1)
	}
	return nil, args.Error(1)
}

// surveyCSV builds a sheet with the school in column 1 and every answer set to the given value
func surveyCSV(rows map[string][]int, order []string) []byte {
	var b strings.Builder
	b.WriteString("id,sname,a,b,c,d,e,f")
	for q := 1; q <= survey.QuestionCount; q++ {
		fmt.Fprintf(&b, ",Q%d", q)
	}
	b.WriteString("\n")
	for _, school := range order {
		for _, v := range rows[school] {
			fmt.Fprintf(&b, "1,%s,,,,,,", school)
			for q := 0; q < survey.QuestionCount; q++ {
				fmt.Fprintf(&b, ",%d", v)
			}
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

func newService(gen *mockInsights) *ReportService {
	logger := internal.NewNopLogger()
	cfg := ReportServiceConfig{
		Decoder:     excel.NewDataReader(excel.DefaultReaderConfig(), logger),
		Layout:      survey.DefaultLayout,
		Benchmarks:  survey.NationalBenchmarks,
		Concurrency: 2,
		Logger:      logger,
	}
	if gen != nil {
		cfg.Insights = gen
	}
	return NewReportService(cfg)
}

func TestAnalyze(t *testing.T) {
	svc := newService(nil)
	data := surveyCSV(map[string][]int{
		"Oak":  {3, 3},
		"Pine": {5},
	}, []string{"Oak", "Pine"})

	analysis, err := svc.Analyze(context.Background(), "survey.csv", data)
	require.NoError(t, err)

	assert.Equal(t, "survey.csv", analysis.FileName)
	assert.Equal(t, 3, analysis.TotalStudents)
	assert.Equal(t, 1, analysis.Stats.SchoolColumn)
	require.Len(t, analysis.Schools, 2)
	assert.Equal(t, "Oak", analysis.Schools[0].SchoolName)
	assert.Equal(t, 60.0, analysis.Schools[0].AvgScore)
	assert.Equal(t, 100.0, analysis.Schools[0].PctMild)
	assert.Equal(t, "Pine", analysis.Schools[1].SchoolName)

	_, err = core.ParseUploadID(analysis.ID.String())
	assert.NoError(t, err)

	profile, err := analysis.Profile("Oak")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Scores.Count)

	_, err = analysis.School("Birch")
	assert.ErrorIs(t, err, core.ErrSchoolNotFound)
	assert.True(t, core.IsNotFoundError(err))
	assert.Contains(t, err.Error(), `"Birch"`)

	_, err = analysis.Profile("Birch")
	assert.ErrorIs(t, err, core.ErrSchoolNotFound)
}

func TestAnalyzeErrors(t *testing.T) {
	svc := newService(nil)

	_, err := svc.Analyze(context.Background(), "notes.txt", []byte("x"))
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
	assert.Equal(t, apperrors.CodeUnsupportedFormat, apperrors.GetCode(err))

	_, err = svc.Analyze(context.Background(), "survey.csv", []byte("id,sname\n"))
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestAnalyzeNoSchoolsIsNotAnError(t *testing.T) {
	svc := newService(nil)

	analysis, err := svc.Analyze(context.Background(), "survey.csv", []byte("id,sname\n1,   \n"))
	require.NoError(t, err)
	assert.Empty(t, analysis.Schools)
	assert.Equal(t, 0, analysis.TotalStudents)
}

func TestGenerateInsightsUnavailable(t *testing.T) {
	svc := newService(nil)
	assert.False(t, svc.InsightsEnabled())

	_, err := svc.GenerateInsights(context.Background(), survey.SchoolMetrics{SchoolName: "Oak"})
	assert.ErrorIs(t, err, core.ErrInsightsUnavailable)
	assert.Equal(t, 503, apperrors.HTTPStatus(err))

	_, err = svc.GenerateAll(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrInsightsUnavailable)
}

func TestGenerateInsights(t *testing.T) {
	gen := &mockInsights{}
	want := &survey.AIInsights{ExecutiveSummary: "Calm", Strengths: "Support", Intervention: "None"}
	metrics := survey.SchoolMetrics{SchoolName: "Oak", TotalStudents: 2, PctAnxiety: 50,
		PctMild: 50, PctMod: 50, Students: []survey.StudentRecord{{SchoolName: "Oak"}}}
	gen.On("GenerateInsights", mock.Anything, metrics.Summary()).Return(want, nil)

	report, err := newService(gen).GenerateInsights(context.Background(), metrics)
	require.NoError(t, err)

	assert.Equal(t, want, report.Insights)
	assert.Nil(t, report.Metrics.Students)
	assert.Equal(t, survey.CategoryMild, report.DominantCategory)
	require.Len(t, report.Benchmarks, 3)
	assert.Equal(t, -31.0, report.Benchmarks[0].Delta)
	gen.AssertExpectations(t)
}

func TestGenerateInsightsUpstreamFailure(t *testing.T) {
	gen := &mockInsights{}
	gen.On("GenerateInsights", mock.Anything, mock.Anything).Return(nil, errors.New("503 from upstream"))

	_, err := newService(gen).GenerateInsights(context.Background(), survey.SchoolMetrics{SchoolName: "Oak"})
	require.Error(t, err)
	assert.Equal(t, 502, apperrors.HTTPStatus(err))

	gen2 := &mockInsights{}
	gen2.On("GenerateInsights", mock.Anything, mock.Anything).Return(nil, core.ErrMalformedInsights)
	_, err = newService(gen2).GenerateInsights(context.Background(), survey.SchoolMetrics{SchoolName: "Oak"})
	assert.ErrorIs(t, err, core.ErrMalformedInsights)
	assert.Equal(t, 502, apperrors.HTTPStatus(err))
}

func TestGenerateAllRecordsPerSchoolErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &mockInsights{}
	schools := []survey.SchoolMetrics{
		{SchoolName: "Oak", TotalStudents: 1},
		{SchoolName: "Pine", TotalStudents: 1},
		{SchoolName: "Elm", TotalStudents: 1},
	}
	for _, m := range schools {
		if m.SchoolName == "Pine" {
			gen.On("GenerateInsights", mock.Anything, m.Summary()).Return(nil, core.ErrMalformedInsights)
			continue
		}
		gen.On("GenerateInsights", mock.Anything, m.Summary()).
			Return(&survey.AIInsights{ExecutiveSummary: m.SchoolName}, nil)
	}

	reports, err := newService(gen).GenerateAll(context.Background(), schools)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	for i, r := range reports {
		assert.Equal(t, schools[i].SchoolName, r.Metrics.SchoolName)
	}
	assert.Equal(t, "Oak", reports[0].Insights.ExecutiveSummary)
	assert.Nil(t, reports[1].Insights)
	assert.Contains(t, reports[1].Error, core.ErrMalformedInsights.Error())
	assert.Len(t, reports[1].Benchmarks, 3)
	assert.Equal(t, "Elm", reports[2].Insights.ExecutiveSummary)
	gen.AssertNumberOfCalls(t, "GenerateInsights", 3)
}

func TestGenerateAllCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &mockInsights{}
	gen.On("GenerateInsights", mock.Anything, mock.Anything).Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := newService(gen).GenerateAll(ctx, []survey.SchoolMetrics{{SchoolName: "Oak"}})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, reports, 1)
	assert.NotEmpty(t, reports[0].Error)
}
