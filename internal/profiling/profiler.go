package profiling

import (
	"wellbeing/domain/survey"
	"wellbeing/internal/scoring"
)

// SchoolProfiler builds drill-down profiles from normalized student records
type SchoolProfiler struct {
	analyzer *DistributionAnalyzer
	layout   survey.Layout
}

// NewSchoolProfiler creates a profiler for the given survey layout
func NewSchoolProfiler(layout survey.Layout) *SchoolProfiler {
	return &SchoolProfiler{
		analyzer: NewDistributionAnalyzer(),
		layout:   layout,
	}
}

// ProfileSchool analyzes one school's score distribution and per-question responses
func (p *SchoolProfiler) ProfileSchool(school string, students []survey.StudentRecord) (SchoolProfile, error) {
	totals := make([]float64, len(students))
	for i, rec := range students {
		totals[i] = float64(rec.TotalScore)
	}

	scores, err := p.analyzer.AnalyzeDistribution(totals)
	if err != nil {
		return SchoolProfile{}, err
	}

	questions := make([]QuestionProfile, survey.QuestionCount)
	for q := 0; q < survey.QuestionCount; q++ {
		questions[q] = p.profileQuestion(q, students)
	}

	return SchoolProfile{
		SchoolName: school,
		Scores:     scores,
		Questions:  questions,
	}, nil
}

// ProfileAll profiles every school in bucket order
func (p *SchoolProfiler) ProfileAll(b *scoring.Buckets) ([]SchoolProfile, error) {
	schools := b.Schools()
	out := make([]SchoolProfile, 0, len(schools))
	for _, school := range schools {
		profile, err := p.ProfileSchool(school, b.Students(school))
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, nil
}

func (p *SchoolProfiler) profileQuestion(q int, students []survey.StudentRecord) QuestionProfile {
	qp := QuestionProfile{Question: q + 1, Reversed: p.layout.IsReversed(q)}
	if len(students) == 0 {
		return qp
	}

	var stored, original, high int
	for _, rec := range students {
		stored += rec.Answers[q]
		original += scoring.OriginalAnswer(rec, q, p.layout)
		if scoring.IsHighResponse(rec, q, p.layout) {
			high++
		}
	}

	n := float64(len(students))
	qp.MeanAnswer = round2(float64(stored) / n)
	qp.OriginalMean = round2(float64(original) / n)
	qp.OftenOrAlways = scoring.Round1(float64(high) / n * 100)
	return qp
}
