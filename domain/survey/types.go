package survey

// StressCategory buckets a student's total score.
type StressCategory string

const (
	CategoryBalanced StressCategory = "Balanced"
	CategoryMild     StressCategory = "Mild"
	CategoryModerate StressCategory = "Moderate"
	CategoryHigh     StressCategory = "High"
	CategorySevere   StressCategory = "Severe"
)

// Categories lists the stress categories from least to most severe.
var Categories = []StressCategory{
	CategoryBalanced,
	CategoryMild,
	CategoryModerate,
	CategoryHigh,
	CategorySevere,
}

// StudentRecord is one surveyed student with answers in their final, scored form.
type StudentRecord struct {
	SchoolName string             `json:"school_name"`
	Answers    [QuestionCount]int `json:"answers"`
	TotalScore int                `json:"total_score"`
	Category   StressCategory     `json:"category"`
}

// SchoolMetrics aggregates the students of one school.
type SchoolMetrics struct {
	SchoolName    string  `json:"school_name"`
	TotalStudents int     `json:"total_students"`
	AvgScore      float64 `json:"avg_score"`

	PctBalanced float64 `json:"pct_balanced"`
	PctMild     float64 `json:"pct_mild"`
	PctMod      float64 `json:"pct_mod"`
	PctHigh     float64 `json:"pct_high"`
	PctSevere   float64 `json:"pct_severe"`

	PctAnxiety  float64 `json:"pct_anxiety"`  // Often/Always on Q1
	PctPressure float64 `json:"pct_pressure"` // Often/Always on Q5
	PctSupport  float64 `json:"pct_support"`  // Often/Always on Q19 (original scale)

	Students []StudentRecord `json:"students,omitempty"`
}

// CategoryPct returns the percentage of students in category c.
func (m SchoolMetrics) CategoryPct(c StressCategory) float64 {
	switch c {
	case CategoryBalanced:
		return m.PctBalanced
	case CategoryMild:
		return m.PctMild
	case CategoryModerate:
		return m.PctMod
	case CategoryHigh:
		return m.PctHigh
	case CategorySevere:
		return m.PctSevere
	}
	return 0
}

// DominantCategory returns the category holding the largest share; ties keep the less severe one.
func (m SchoolMetrics) DominantCategory() StressCategory {
	best := CategoryBalanced
	for _, c := range Categories[1:] {
		if m.CategoryPct(c) > m.CategoryPct(best) {
			best = c
		}
	}
	return best
}

// WithoutStudents returns a copy with the per-student records dropped.
func (m SchoolMetrics) WithoutStudents() SchoolMetrics {
	m.Students = nil
	return m
}

// Overview pairs the metrics with their dominant category, the way the school list shows them.
func (m SchoolMetrics) Overview() SchoolOverview {
	return SchoolOverview{SchoolMetrics: m, DominantCategory: m.DominantCategory()}
}

// SchoolOverview is a school list entry.
type SchoolOverview struct {
	SchoolMetrics
	DominantCategory StressCategory `json:"dominant_category"`
}

// Summary returns the subset of metrics handed to the narrative generator.
func (m SchoolMetrics) Summary() SchoolSummary {
	return SchoolSummary{
		School:      m.SchoolName,
		Students:    m.TotalStudents,
		AvgScore:    m.AvgScore,
		PctBalanced: m.PctBalanced,
		PctMild:     m.PctMild,
		PctModerate: m.PctMod,
		PctHigh:     m.PctHigh,
		PctSevere:   m.PctSevere,
		PctAnxiety:  m.PctAnxiety,
		PctPressure: m.PctPressure,
		PctSupport:  m.PctSupport,
	}
}

// SchoolSummary is the narrative generator's input.
type SchoolSummary struct {
	School      string  `json:"school"`
	Students    int     `json:"students"`
	AvgScore    float64 `json:"avg_score"`
	PctBalanced float64 `json:"pct_balanced"`
	PctMild     float64 `json:"pct_mild"`
	PctModerate float64 `json:"pct_moderate"`
	PctHigh     float64 `json:"pct_high"`
	PctSevere   float64 `json:"pct_severe"`
	PctAnxiety  float64 `json:"pct_anxiety"`
	PctPressure float64 `json:"pct_pressure"`
	PctSupport  float64 `json:"pct_support"`
}

// AIInsights is the generated narrative, used verbatim downstream.
type AIInsights struct {
	ExecutiveSummary string `json:"executive_summary"`
	Strengths        string `json:"strengths"`
	Intervention     string `json:"intervention"`
}

// SchoolReport pairs a school's metrics with its narrative, if one was produced.
type SchoolReport struct {
	Metrics          SchoolMetrics         `json:"metrics"`
	DominantCategory StressCategory        `json:"dominant_category"`
	Insights         *AIInsights           `json:"insights,omitempty"`
	Benchmarks       []BenchmarkComparison `json:"benchmarks"`
	Error            string                `json:"error,omitempty"`
}
