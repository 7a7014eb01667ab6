package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	l := DefaultLayout

	assert.Equal(t, 8, l.Column(0))
	assert.Equal(t, 23, l.Column(15))
	assert.Equal(t, 24, l.Column(16))
	assert.Equal(t, 27, l.Column(19))

	assert.False(t, l.IsReversed(0))
	assert.False(t, l.IsReversed(15))
	assert.True(t, l.IsReversed(16))
	assert.True(t, l.IsReversed(SupportQuestion))
	assert.False(t, l.IsReversed(QuestionCount))
}

func TestDominantCategory(t *testing.T) {
	tests := []struct {
		name    string
		metrics SchoolMetrics
		want    StressCategory
	}{
		{"all zero keeps balanced", SchoolMetrics{}, CategoryBalanced},
		{"clear winner", SchoolMetrics{PctMild: 20, PctMod: 50, PctHigh: 30}, CategoryModerate},
		{"tie keeps less severe", SchoolMetrics{PctMild: 40, PctSevere: 40, PctHigh: 20}, CategoryMild},
		{"severe", SchoolMetrics{PctSevere: 100}, CategorySevere},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.metrics.DominantCategory())
		})
	}
}

func TestOverview(t *testing.T) {
	m := SchoolMetrics{SchoolName: "Oak", TotalStudents: 4, PctMild: 25, PctHigh: 75}

	o := m.Overview()
	assert.Equal(t, CategoryHigh, o.DominantCategory)
	assert.Equal(t, "Oak", o.SchoolName)

	raw, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"school_name":"Oak"`)
	assert.Contains(t, string(raw), `"dominant_category":"High"`)
}

func TestSummaryAndWithoutStudents(t *testing.T) {
	m := SchoolMetrics{
		SchoolName:    "Oak",
		TotalStudents: 2,
		AvgScore:      61.5,
		PctMod:        50,
		PctSupport:    12.5,
		Students:      []StudentRecord{{SchoolName: "Oak"}, {SchoolName: "Oak"}},
	}

	s := m.Summary()
	assert.Equal(t, "Oak", s.School)
	assert.Equal(t, 2, s.Students)
	assert.Equal(t, 50.0, s.PctModerate)
	assert.Equal(t, 12.5, s.PctSupport)

	stripped := m.WithoutStudents()
	assert.Nil(t, stripped.Students)
	assert.Len(t, m.Students, 2)
}

func TestBenchmarksCompare(t *testing.T) {
	m := SchoolMetrics{PctAnxiety: 50, PctPressure: 66, PctSupport: 33.3}

	rows := NationalBenchmarks.Compare(m)
	require.Len(t, rows, 3)

	assert.Equal(t, BenchmarkComparison{Indicator: "Exam Anxiety", National: 81, School: 50, Delta: -31}, rows[0])
	assert.Equal(t, "Academic Pressure", rows[1].Indicator)
	assert.Equal(t, 0.0, rows[1].Delta)
	assert.Equal(t, "Lack of Support", rows[2].Indicator)
	assert.InDelta(t, 5.3, rows[2].Delta, 1e-9)
}
