package survey

import "math"

// Benchmarks holds national reference rates (percent of students answering Often/Always).
type Benchmarks struct {
	Anxiety  float64 `json:"anxiety" yaml:"anxiety"`
	Pressure float64 `json:"pressure" yaml:"pressure"`
	Support  float64 `json:"support" yaml:"support"`
}

// NationalBenchmarks are the published reference rates the reports compare against.
var NationalBenchmarks = Benchmarks{
	Anxiety:  81,
	Pressure: 66,
	Support:  28,
}

// BenchmarkComparison sets one school indicator against its national rate.
type BenchmarkComparison struct {
	Indicator string  `json:"indicator"`
	National  float64 `json:"national"`
	School    float64 `json:"school"`
	Delta     float64 `json:"delta"`
}

// Compare lines up the school's indicators with the benchmarks.
func (b Benchmarks) Compare(m SchoolMetrics) []BenchmarkComparison {
	rows := []struct {
		name     string
		national float64
		school   float64
	}{
		{"Exam Anxiety", b.Anxiety, m.PctAnxiety},
		{"Academic Pressure", b.Pressure, m.PctPressure},
		{"Lack of Support", b.Support, m.PctSupport},
	}

	out := make([]BenchmarkComparison, 0, len(rows))
	for _, r := range rows {
		out = append(out, BenchmarkComparison{
			Indicator: r.name,
			National:  r.national,
			School:    r.school,
			Delta:     roundTenth(r.school - r.national),
		})
	}
	return out
}

func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
