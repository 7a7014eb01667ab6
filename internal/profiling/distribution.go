package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// AnalyzeDistribution computes summary statistics for a sample. An empty sample yields a zero profile.
func (da *DistributionAnalyzer) AnalyzeDistribution(data []float64) (ScoreProfile, error) {
	profile := ScoreProfile{Count: len(data)}
	if len(data) == 0 {
		return profile, nil
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return profile, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return profile, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return profile, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return profile, err
	}

	// Sample statistics need at least two observations
	stdDev := 0.0
	skewness := 0.0
	if len(data) > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return profile, err
		}
		if stdDev > 0 {
			skewness = stat.Skew(data, nil)
		}
	}

	// Quantiles from the empirical CDF; gonum needs sorted input
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	profile.Mean = round2(mean)
	profile.StdDev = round2(stdDev)
	profile.Median = median
	profile.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	profile.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	profile.Min = min
	profile.Max = max
	profile.Skewness = round2(skewness)
	return profile, nil
}

func round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round(x*100) / 100
}
