// Package scoring turns raw survey grids into scored student records and per-school metrics.
package scoring

import (
	"math"

	"wellbeing/domain/survey"
)

const (
	minAnswer = 1
	maxAnswer = 5
)

// Clamp converts a cell to an answer in [1,5]. Unparseable values and anything below 1 become 1,
// values above 5 become 5, everything else is rounded half up.
func Clamp(c survey.Cell) int {
	return clampFloat(c.Float())
}

func clampFloat(v float64) int {
	if math.IsNaN(v) || v < minAnswer {
		return minAnswer
	}
	if v > maxAnswer {
		return maxAnswer
	}
	return int(math.Floor(v + 0.5))
}

// Reverse flips a reverse-scored answer: 1<->5, 2<->4, 3 stays.
func Reverse(v int) int {
	return maxAnswer + minAnswer - v
}

// Classify maps a total score to its stress category.
func Classify(total int) survey.StressCategory {
	switch {
	case total <= 40:
		return survey.CategoryBalanced
	case total <= 65:
		return survey.CategoryMild
	case total <= 85:
		return survey.CategoryModerate
	case total <= 90:
		return survey.CategoryHigh
	default:
		return survey.CategorySevere
	}
}

// Round1 rounds to one decimal place, halves rounding up.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func pct(n, total int) float64 {
	return Round1(float64(n) / float64(total) * 100)
}
