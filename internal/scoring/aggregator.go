package scoring

import (
	"context"

	"golang.org/x/sync/errgroup"

	"wellbeing/domain/survey"
)

// oftenOrAlways is the lowest answer counted as a high-frequency response.
const oftenOrAlways = 4

// Aggregate computes metrics for every school with at least one student, in first-seen order.
func Aggregate(b *Buckets) []survey.SchoolMetrics {
	return AggregateWithLayout(b, survey.DefaultLayout)
}

// AggregateWithLayout is Aggregate for a non-default column layout.
func AggregateWithLayout(b *Buckets, layout survey.Layout) []survey.SchoolMetrics {
	if b == nil {
		return nil
	}
	out := make([]survey.SchoolMetrics, 0, b.Len())
	for _, school := range b.order {
		if m, ok := aggregateSchool(school, b.students[school], layout); ok {
			out = append(out, m)
		}
	}
	return out
}

// AggregateConcurrent computes per-school metrics on up to workers goroutines. Results are written
// to their first-seen slot, so the output matches AggregateWithLayout.
func AggregateConcurrent(ctx context.Context, b *Buckets, layout survey.Layout, workers int) ([]survey.SchoolMetrics, error) {
	if b == nil {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}

	slots := make([]survey.SchoolMetrics, b.Len())
	present := make([]bool, b.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, school := range b.order {
		i, school := i, school
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i], present[i] = aggregateSchool(school, b.students[school], layout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]survey.SchoolMetrics, 0, len(slots))
	for i, m := range slots {
		if present[i] {
			out = append(out, m)
		}
	}
	return out, nil
}

func aggregateSchool(school string, students []survey.StudentRecord, layout survey.Layout) (survey.SchoolMetrics, bool) {
	total := len(students)
	if total == 0 {
		return survey.SchoolMetrics{}, false
	}

	sum := 0
	counts := make(map[survey.StressCategory]int, len(survey.Categories))
	for _, s := range students {
		sum += s.TotalScore
		counts[s.Category]++
	}

	return survey.SchoolMetrics{
		SchoolName:    school,
		TotalStudents: total,
		AvgScore:      Round1(float64(sum) / float64(total)),
		PctBalanced:   pct(counts[survey.CategoryBalanced], total),
		PctMild:       pct(counts[survey.CategoryMild], total),
		PctMod:        pct(counts[survey.CategoryModerate], total),
		PctHigh:       pct(counts[survey.CategoryHigh], total),
		PctSevere:     pct(counts[survey.CategorySevere], total),
		PctAnxiety:    pct(countHighResponses(students, survey.AnxietyQuestion, layout), total),
		PctPressure:   pct(countHighResponses(students, survey.PressureQuestion, layout), total),
		PctSupport:    pct(countHighResponses(students, survey.SupportQuestion, layout), total),
		Students:      students,
	}, true
}

// OriginalAnswer recovers the value the student actually ticked for answer index q.
func OriginalAnswer(rec survey.StudentRecord, q int, layout survey.Layout) int {
	v := rec.Answers[q]
	if layout.IsReversed(q) {
		return Reverse(v)
	}
	return v
}

// IsHighResponse reports an Often/Always answer on the original scale.
func IsHighResponse(rec survey.StudentRecord, q int, layout survey.Layout) bool {
	return OriginalAnswer(rec, q, layout) >= oftenOrAlways
}

func countHighResponses(students []survey.StudentRecord, q int, layout survey.Layout) int {
	n := 0
	for _, s := range students {
		if IsHighResponse(s, q, layout) {
			n++
		}
	}
	return n
}
