package scoring

import (
	"strings"

	"wellbeing/domain/core"
	"wellbeing/domain/survey"
	"wellbeing/internal"
)

// Buckets holds student records grouped by school in first-seen order.
type Buckets struct {
	order    []string
	students map[string][]survey.StudentRecord
}

func newBuckets() *Buckets {
	return &Buckets{students: make(map[string][]survey.StudentRecord)}
}

func (b *Buckets) add(rec survey.StudentRecord) {
	if _, ok := b.students[rec.SchoolName]; !ok {
		b.order = append(b.order, rec.SchoolName)
	}
	b.students[rec.SchoolName] = append(b.students[rec.SchoolName], rec)
}

// Schools returns school names in first-seen order.
func (b *Buckets) Schools() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Students returns the records of one school in row order.
func (b *Buckets) Students(school string) []survey.StudentRecord {
	return b.students[school]
}

// Len returns the number of schools.
func (b *Buckets) Len() int {
	return len(b.order)
}

// NormalizeStats counts what the normalizer dropped or coerced. Diagnostics only.
type NormalizeStats struct {
	DataRows       int `json:"data_rows"`
	EmptyRows      int `json:"empty_rows"`
	BlankNameRows  int `json:"blank_name_rows"`
	UnknownSchools int `json:"unknown_school_rows"`
	ClampedCells   int `json:"clamped_cells"`
	SchoolColumn   int `json:"school_column"`
}

// Normalizer converts raw grids into scored student records.
type Normalizer struct {
	layout survey.Layout
	logger *internal.Logger
}

// NewNormalizer creates a normalizer for the given column layout.
func NewNormalizer(layout survey.Layout, logger *internal.Logger) *Normalizer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Normalizer{layout: layout, logger: logger}
}

// Normalize uses the default survey layout.
func Normalize(grid survey.RawGrid) (*Buckets, error) {
	b, _, err := NewNormalizer(survey.DefaultLayout, nil).Normalize(grid)
	return b, err
}

// Normalize groups the grid's data rows by school. It fails only when the grid has no data rows;
// malformed answer cells are clamped.
func (n *Normalizer) Normalize(grid survey.RawGrid) (*Buckets, NormalizeStats, error) {
	var stats NormalizeStats
	if len(grid) < 2 {
		return nil, stats, core.ErrEmptyDataset
	}

	nameCol := n.schoolColumn(grid[0])
	stats.SchoolColumn = nameCol
	buckets := newBuckets()

	for _, row := range grid[1:] {
		if len(row) == 0 {
			stats.EmptyRows++
			continue
		}
		stats.DataRows++

		cell := cellAt(row, nameCol)
		raw := survey.UnknownSchool
		if cell.Truthy() {
			raw = cell.String()
		} else {
			stats.UnknownSchools++
		}
		name := strings.TrimSpace(raw)
		if name == "" {
			stats.BlankNameRows++
			continue
		}

		rec, clamped := n.score(name, row)
		stats.ClampedCells += clamped
		buckets.add(rec)
	}

	n.logger.Debug("[Normalizer] %d data rows -> %d schools (school column %d, %d blank names, %d unknown, %d cells clamped)",
		stats.DataRows, buckets.Len(), nameCol, stats.BlankNameRows, stats.UnknownSchools, stats.ClampedCells)

	return buckets, stats, nil
}

// schoolColumn finds the school-name column by header label, falling back to the layout default.
func (n *Normalizer) schoolColumn(header []survey.Cell) int {
	for i, h := range header {
		label := strings.ToLower(strings.TrimSpace(h.String()))
		for _, want := range survey.SchoolHeaderLabels {
			if label == want {
				return i
			}
		}
	}
	return n.layout.FallbackSchool
}

func (n *Normalizer) score(school string, row []survey.Cell) (survey.StudentRecord, int) {
	rec := survey.StudentRecord{SchoolName: school}
	clamped := 0
	answered := n.layout.NormalCount + n.layout.ReversedCount

	for q := 0; q < answered && q < survey.QuestionCount; q++ {
		cell := cellAt(row, n.layout.Column(q))
		v := Clamp(cell)
		if !isExactAnswer(cell, v) {
			clamped++
		}
		if n.layout.IsReversed(q) {
			v = Reverse(v)
		}
		rec.Answers[q] = v
		rec.TotalScore += v
	}
	rec.Category = Classify(rec.TotalScore)
	return rec, clamped
}

// isExactAnswer reports whether the cell already held the clamped value.
func isExactAnswer(c survey.Cell, v int) bool {
	return c.Kind != survey.CellEmpty && c.Float() == float64(v)
}

func cellAt(row []survey.Cell, i int) survey.Cell {
	if i < 0 || i >= len(row) {
		return survey.EmptyCell()
	}
	return row[i]
}
