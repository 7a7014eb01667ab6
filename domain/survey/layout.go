package survey

// QuestionCount is the number of survey items (Q1-Q20) per student.
const QuestionCount = 20

// UnknownSchool is used when a row's school cell holds no value.
const UnknownSchool = "Unknown"

// SchoolHeaderLabels are the header labels (lower-cased, trimmed) that identify the school column.
var SchoolHeaderLabels = []string{"sname", "school name", "school"}

// Layout describes where the answers sit in the survey template.
// Columns are 0-indexed; everything outside the two answer ranges is ignored.
type Layout struct {
	MetadataColumns int // leading metadata columns before Q1
	NormalStart     int // first column of the directly scored block
	NormalCount     int
	ReversedStart   int // first column of the reverse-scored block
	ReversedCount   int
	FallbackSchool  int // school column when no header label matches
}

// DefaultLayout is the survey template: 8 metadata columns, Q1-Q16 in columns 8-23 (I-X) and the
// reverse-scored Q17-Q20 in columns 24-27 (Y-AB).
var DefaultLayout = Layout{
	MetadataColumns: 8,
	NormalStart:     8,
	NormalCount:     16,
	ReversedStart:   24,
	ReversedCount:   4,
	FallbackSchool:  0,
}

// Question indices (0-based into StudentRecord.Answers) used as indicators.
const (
	AnxietyQuestion  = 0  // Q1
	PressureQuestion = 4  // Q5
	SupportQuestion  = 18 // Q19, reverse-scored
)

// IsReversed reports whether answer index q is stored reverse-scored.
func (l Layout) IsReversed(q int) bool {
	return q >= l.NormalCount && q < l.NormalCount+l.ReversedCount
}

// Column returns the sheet column holding answer index q.
func (l Layout) Column(q int) int {
	if q < l.NormalCount {
		return l.NormalStart + q
	}
	return l.ReversedStart + (q - l.NormalCount)
}
