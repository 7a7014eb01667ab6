package survey

import (
	"math"
	"strconv"
	"strings"
)

// CellKind tags the scalar type held by a Cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellString
	CellBool
)

// Cell is a single spreadsheet value as handed over by a decoder.
type Cell struct {
	Kind CellKind
	Num  float64
	Str  string
	Bool bool
}

// RawGrid is row-major cell data; row 0 is the header.
type RawGrid [][]Cell

// Constructors
func EmptyCell() Cell           { return Cell{Kind: CellEmpty} }
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }
func StringCell(s string) Cell  { return Cell{Kind: CellString, Str: s} }
func BoolCell(b bool) Cell      { return Cell{Kind: CellBool, Bool: b} }

// IsEmpty reports whether the cell holds no value
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Truthy follows spreadsheet-JSON truthiness: empty, zero, NaN, "" and false are falsy.
func (c Cell) Truthy() bool {
	switch c.Kind {
	case CellNumber:
		return c.Num != 0 && !math.IsNaN(c.Num)
	case CellString:
		return c.Str != ""
	case CellBool:
		return c.Bool
	default:
		return false
	}
}

// String renders the cell the way a spreadsheet export would stringify it.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return formatNumber(c.Num)
	case CellString:
		return c.Str
	case CellBool:
		if c.Bool {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Float converts the cell to a number. Empty and blank strings are 0, booleans are 0/1,
// anything unparseable is NaN.
func (c Cell) Float() float64 {
	switch c.Kind {
	case CellNumber:
		return c.Num
	case CellBool:
		if c.Bool {
			return 1
		}
		return 0
	case CellString:
		return parseNumeric(c.Str)
	default:
		return 0
	}
}

func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	// ParseFloat also accepts "inf" and "nan" spellings that are not numbers in a sheet
	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(lower, "inf") || strings.HasPrefix(lower, "nan") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// InferCell types a raw text value: numbers become Number cells, TRUE/FALSE become Bool cells and
// "" becomes Empty.
func InferCell(raw string) Cell {
	if raw == "" {
		return EmptyCell()
	}
	trimmed := strings.TrimSpace(raw)
	switch strings.ToUpper(trimmed) {
	case "TRUE":
		return BoolCell(true)
	case "FALSE":
		return BoolCell(false)
	}
	if trimmed != "" {
		lower := strings.ToLower(strings.TrimLeft(trimmed, "+-"))
		if !strings.HasPrefix(lower, "inf") && !strings.HasPrefix(lower, "nan") {
			if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return NumberCell(v)
			}
		}
	}
	return StringCell(raw)
}
