package scoring

import (
	"fmt"

	"wellbeing/domain/survey"
)

const templateWidth = 28

// header builds a template header with the school label at nameCol.
func header(nameCol int, label string) []survey.Cell {
	row := make([]survey.Cell, templateWidth)
	for i := range row {
		row[i] = survey.StringCell(fmt.Sprintf("col%d", i))
	}
	for q := 0; q < 16; q++ {
		row[8+q] = survey.StringCell(fmt.Sprintf("Q%d", q+1))
	}
	for q := 0; q < 4; q++ {
		row[24+q] = survey.StringCell(fmt.Sprintf("Q%d", q+17))
	}
	if nameCol >= 0 {
		row[nameCol] = survey.StringCell(label)
	}
	return row
}

// studentRow places school at nameCol and fills Q1-Q16 with normal and Q17-Q20 with reversed raw values.
func studentRow(nameCol int, school survey.Cell, normal, reversed float64) []survey.Cell {
	row := make([]survey.Cell, templateWidth)
	for i := range row {
		row[i] = survey.EmptyCell()
	}
	for q := 0; q < 16; q++ {
		row[8+q] = survey.NumberCell(normal)
	}
	for q := 0; q < 4; q++ {
		row[24+q] = survey.NumberCell(reversed)
	}
	row[nameCol] = school
	return row
}

// rowWithAnswers builds a row from 20 raw answer values.
func rowWithAnswers(nameCol int, school string, raw [survey.QuestionCount]float64) []survey.Cell {
	row := studentRow(nameCol, survey.StringCell(school), 1, 1)
	for q, v := range raw {
		row[survey.DefaultLayout.Column(q)] = survey.NumberCell(v)
	}
	return row
}

// rawForTotal returns raw answers whose scored total equals total (20..100).
func rawForTotal(total int) [survey.QuestionCount]float64 {
	var raw [survey.QuestionCount]float64
	remaining := total - survey.QuestionCount
	for q := range raw {
		extra := remaining
		if extra > 4 {
			extra = 4
		}
		remaining -= extra
		v := 1 + extra
		if survey.DefaultLayout.IsReversed(q) {
			v = 6 - v
		}
		raw[q] = float64(v)
	}
	return raw
}
