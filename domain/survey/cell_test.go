package survey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellTruthy(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want bool
	}{
		{"empty", EmptyCell(), false},
		{"zero", NumberCell(0), false},
		{"nan", NumberCell(math.NaN()), false},
		{"number", NumberCell(12), true},
		{"empty string", StringCell(""), false},
		{"blank string", StringCell("  "), true},
		{"text", StringCell("Oak"), true},
		{"false", BoolCell(false), false},
		{"true", BoolCell(true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Truthy())
		})
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", EmptyCell().String())
	assert.Equal(t, "12", NumberCell(12).String())
	assert.Equal(t, "2.5", NumberCell(2.5).String())
	assert.Equal(t, "Oak", StringCell("Oak").String())
	assert.Equal(t, "true", BoolCell(true).String())
	assert.Equal(t, "false", BoolCell(false).String())
}

func TestCellFloat(t *testing.T) {
	assert.Equal(t, 0.0, EmptyCell().Float())
	assert.Equal(t, 3.0, NumberCell(3).Float())
	assert.Equal(t, 1.0, BoolCell(true).Float())
	assert.Equal(t, 0.0, BoolCell(false).Float())
	assert.Equal(t, 4.0, StringCell(" 4 ").Float())
	assert.Equal(t, 0.0, StringCell("   ").Float())
	assert.True(t, math.IsInf(StringCell("Infinity").Float(), 1))
	assert.True(t, math.IsNaN(StringCell("inf").Float()))
	assert.True(t, math.IsNaN(StringCell("Often").Float()))
}

func TestInferCell(t *testing.T) {
	assert.Equal(t, EmptyCell(), InferCell(""))
	assert.Equal(t, NumberCell(3), InferCell("3"))
	assert.Equal(t, NumberCell(-1.5), InferCell(" -1.5 "))
	assert.Equal(t, BoolCell(true), InferCell("TRUE"))
	assert.Equal(t, BoolCell(false), InferCell("false"))
	assert.Equal(t, StringCell("Oak Park"), InferCell("Oak Park"))
	assert.Equal(t, StringCell("NaN"), InferCell("NaN"))
	assert.Equal(t, StringCell("   "), InferCell("   "))
}
