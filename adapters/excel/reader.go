package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"wellbeing/domain/core"
	"wellbeing/domain/survey"
	"wellbeing/internal"
)

// oleMagic prefixes legacy BIFF workbooks, which excelize cannot open
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// DataReader decodes uploaded Excel and CSV files into raw cell grids
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger}
}

// IsSupported reports whether the filename carries an accepted extension
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Decode turns the file's bytes into a grid, choosing the decoder by extension
func (r *DataReader) Decode(ctx context.Context, filename string, data []byte) (survey.RawGrid, error) {
	if !IsSupported(filename) {
		return nil, core.NewUnsupportedFormatError(filename)
	}
	if r.config.MaxBytes > 0 && int64(len(data)) > r.config.MaxBytes {
		return nil, fmt.Errorf("%w: %s is %.1f MB, limit is %.1f MB", core.ErrFileTooLarge, filename,
			float64(len(data))/(1024*1024), float64(r.config.MaxBytes)/(1024*1024))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		grid survey.RawGrid
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		grid, err = r.readCSV(data)
	case ".xls":
		grid, err = r.readLegacy(filename, data)
	default:
		grid, err = r.readWorkbook(data)
	}
	if err != nil {
		r.logger.Warn("[DataReader] FAILED - %s: %v", filename, err)
		return nil, err
	}

	r.logger.Info("[DataReader] %s decoded in %.2fms (%d rows)", filename,
		float64(time.Since(start).Nanoseconds())/1e6, len(grid))
	return grid, nil
}

// readWorkbook reads the configured (or first) worksheet of an OOXML workbook
func (r *DataReader) readWorkbook(data []byte) (survey.RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no worksheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	defer rows.Close()

	var grid survey.RawGrid
	rowIdx := 0
	for rows.Next() {
		rowIdx++
		values, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d of %s: %w", rowIdx, sheet, err)
		}

		row := make([]survey.Cell, len(values))
		for colIdx, value := range values {
			row[colIdx] = r.typedCell(f, sheet, colIdx+1, rowIdx, value)
		}
		grid = append(grid, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", sheet, err)
	}

	return grid, nil
}

// typedCell uses the workbook's native cell type to tag the raw value
func (r *DataReader) typedCell(f *excelize.File, sheet string, col, row int, value string) survey.Cell {
	if value == "" {
		return survey.EmptyCell()
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return survey.InferCell(value)
	}
	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return survey.InferCell(value)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula,
		excelize.CellTypeError:
		return survey.StringCell(value)
	case excelize.CellTypeBool:
		return survey.BoolCell(value == "1" || strings.EqualFold(value, "true"))
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return survey.NumberCell(v)
		}
	}
	return survey.InferCell(value)
}

// readCSV reads comma separated text; fields are typed by inference
func (r *DataReader) readCSV(data []byte) (survey.RawGrid, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var grid survey.RawGrid
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		row := make([]survey.Cell, len(record))
		for i, field := range record {
			row[i] = survey.InferCell(field)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// readLegacy handles .xls uploads. Many of them are OOXML or CSV under the old extension; true
// BIFF workbooks are rejected.
func (r *DataReader) readLegacy(filename string, data []byte) (survey.RawGrid, error) {
	if bytes.HasPrefix(data, oleMagic) {
		return nil, fmt.Errorf("%w: %s is a legacy binary workbook, save it as .xlsx or .csv",
			core.ErrUnsupportedFormat, filename)
	}
	if grid, err := r.readWorkbook(data); err == nil {
		return grid, nil
	}
	if utf8.Valid(data) {
		r.logger.Debug("[DataReader] %s is not a workbook, reading as CSV", filename)
		return r.readCSV(data)
	}
	return nil, core.NewUnsupportedFormatError(filename)
}
