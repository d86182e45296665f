package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetBuilder accumulates rows for a single-sheet spreadsheet download.
// Report services fill it from already-computed rows; it performs no
// aggregation of its own.
type SheetBuilder struct {
	file    *excelize.File
	sheet   string
	nextRow int
}

// NewSheetBuilder creates a workbook with one named sheet and writes the
// header row in bold.
func NewSheetBuilder(sheet string, headers []string) (*SheetBuilder, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil && sheet != "Sheet1" {
		return nil, fmt.Errorf("export: drop default sheet: %w", err)
	}

	b := &SheetBuilder{file: f, sheet: sheet, nextRow: 1}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("export: write header: %w", err)
		}
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	b.nextRow = 2

	return b, nil
}

// AddRow appends one row of values below the rows written so far.
func (b *SheetBuilder) AddRow(values []interface{}) error {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, b.nextRow)
		if err := b.file.SetCellValue(b.sheet, cell, v); err != nil {
			return fmt.Errorf("export: write row %d: %w", b.nextRow, err)
		}
	}
	b.nextRow++
	return nil
}

// Bytes serializes the workbook as an .xlsx payload.
func (b *SheetBuilder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.file.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the underlying workbook resources.
func (b *SheetBuilder) Close() error {
	return b.file.Close()
}
