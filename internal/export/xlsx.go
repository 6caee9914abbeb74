// Package export serializes tables to downloadable byte blobs.
package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
)

const sheetName = "Sheet1"

// ToXLSX serializes a table to a single-sheet spreadsheet. Cells that parse
// as numbers are written as numbers, matching what a spreadsheet user
// expects from the age column.
func ToXLSX(t *dataset.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	for j, name := range t.Columns() {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", j, err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, fmt.Errorf("write header %q: %w", name, err)
		}
	}
	ncol := len(t.Columns())
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		for j := 0; j < ncol; j++ {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", i, j, err)
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(row[j])); err != nil {
				return nil, fmt.Errorf("write cell %d,%d: %w", i, j, err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil && s == strconv.Itoa(n) {
		return n
	}
	return s
}
