// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Title is the decorative first row product exports carry.
var Title = []any{"상품 재고 현황"}

// Header is a typical promoted header row.
var Header = []any{"월", "바코드", "상품명", "수량", "소비자가", "매입가"}

// WriteWorkbook saves rows to an .xlsx file at path. Nil cells are left
// unset so they read back as missing.
func WriteWorkbook(t testing.TB, path string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set %s: %v", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// ProductWorkbook writes a title row, the standard header and data rows
// into dir/name.
func ProductWorkbook(t testing.TB, dir, name string, data ...[]any) string {
	t.Helper()
	rows := append([][]any{Title, Header}, data...)
	return WriteWorkbook(t, filepath.Join(dir, name), rows)
}
