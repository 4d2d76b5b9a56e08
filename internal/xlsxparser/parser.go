// =============================================================================
// Product Importer - XLSX Sheet Loader
// =============================================================================
//
// This module loads the product spreadsheet into a raw grid of cell text.
//
// SHEET STRUCTURE (Expected Layout):
//   The export the importer receives carries a decorative title row above
//   the real header row. The real header is promoted and the title row is
//   discarded.
//
//   | Row 1 | 상품 재고 현황 (title, discarded)                                   |
//   | Row 2 | 월      | 바코드        | 상품명   | 수량 | 소비자가 | 매입가 |  <- promoted
//   | Row 3 | 2024-01 | 8801234567890 | 새우깡   | 12   | 1500     | 1100   |  <- data row 0
//   | Row 4 | 2024-01 | 8801234567891 | 초코파이 | 3    | 4800     | 3900   |  <- data row 1
//
// CELL VALUES:
//   Cells are read unformatted (raw). A price stored as 1500 with a
//   "#,##0" number format is returned as "1500", not "1,500".
//   Date columns are the exception: a date-formatted serial such as 45292
//   is returned as "2024-01-01 00:00:00".
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the text form of date-formatted cells in date columns.
const DateLayout = "2006-01-02 15:04:05"

var (
	// ErrNoSheets is returned for a workbook without worksheets.
	ErrNoSheets = errors.New("workbook has no sheets")

	// ErrNoHeaderRow is returned when the sheet has no row to promote.
	ErrNoHeaderRow = errors.New("sheet has no header row to promote")
)

// =============================================================================
// SHEET STRUCTURE
// =============================================================================

// Sheet is a loaded and reshaped worksheet.
type Sheet struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// SheetName is the name of the sheet that was read.
	SheetName string

	// Headers are the promoted header labels, trimmed.
	Headers []string

	// Rows are the data rows following the promoted header, indexed
	// contiguously from 0. Rows are ragged: trailing empty cells are absent.
	Rows [][]string

	// Width is the column count of the sheet: the widest row, including
	// the discarded title row and the promoted header.
	Width int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Load reads the first sheet of an XLSX workbook and promotes its header.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - dateColumns: Zero-based columns whose date-formatted cells are
//     rendered with DateLayout instead of as serial numbers.
//
// RETURNS:
//   - A pointer to the Sheet with the promoted header and data rows.
//   - An error if the file cannot be read, has no sheets, or has fewer
//     than two non-empty rows.
func Load(path string, dateColumns ...int) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheetName, err)
	}

	if len(dateColumns) > 0 {
		if err := formatDates(f, sheetName, rows, dateColumns); err != nil {
			return nil, err
		}
	}

	sheet, err := Reshape(rows)
	if err != nil {
		return nil, err
	}

	sheet.SourceFile = path
	sheet.SheetName = sheetName

	return sheet, nil
}

// Reshape discards the title row, promotes the next row to the header and
// returns the remaining rows as data. Completely empty rows are skipped
// before the title and header rows are chosen.
func Reshape(rows [][]string) (*Sheet, error) {
	var kept [][]string
	width := 0

	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		kept = append(kept, row)
		if len(row) > width {
			width = len(row)
		}
	}

	if len(kept) < 2 {
		return nil, ErrNoHeaderRow
	}

	header := kept[1]
	headers := make([]string, len(header))
	for i, label := range header {
		headers[i] = strings.TrimSpace(label)
	}

	return &Sheet{
		Headers: headers,
		Rows:    kept[2:],
		Width:   width,
	}, nil
}

// =============================================================================
// DATE CELLS
// =============================================================================

// formatDates rewrites date-formatted numeric cells of the given columns in
// place. rows must be the unreshaped GetRows result, so rows[r] is sheet
// row r+1.
func formatDates(f *excelize.File, sheetName string, rows [][]string, columns []int) error {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return fmt.Errorf("failed to read workbook properties: %w", err)
	}
	date1904 := props.Date1904 != nil && *props.Date1904

	// Style id -> whether its number format is a date.
	isDate := map[int]bool{}

	for r, row := range rows {
		for _, col := range columns {
			if col >= len(row) {
				continue
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(col+1, r+1)
			if err != nil {
				return err
			}
			styleID, err := f.GetCellStyle(sheetName, cell)
			if err != nil {
				return fmt.Errorf("failed to read style of %s: %w", cell, err)
			}

			dated, seen := isDate[styleID]
			if !seen {
				dated = styleIsDate(f, styleID)
				isDate[styleID] = dated
			}
			if !dated {
				continue
			}

			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
				row[col] = t.Round(time.Second).Format(DateLayout)
		}
	}

	return nil
}

// styleIsDate reports whether the style's number format displays a date
// or time.
func styleIsDate(f *excelize.File, styleID int) bool {
	if styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return isBuiltInDateFormat(style.NumFmt)
}

// isBuiltInDateFormat covers the built-in date and time number formats.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains date or
// time tokens outside quoted literals and [bracketed] sections.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\':
			i++
		default:
			b.WriteByte(c)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Cell returns the cell at index, or "" when the row is shorter.
func Cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}
