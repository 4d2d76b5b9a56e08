// =============================================================================
// Product Importer - CSV Parser Module
// =============================================================================
//
// This module reads an import CSV back the way the ERP application's
// "import CSV" action consumes it, so an export can be checked before it
// is handed over:
//   - A leading UTF-8 byte-order mark is ignored
//   - The first line is the header and is skipped
//   - Blank lines are skipped
//   - Lines with fewer than six values are skipped (and counted)
//   - Lines with six or more values are records even when every value is
//     empty; ",,,,," becomes a product with an empty barcode
//   - Numbers are read with leading-integer semantics: "12" -> 12,
//     "12abc" -> 12, "abc" -> 0
//   - Values are trimmed
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/xlsx-product-import/internal/types"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// ImportData is the content of an import CSV as the ERP would see it.
type ImportData struct {
	// SourceFile is the path to the CSV file.
	SourceFile string

	// Headers is the header row as written in the file.
	Headers []string

	// Products are the records the ERP would insert, in file order.
	Products []types.Product

	// Skipped is the number of non-blank lines with fewer than six values.
	Skipped int

	// EmptyBarcodes is the number of records the ERP would insert under
	// an empty barcode.
	EmptyBarcodes int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads an import CSV file.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - The parsed import data.
//   - An error if the file cannot be opened or is not valid CSV.
func Parse(filePath string) (*ImportData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := Decode(file)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath

	return data, nil
}

// Decode reads import CSV content from r.
func Decode(r io.Reader) (*ImportData, error) {
	// The UTF8BOM decoder drops a leading BOM and passes plain UTF-8 through.
	reader := bufio.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))

	csvReader := csv.NewReader(reader)
	configureReader(csvReader)

	data := &ImportData{}

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	data.Headers = header

	for index := 0; ; {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if isBlankLine(row) {
			continue
		}
		if len(row) < len(types.Columns) {
			data.Skipped++
			continue
		}

		barcode := strings.TrimSpace(row[1])
		if barcode == "" {
			data.EmptyBarcodes++
		}

		data.Products = append(data.Products, types.Product{
			Index:         index,
			Month:         strings.TrimSpace(row[0]),
			Barcode:       barcode,
			ProductName:   strings.TrimSpace(row[2]),
			Quantity:      ParseLeadingInt(row[3]),
			ConsumerPrice: ParseLeadingInt(row[4]),
			PurchasePrice: ParseLeadingInt(row[5]),
		})
		index++
	}

	return data, nil
}

// configureReader configures the CSV reader to tolerate hand-edited files.
func configureReader(reader *csv.Reader) {
	reader.Comma = ','

	// Allow variable number of fields per row; short rows are counted.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// isBlankLine reports whether the record came from a line that is empty
// after trimming. A line of bare commas is not blank.
func isBlankLine(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}

// ParseLeadingInt reads an optional sign and the leading decimal digits of
// s, ignoring anything after them. It returns 0 when there are no digits
// or the digits overflow int64.
func ParseLeadingInt(s string) int64 {
	s = strings.TrimSpace(s)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n int64
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		d := int64(r - '0')
		if n > (1<<63-1-d)/10 {
			return 0
		}
		n = n*10 + d
		digits++
	}

	if digits == 0 {
		return 0
	}
	if negative {
		return -n
	}
	return n
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GetUniqueValues returns the distinct barcodes in first-seen order.
// The ERP keys products on barcode, so a later duplicate replaces an
// earlier one on import.
func GetUniqueValues(data *ImportData) []string {
	seen := make(map[string]bool)
	var unique []string

	for _, p := range data.Products {
		if !seen[p.Barcode] {
			seen[p.Barcode] = true
			unique = append(unique, p.Barcode)
		}
	}

	return unique
}
