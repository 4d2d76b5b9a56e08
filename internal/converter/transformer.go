// =============================================================================
// Product Importer - Transformation Engine
// =============================================================================
//
// This module turns the raw grid of a reshaped sheet into product records.
//
// TRANSFORMATION STEPS (per data row, in order):
//   1. Rename    : cells are mapped by position to month, barcode,
//                  product_name, quantity, consumer_price, purchase_price
//   2. Drop      : rows with a missing barcode or product name are removed
//   3. Coerce    : quantity and prices become whole numbers (0 when the
//                  cell is missing or not numeric); month becomes text
//
// "Missing" means absent or whitespace-only. Identity fields are trimmed.
//
// =============================================================================

package converter

import (
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/xlsx-product-import/internal/types"
	"github.com/ginjaninja78/xlsx-product-import/internal/xlsxparser"
)

// Column positions in the fixed product layout.
const (
	posMonth = iota
	posBarcode
	posProductName
	posQuantity
	posConsumerPrice
	posPurchasePrice
)

// int64 bounds as float64. maxInt64Float is 2^63 and itself out of range.
const (
	maxInt64Float = float64(math.MaxInt64)
	minInt64Float = float64(math.MinInt64)
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer converts sheet rows into products.
type Transformer struct {
	logger Logger

	// Coerced counts numeric cells that were replaced by 0.
	Coerced int
}

// NewTransformer creates a new Transformer.
func NewTransformer(logger Logger) *Transformer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Transformer{logger: logger}
}

// Transform builds the product table from a reshaped sheet.
//
// PARAMETERS:
//   - sheet: The sheet with its header promoted.
//
// RETURNS:
//   - The table of retained products. RowsRead and RowsDropped account
//     for every data row of the sheet.
func (t *Transformer) Transform(sheet *xlsxparser.Sheet) *types.Table {
	table := &types.Table{
		SourceFile: sheet.SourceFile,
		Headers:    sheet.Headers,
		Products:   make([]types.Product, 0, len(sheet.Rows)),
		RowsRead:   len(sheet.Rows),
	}

	for index, row := range sheet.Rows {
		product, ok := t.TransformRow(index, row)
		if !ok {
			table.RowsDropped++
			t.logger.Debug("dropped row %d: missing barcode or product name", index)
			continue
		}
		table.Products = append(table.Products, product)
	}

	return table
}

// TransformRow renames, filters and coerces a single data row.
//
// RETURNS:
//   - The product and true, or false if the row must be dropped.
func (t *Transformer) TransformRow(index int, row []string) (types.Product, bool) {
	barcode := strings.TrimSpace(xlsxparser.Cell(row, posBarcode))
	name := strings.TrimSpace(xlsxparser.Cell(row, posProductName))
	if barcode == "" || name == "" {
		return types.Product{}, false
	}

	return types.Product{
		Index:         index,
		Month:         CoerceText(xlsxparser.Cell(row, posMonth)),
		Barcode:       barcode,
		ProductName:   name,
		Quantity:      t.coerce(index, types.ColQuantity, xlsxparser.Cell(row, posQuantity)),
		ConsumerPrice: t.coerce(index, types.ColConsumerPrice, xlsxparser.Cell(row, posConsumerPrice)),
		PurchasePrice: t.coerce(index, types.ColPurchasePrice, xlsxparser.Cell(row, posPurchasePrice)),
	}, true
}

func (t *Transformer) coerce(index int, field, value string) int64 {
	n, ok := CoerceInt(value)
	if !ok {
		t.Coerced++
		if strings.TrimSpace(value) != "" {
			t.logger.Debug("row %d: %s %q is not numeric, using 0", index, field, value)
		}
	}
	return n
}

// =============================================================================
// COERCION FUNCTIONS
// =============================================================================

// CoerceInt parses a cell as a number and truncates it toward zero.
//
// RETURNS:
//   - The integer and true on success.
//   - 0 and false when the cell is missing, not a decimal number, not
//     finite, or outside the int64 range.
//
// EXAMPLES:
//   "12"     -> 12
//   " 7 "    -> 7
//   "12.9"   -> 12
//   "-3.5"   -> -3
//   "1e3"    -> 1000
//   "abc"    -> 0 (false)
//   "1,500"  -> 0 (false)
func CoerceInt(value string) (int64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}

	// Exact path for plain integers; float64 loses precision above 2^53.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}

	if isHexLiteral(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	f = math.Trunc(f)
	if f >= maxInt64Float || f < minInt64Float {
		return 0, false
	}

	return int64(f), true
}

// CoerceText returns the cell text, or "" for a missing cell.
func CoerceText(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}

// isHexLiteral reports whether s uses Go's hexadecimal float syntax,
// which strconv accepts but spreadsheets never produce.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
