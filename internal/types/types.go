// =============================================================================
// Product Importer - Shared Types
// =============================================================================
//
// This package contains the product table shared by the importer packages.
// Types defined here are used by:
//   - converter
//   - validation
//   - report
//   - csvwriter / csvparser
//
// =============================================================================

package types

import "strconv"

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Column names, in the order they appear in the spreadsheet and in the CSV.
const (
	ColMonth         = "month"
	ColBarcode       = "barcode"
	ColProductName   = "product_name"
	ColQuantity      = "quantity"
	ColConsumerPrice = "consumer_price"
	ColPurchasePrice = "purchase_price"
)

// Columns is the fixed positional layout of a product sheet.
// The importer renames whatever labels the sheet carries to these names.
var Columns = []string{
	ColMonth,
	ColBarcode,
	ColProductName,
	ColQuantity,
	ColConsumerPrice,
	ColPurchasePrice,
}

// =============================================================================
// PRODUCT TYPES
// =============================================================================

// Product is a single retained record of the product table.
type Product struct {
	// Index is the row position in the reshaped table (0-based, counted
	// after header promotion and before rows are dropped).
	Index int

	// Month is the raw month cell as text. Empty when the cell is missing.
	Month string

	// Barcode and ProductName identify the product. Never empty.
	Barcode     string
	ProductName string

	// Quantity and prices are whole numbers; unparseable cells become 0.
	Quantity      int64
	ConsumerPrice int64
	PurchasePrice int64
}

// Record returns the product as a CSV record in Columns order.
func (p Product) Record() []string {
	return []string{
		p.Month,
		p.Barcode,
		p.ProductName,
		strconv.FormatInt(p.Quantity, 10),
		strconv.FormatInt(p.ConsumerPrice, 10),
		strconv.FormatInt(p.PurchasePrice, 10),
	}
}

// =============================================================================
// TABLE
// =============================================================================

// Table is the processed product table built from one spreadsheet.
type Table struct {
	// SourceFile is the path of the spreadsheet the table was loaded from.
	SourceFile string

	// Headers are the promoted header labels as found in the sheet,
	// before the positional rename.
	Headers []string

	// Products are the retained records, in sheet order.
	Products []Product

	// RowsRead is the number of data rows after header promotion.
	RowsRead int

	// RowsDropped is the number of rows removed for a missing barcode or
	// product name.
	RowsDropped int
}

// Totals holds the summary figures of a product table.
type Totals struct {
	Products      int
	Quantity      int64
	ConsumerPrice int64
	PurchasePrice int64
}

// Totals sums quantity and prices across all retained products.
func (t *Table) Totals() Totals {
	return SumProducts(t.Products)
}

// Head returns at most n leading products.
func (t *Table) Head(n int) []Product {
	if n < 0 {
		n = 0
	}
	if n > len(t.Products) {
		n = len(t.Products)
	}
	return t.Products[:n]
}

// SumProducts computes Totals over an arbitrary product slice.
func SumProducts(products []Product) Totals {
	totals := Totals{Products: len(products)}
	for _, p := range products {
		totals.Quantity += p.Quantity
		totals.ConsumerPrice += p.ConsumerPrice
		totals.PurchasePrice += p.PurchasePrice
	}
	return totals
}
