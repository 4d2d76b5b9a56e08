// =============================================================================
// Product Importer - Console Report
// =============================================================================
//
// This module renders the human-readable summary printed after an import:
//
//   Processed 9 rows of data
//
//   First 5 rows:
//      month        barcode product_name  quantity  consumer_price  purchase_price
//   0  2024-01  8801234567890       새우깡        12            1500            1100
//   ...
//
//   ================================================================================
//   DATA READY FOR IMPORT
//   ================================================================================
//   Total products to import: 9
//   Total quantity: 120
//   Total value (consumer price): ₩1,234,567
//   Total value (purchase price): ₩987,654
//
// The report is for people, not for scripts; its layout is not versioned.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/xlsx-product-import/internal/types"
)

// bannerWidth is the width of the "=" rule around the import banner.
const bannerWidth = 80

// Options controls the report layout.
type Options struct {
	// PreviewRows is the number of leading products shown.
	PreviewRows int

	// CurrencySymbol prefixes the price totals.
	CurrencySymbol string
}

// printer groups digits in thousands with commas.
var printer = message.NewPrinter(language.English)

// =============================================================================
// REPORT FUNCTIONS
// =============================================================================

// Print writes the full import summary for a processed table.
func Print(w io.Writer, table *types.Table, opts Options) {
	fmt.Fprintf(w, "\nProcessed %d rows of data\n", len(table.Products))

	fmt.Fprintf(w, "\nFirst %d rows:\n", opts.PreviewRows)
	WritePreview(w, table.Head(opts.PreviewRows))

	fmt.Fprintln(w)
	WriteBanner(w, "DATA READY FOR IMPORT")
	WriteTotals(w, table.Totals(), opts.CurrencySymbol)
}

// WriteBanner writes title between two "=" rules.
func WriteBanner(w io.Writer, title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// WriteTotals writes the product count, quantity and price totals.
func WriteTotals(w io.Writer, totals types.Totals, currencySymbol string) {
	fmt.Fprintf(w, "Total products to import: %d\n", totals.Products)
	fmt.Fprintf(w, "Total quantity: %d\n", totals.Quantity)
	fmt.Fprintf(w, "Total value (consumer price): %s\n", FormatCurrency(currencySymbol, totals.ConsumerPrice))
	fmt.Fprintf(w, "Total value (purchase price): %s\n", FormatCurrency(currencySymbol, totals.PurchasePrice))
}

// FormatCurrency formats an amount with thousands separators after the
// currency symbol, e.g. FormatCurrency("₩", 1234567) == "₩1,234,567".
func FormatCurrency(symbol string, amount int64) string {
	return symbol + printer.Sprintf("%d", amount)
}

// =============================================================================
// PREVIEW TABLE
// =============================================================================

// WritePreview renders products as a right-aligned text table with a
// leading row-index column. Column widths are measured in terminal cells,
// so Hangul names (two cells per character) stay aligned.
func WritePreview(w io.Writer, products []types.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "Empty table")
		fmt.Fprintf(w, "Columns: [%s]\n", strings.Join(types.Columns, ", "))
		return
	}

	grid := make([][]string, 0, len(products)+1)
	grid = append(grid, append([]string{""}, types.Columns...))
	for _, p := range products {
		grid = append(grid, append([]string{strconv.Itoa(p.Index)}, p.Record()...))
	}

	widths := make([]int, len(grid[0]))
	for _, row := range grid {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for _, row := range grid {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == 0 {
				cells[i] = runewidth.FillRight(cell, widths[i])
			} else {
				cells[i] = runewidth.FillLeft(cell, widths[i])
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
