// =============================================================================
// Product Importer - CSV Writer Module
// =============================================================================
//
// This module writes the processed product table to the import CSV.
//
// CSV FORMAT:
//   - UTF-8 with a byte-order mark (EF BB BF), so that spreadsheet programs
//     on Windows show Hangul product names correctly
//   - Comma separated, RFC 4180 quoting, "\n" line endings
//   - Header row with the six column names, no index column
//
//   month,barcode,product_name,quantity,consumer_price,purchase_price
//   2024-01,8801234567890,새우깡,12,1500,1100
//   2024-01,8801234567891,"초코파이, 12개입",3,4800,3900
//
// An existing file at the output path is overwritten.
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/xlsx-product-import/internal/types"
)

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write writes the products to a CSV file at path, replacing any existing
// file.
//
// PARAMETERS:
//   - path: The output file path.
//   - products: The retained products, in output order.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func Write(path string, products []types.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(file, products); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}

// Encode writes the BOM, the header row and one record per product to w.
func Encode(w io.Writer, products []types.Product) error {
	// The UTF8BOM encoder emits the byte-order mark before the first byte.
	bom := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())

	cw := csv.NewWriter(bom)

	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range products {
		if err := cw.Write(p.Record()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", p.Index, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return bom.Close()
}
