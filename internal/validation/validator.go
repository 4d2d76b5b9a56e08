// =============================================================================
// Product Importer - Validation
// =============================================================================
//
// This module guards the two places where the import can silently go wrong:
//
//   1. Layout: columns are renamed by position, so a sheet with a column
//      added, removed or reordered would be mislabelled. ValidateLayout
//      checks the column count before the rename.
//   2. Records: after coercion every retained product must have a barcode
//      and a product name. ValidateProducts re-checks this before export.
//
// ERROR HANDLING:
//   - Layout problems are returned as a single *LayoutError
//   - Record problems are collected, not returned on the first hit
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/xlsx-product-import/internal/types"
)

// =============================================================================
// LAYOUT VALIDATION
// =============================================================================

// LayoutError reports a sheet whose column count does not match the fixed
// product layout.
type LayoutError struct {
	// Found is the column count of the sheet.
	Found int

	// Expected is the column count of the product layout.
	Expected int

	// Headers are the promoted header labels, for the error message.
	Headers []string
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("sheet has %d columns, expected %d (%s); found headers: [%s]",
		e.Found,
		e.Expected,
		strings.Join(types.Columns, ", "),
		strings.Join(e.Headers, ", "),
	)
}

// ValidateLayout checks that a sheet of the given width can be renamed
// positionally to the product columns.
//
// PARAMETERS:
//   - width: The column count of the sheet.
//   - headers: The promoted header labels.
//
// RETURNS:
//   - nil if width matches, otherwise a *LayoutError.
func ValidateLayout(width int, headers []string) error {
	if width == len(types.Columns) {
		return nil
	}
	return &LayoutError{
		Found:    width,
		Expected: len(types.Columns),
		Headers:  headers,
	}
}

// =============================================================================
// RECORD VALIDATION
// =============================================================================

// ValidationError represents a single invalid product record.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Message is a human-readable error message.
	Message string

	// RowIndex is the row index of the product in the reshaped table.
	RowIndex int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d, field '%s': %s (value: '%s')",
		e.RowIndex,
		e.Field,
		e.Message,
		e.Value,
	)
}

// ValidateProducts checks the retained-record invariants.
//
// RETURNS:
//   - All violations found, in row order. Empty when the table is valid.
func ValidateProducts(products []types.Product) []*ValidationError {
	var errs []*ValidationError

	for _, p := range products {
		if strings.TrimSpace(p.Barcode) == "" {
			errs = append(errs, &ValidationError{
				Field:    types.ColBarcode,
				Value:    p.Barcode,
				Message:  "barcode is required",
				RowIndex: p.Index,
			})
		}
		if strings.TrimSpace(p.ProductName) == "" {
			errs = append(errs, &ValidationError{
				Field:    types.ColProductName,
				Value:    p.ProductName,
				Message:  "product name is required",
				RowIndex: p.Index,
			})
		}
	}

	return errs
}

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
