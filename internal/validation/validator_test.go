package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ginjaninja78/xlsx-product-import/internal/types"
)

func TestValidateLayout(t *testing.T) {
	if err := ValidateLayout(6, nil); err != nil {
		t.Errorf("ValidateLayout(6) = %v, want nil", err)
	}

	for _, width := range []int{0, 5, 7} {
		err := ValidateLayout(width, []string{"월", "바코드"})

		var layoutErr *LayoutError
		if !errors.As(err, &layoutErr) {
			t.Fatalf("ValidateLayout(%d) = %v, want *LayoutError", width, err)
		}
		if layoutErr.Found != width || layoutErr.Expected != 6 {
			t.Errorf("LayoutError = %+v", layoutErr)
		}
		if !strings.Contains(err.Error(), "바코드") {
			t.Errorf("error %q does not name the found headers", err)
		}
	}
}

func TestValidateProducts(t *testing.T) {
	products := []types.Product{
		{Index: 0, Barcode: "880", ProductName: "새우깡"},
		{Index: 3, Barcode: " ", ProductName: "초코파이"},
		{Index: 4, Barcode: "881", ProductName: ""},
	}

	errs := ValidateProducts(products)
	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2: %s", len(errs), FormatErrors(errs))
	}
	if errs[0].Field != types.ColBarcode || errs[0].RowIndex != 3 {
		t.Errorf("errs[0] = %+v", errs[0])
	}
	if errs[1].Field != types.ColProductName || errs[1].RowIndex != 4 {
		t.Errorf("errs[1] = %+v", errs[1])
	}
}

func TestFormatErrors(t *testing.T) {
	if got := FormatErrors(nil); got != "No validation errors." {
		t.Errorf("FormatErrors(nil) = %q", got)
	}

	got := FormatErrors([]*ValidationError{{Field: "barcode", Message: "barcode is required", RowIndex: 2}})
	if !strings.Contains(got, "1 error(s)") || !strings.Contains(got, "row 2, field 'barcode'") {
		t.Errorf("FormatErrors() = %q", got)
	}
}
