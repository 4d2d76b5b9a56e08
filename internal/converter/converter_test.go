package converter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/xlsx-product-import/internal/config"
	"github.com/ginjaninja78/xlsx-product-import/internal/csvparser"
	"github.com/ginjaninja78/xlsx-product-import/internal/logging"
	"github.com/ginjaninja78/xlsx-product-import/internal/testutil"
	"github.com/ginjaninja78/xlsx-product-import/internal/validation"
)

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.WorkDir = dir
	return cfg
}

func tenRows() [][]any {
	rows := make([][]any, 0, 10)
	for i := 0; i < 10; i++ {
		barcode := any("88000000000" + string(rune('0'+i)))
		if i == 4 {
			barcode = nil
		}
		rows = append(rows, []any{"2024-01", barcode, "상품" + string(rune('A'+i)), 2, 1000, 700})
	}
	return rows
}

func TestRunDropsRowsWithoutBarcode(t *testing.T) {
	dir := t.TempDir()
	testutil.ProductWorkbook(t, dir, "stock.xlsx", tenRows()...)

	var out bytes.Buffer
	result, err := New(testConfig(dir), Options{}, &out, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.RowsRead != 10 || result.Stats.RowsDropped != 1 || result.Stats.RowsWritten != 9 {
		t.Errorf("stats = %+v, want 10 read, 1 dropped, 9 written", result.Stats)
	}
	if !result.Written {
		t.Error("Written = false")
	}

	data, err := csvparser.Parse(filepath.Join(dir, config.DefaultOutputFile))
	if err != nil {
		t.Fatalf("re-read export: %v", err)
	}
	if len(data.Products) != 9 {
		t.Errorf("export has %d records, want 9", len(data.Products))
	}

	console := out.String()
	for _, want := range []string{
		"Reading file: stock.xlsx",
		"Processed 9 rows of data",
		"Total quantity: 18",
		"Data exported to: products_import.csv",
		"You can now import this file through the ERP application.",
	} {
		if !strings.Contains(console, want) {
			t.Errorf("console missing %q:\n%s", want, console)
		}
	}
}

func TestRunCoercesNonNumericQuantity(t *testing.T) {
	dir := t.TempDir()
	testutil.ProductWorkbook(t, dir, "stock.xlsx",
		[]any{"2024-01", "880", "새우깡", "abc", 1500, 1100},
	)

	result, err := New(testConfig(dir), Options{}, &bytes.Buffer{}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.Table.Products[0].Quantity; got != 0 {
		t.Errorf("Quantity = %d, want 0", got)
	}
	if result.Stats.CellsCoerced != 1 {
		t.Errorf("CellsCoerced = %d, want 1", result.Stats.CellsCoerced)
	}
}

func TestRunWithoutSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, config.DefaultOutputFile)
	if err := os.WriteFile(output, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "~$stock.xlsx"), []byte("lock"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	result, err := New(testConfig(dir), Options{}, &out, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.NoInput {
		t.Error("NoInput = false")
	}
	if strings.TrimSpace(out.String()) != NoInputMessage {
		t.Errorf("console = %q, want %q", out.String(), NoInputMessage)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "previous" {
		t.Errorf("output file modified: %q", content)
	}
}

func TestRunKeepsDateMonthAsText(t *testing.T) {
	dir := t.TempDir()
	testutil.ProductWorkbook(t, dir, "stock.xlsx",
		[]any{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "880", "새우깡", 1, 1, 1},
	)

	result, err := New(testConfig(dir), Options{}, &bytes.Buffer{}, logging.Adapter{L: logging.Discard()}).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.Table.Products[0].Month; got != "2024-01-01 00:00:00" {
		t.Errorf("Month = %q, want 2024-01-01 00:00:00", got)
	}

	data, err := csvparser.Parse(filepath.Join(dir, config.DefaultOutputFile))
	if err != nil {
		t.Fatal(err)
	}
	if got := data.Products[0].Month; got != "2024-01-01 00:00:00" {
		t.Errorf("exported month = %q", got)
	}
}

func TestRunFormatsCurrencyTotal(t *testing.T) {
	dir := t.TempDir()
	testutil.ProductWorkbook(t, dir, "stock.xlsx",
		[]any{"2024-01", "880", "새우깡", 1, 1000000, 1},
		[]any{"2024-01", "881", "초코파이", 1, 234567, 1},
	)

	var out bytes.Buffer
	if _, err := New(testConfig(dir), Options{}, &out, nil).Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Total value (consumer price): ₩1,234,567") {
		t.Errorf("console missing currency total:\n%s", out.String())
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	testutil.ProductWorkbook(t, dir, "stock.xlsx", tenRows()...)
	output := filepath.Join(dir, config.DefaultOutputFile)

	var contents [2][]byte
	for i := range contents {
		if _, err := New(testConfig(dir), Options{}, &bytes.Buffer{}, nil).Run(); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		b, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		contents[i] = b
	}

	if !bytes.Equal(contents[0], contents[1]) {
		t.Error("second run produced a different export")
	}
}

func TestRunPicksFirstSpreadsheetByName(t *testing.T) {
	dir := t.TempDir()
	testutil.ProductWorkbook(t, dir, "b.xlsx", []any{"2024-02", "999", "B", 1, 1, 1})
	testutil.ProductWorkbook(t, dir, "a.xlsx", []any{"2024-01", "111", "A", 1, 1, 1})

	result, err := New(testConfig(dir), Options{}, &bytes.Buffer{}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if filepath.Base(result.InputFile) != "a.xlsx" || result.Stats.Candidates != 2 {
		t.Errorf("input = %s, candidates = %d", result.InputFile, result.Stats.Candidates)
	}
	if got := result.Table.Products[0].Barcode; got != "111" {
		t.Errorf("Barcode = %q, want 111", got)
	}
}

func TestRunRejectsWrongLayout(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWorkbook(t, filepath.Join(dir, "wide.xlsx"), [][]any{
		testutil.Title,
		{"월", "바코드", "상품명", "수량", "소비자가", "매입가", "비고"},
		{"2024-01", "880", "새우깡", 1, 1500, 1100, "note"},
	})

	_, err := New(testConfig(dir), Options{}, &bytes.Buffer{}, nil).Run()
	var layoutErr *validation.LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("Run() error = %v, want LayoutError", err)
	}
	if layoutErr.Found != 7 {
		t.Errorf("Found = %d, want 7", layoutErr.Found)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultOutputFile)); !os.IsNotExist(err) {
		t.Error("export written despite layout error")
	}

	cfg := testConfig(dir)
	lenient := false
	cfg.StrictColumns = &lenient
	if _, err := New(cfg, Options{}, &bytes.Buffer{}, nil).Run(); err != nil {
		t.Errorf("lenient Run() error = %v", err)
	}
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	testutil.ProductWorkbook(t, dir, "stock.xlsx", tenRows()...)

	var out bytes.Buffer
	result, err := New(testConfig(dir), Options{DryRun: true}, &out, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Written {
		t.Error("Written = true on dry run")
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultOutputFile)); !os.IsNotExist(err) {
		t.Error("export written on dry run")
	}
	if !strings.Contains(out.String(), "Dry run: products_import.csv not written") {
		t.Errorf("console missing dry-run notice:\n%s", out.String())
	}
}

func TestRunExplicitInputFile(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	path := testutil.ProductWorkbook(t, other, "elsewhere.xlsx", []any{"2024-01", "880", "새우깡", 1, 1, 1})

	result, err := New(testConfig(dir), Options{InputFile: path}, &bytes.Buffer{}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.InputFile != path {
		t.Errorf("InputFile = %q, want %q", result.InputFile, path)
	}

	if _, err := New(testConfig(dir), Options{InputFile: filepath.Join(dir, "absent.xlsx")}, &bytes.Buffer{}, nil).Run(); err == nil {
		t.Error("Run() with a missing --file succeeded")
	}
}
