// =============================================================================
// Product Importer - Converter Module
// =============================================================================
//
// This module contains the import pipeline. It runs once per invocation
// over exactly one spreadsheet.
//
// CONVERSION PIPELINE:
//   1. Discover  : pick the spreadsheet in the working directory
//   2. Load      : read the first sheet and promote its header row
//   3. Validate  : check the six-column layout before renaming by position
//   4. Transform : rename, drop rows without identity, coerce numbers
//   5. Report    : print the summary to the console
//   6. Export    : write the CSV the ERP application imports
//
// Finding no spreadsheet is not an error: the run prints a message and
// ends without touching the output file.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/xlsx-product-import/internal/config"
	"github.com/ginjaninja78/xlsx-product-import/internal/csvwriter"
	"github.com/ginjaninja78/xlsx-product-import/internal/report"
	"github.com/ginjaninja78/xlsx-product-import/internal/types"
	"github.com/ginjaninja78/xlsx-product-import/internal/validation"
	"github.com/ginjaninja78/xlsx-product-import/internal/xlsxparser"
	"github.com/ginjaninja78/xlsx-product-import/pkg/utils"
)

// NoInputMessage is printed when the working directory has no spreadsheet.
const NoInputMessage = "No Excel file found!"

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one import run.
type Result struct {
	// InputFile is the spreadsheet that was processed.
	// This is empty if no spreadsheet was found.
	InputFile string

	// OutputFile is the path of the CSV. Set even on a dry run.
	OutputFile string

	// NoInput is true when discovery found nothing to import.
	NoInput bool

	// Written is true when the CSV was written.
	Written bool

	// Table is the processed product table.
	Table *types.Table

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Candidates is the number of spreadsheets discovery found.
	Candidates int

	// RowsRead is the number of data rows after header promotion.
	RowsRead int

	// RowsDropped is the number of rows without barcode or product name.
	RowsDropped int

	// RowsWritten is the number of products exported.
	RowsWritten int

	// CellsCoerced is the number of numeric cells replaced by 0.
	CellsCoerced int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options are per-run switches set from the command line.
type Options struct {
	// InputFile bypasses discovery when set.
	InputFile string

	// DryRun runs the pipeline and prints the report without writing the CSV.
	DryRun bool
}

// Converter runs the import pipeline.
type Converter struct {
	cfg    *config.Config
	files  *utils.FileManager
	opts   Options
	out    io.Writer
	logger Logger
}

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter.
//
// PARAMETERS:
//   - cfg: The loaded configuration.
//   - opts: Per-run options.
//   - out: Where the console report is written (normally os.Stdout).
//   - logger: Diagnostics sink; nil discards diagnostics.
func New(cfg *config.Config, opts Options, out io.Writer, logger Logger) *Converter {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Converter{
		cfg:    cfg,
		files:  utils.NewFileManager(cfg.WorkDir, cfg.InputPattern, cfg.OutputFile),
		opts:   opts,
		out:    out,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the import pipeline.
//
// RETURNS:
//   - The run result. Result.NoInput is set, with a nil error, when there
//     was nothing to import.
//   - An error if the spreadsheet cannot be read, its layout is wrong, or
//     the CSV cannot be written.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()
	result := &Result{
		OutputFile: c.files.OutputPath(),
	}

	// =========================================================================
	// STEP 1: DISCOVER INPUT
	// =========================================================================

	input, err := c.discover(result)
	if errors.Is(err, utils.ErrNoInput) {
		fmt.Fprintln(c.out, NoInputMessage)
		result.NoInput = true
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.InputFile = input
	fmt.Fprintf(c.out, "Reading file: %s\n", filepath.Base(input))

	// =========================================================================
	// STEP 2: LOAD SHEET
	// =========================================================================

	sheet, err := xlsxparser.Load(input, posMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", input, err)
	}

	c.logger.Debug("Loaded sheet %q: %d data rows, %d columns", sheet.SheetName, len(sheet.Rows), sheet.Width)

	// =========================================================================
	// STEP 3: VALIDATE LAYOUT
	// =========================================================================
	// Columns are renamed by position, so the column count must match.

	if err := validation.ValidateLayout(sheet.Width, sheet.Headers); err != nil {
		if c.cfg.Strict() {
			return nil, fmt.Errorf("cannot import %s: %w", filepath.Base(input), err)
		}
		c.logger.Warn("Importing despite layout mismatch: %v", err)
	}

	// =========================================================================
	// STEP 4: TRANSFORM
	// =========================================================================

	transformer := NewTransformer(c.logger)
	table := transformer.Transform(sheet)

	if errs := validation.ValidateProducts(table.Products); len(errs) > 0 {
		return nil, fmt.Errorf("invalid products after transformation:\n%s", validation.FormatErrors(errs))
	}

	result.Table = table
	result.Stats.RowsRead = table.RowsRead
	result.Stats.RowsDropped = table.RowsDropped
	result.Stats.CellsCoerced = transformer.Coerced

	c.logger.Debug("Retained %d of %d rows (%d dropped, %d cells coerced to 0)",
		len(table.Products), table.RowsRead, table.RowsDropped, transformer.Coerced)

	// =========================================================================
	// STEP 5: REPORT
	// =========================================================================

	report.Print(c.out, table, report.Options{
		PreviewRows:    c.cfg.Preview(),
		CurrencySymbol: c.cfg.CurrencySymbol,
	})

	// =========================================================================
	// STEP 6: EXPORT
	// =========================================================================

	if c.opts.DryRun {
		fmt.Fprintf(c.out, "\nDry run: %s not written\n", c.cfg.OutputFile)
	} else {
		if err := csvwriter.Write(result.OutputFile, table.Products); err != nil {
			return nil, err
		}
		result.Written = true
		result.Stats.RowsWritten = len(table.Products)

		fmt.Fprintf(c.out, "\nData exported to: %s\n", c.cfg.OutputFile)
		fmt.Fprintln(c.out, "You can now import this file through the ERP application.")
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	c.logger.Info("Import finished in %s", result.Stats.ProcessingTime)

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// discover returns the explicit input file or the discovered one.
func (c *Converter) discover(result *Result) (string, error) {
	if c.opts.InputFile != "" {
		if _, err := os.Stat(c.opts.InputFile); err != nil {
			return "", fmt.Errorf("input file: %w", err)
		}
		result.Stats.Candidates = 1
		return c.opts.InputFile, nil
	}

	input, candidates, err := c.files.SelectInputFile()
	if err != nil {
		return "", err
	}

	result.Stats.Candidates = candidates
	if candidates > 1 {
		c.logger.Warn("Found %d spreadsheets matching %s; using %s (first by name)",
			candidates, c.cfg.InputPattern, filepath.Base(input))
	}

	return input, nil
}

// nopLogger discards all log messages.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
