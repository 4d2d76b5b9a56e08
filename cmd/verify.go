// =============================================================================
// Product Importer - Verify Command
// =============================================================================
//
// This file defines the 'verify' command. It reads an import CSV the way
// the ERP application does and prints what the ERP would insert, so an
// export can be checked before it is uploaded.
//
// COMMAND USAGE:
//   importer verify [--csv products_import.csv]
//
// OUTPUT:
//   Checking file: products_import.csv
//   Run ID: 6f1c...
//
//   ================================================================================
//   IMPORT FILE CHECK
//   ================================================================================
//   Total products to import: 9
//   ...
//   Distinct barcodes: 8
//   Duplicate barcodes (later rows replace earlier ones): 1
//   Lines skipped (fewer than 6 values): 0
//   Records with an empty barcode: 0
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/xlsx-product-import/internal/csvparser"
	"github.com/ginjaninja78/xlsx-product-import/internal/report"
	"github.com/ginjaninja78/xlsx-product-import/internal/types"
	"github.com/ginjaninja78/xlsx-product-import/pkg/utils"
)

// csvFile is the CSV to check; defaults to the configured output.
var csvFile string

// verifyCmd represents the 'verify' command.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check an import CSV the way the ERP application reads it",
	Long: `The verify command reads products_import.csv (or the file given with --csv)
with the ERP's import rules: the header line and blank lines are skipped,
lines with fewer than six values are ignored and numbers are read as
leading integers. It prints the totals the ERP would import and how many
barcodes are duplicated.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

// runVerify is the main function for the 'verify' command.
func runVerify(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	path := csvFile
	if path == "" {
		path = env.cfg.OutputPath()
	}
	if !utils.FileExists(path) {
		return fmt.Errorf("import file not found: %s", path)
	}

	env.logger.Debug("verifying %s", path)

	data, err := csvparser.Parse(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	distinct := len(csvparser.GetUniqueValues(data))

	out := os.Stdout
	fmt.Fprintf(out, "Checking file: %s\n", path)
	fmt.Fprintf(out, "Run ID: %s\n\n", env.runID)
	report.WriteBanner(out, "IMPORT FILE CHECK")
	report.WriteTotals(out, types.SumProducts(data.Products), env.cfg.CurrencySymbol)
	fmt.Fprintf(out, "Distinct barcodes: %d\n", distinct)
	fmt.Fprintf(out, "Duplicate barcodes (later rows replace earlier ones): %d\n", len(data.Products)-distinct)
	fmt.Fprintf(out, "Lines skipped (fewer than %d values): %d\n", len(types.Columns), data.Skipped)
	fmt.Fprintf(out, "Records with an empty barcode: %d\n", data.EmptyBarcodes)

	if data.Skipped > 0 {
		env.logger.Warn("%d lines in %s would be ignored by the ERP", data.Skipped, path)
	}
	if data.EmptyBarcodes > 0 {
		env.logger.Warn("%d records in %s would be imported with an empty barcode", data.EmptyBarcodes, path)
	}

	return nil
}

func init() {
	verifyCmd.Flags().StringVar(&csvFile, "csv", "", "Import CSV to check (default <dir>/products_import.csv)")
	rootCmd.AddCommand(verifyCmd)
}
