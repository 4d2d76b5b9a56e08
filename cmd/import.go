// =============================================================================
// Product Importer - Import Command
// =============================================================================
//
// This file defines the 'import' command, which runs the import pipeline
// once. It is also what the root command runs when no subcommand is given.
//
// COMMAND USAGE:
//   importer import [flags]
//
// FLAGS:
//   --file     : Import this spreadsheet instead of discovering one
//   --output   : Output file name inside the working directory
//   --dry-run  : Print the report without writing the CSV
//
// =============================================================================

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/xlsx-product-import/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile bypasses discovery when set.
var inputFile string

// outputFile overrides the configured output file name.
var outputFile string

// dryRun skips writing the CSV.
var dryRun bool

// =============================================================================
// IMPORT COMMAND DEFINITION
// =============================================================================

// importCmd represents the 'import' command.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert the product spreadsheet to products_import.csv",
	Long: `The import command picks the spreadsheet in the working directory (the
first *.xlsx by name, skipping Excel lock files), cleans the product rows,
prints a summary and writes products_import.csv.

If no spreadsheet is found, "No Excel file found!" is printed and the
command exits successfully without touching the output file.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runImport is the main function for the 'import' command.
func runImport(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	if outputFile != "" {
		env.cfg.OutputFile = outputFile
		if err := env.cfg.Validate(); err != nil {
			return err
		}
	}

	conv := converter.New(env.cfg, converter.Options{
		InputFile: inputFile,
		DryRun:    dryRun,
	}, os.Stdout, env.logger)

	result, err := conv.Run()
	if err != nil {
		return err
	}

	if result.NoInput {
		env.logger.Info("no spreadsheet matching %s in %s", env.cfg.InputPattern, env.cfg.WorkDir)
		return nil
	}

	env.logger.Info("imported %s: %d read, %d dropped, %d written, %d cells coerced",
		result.InputFile,
		result.Stats.RowsRead,
		result.Stats.RowsDropped,
		result.Stats.RowsWritten,
		result.Stats.CellsCoerced,
	)

	return nil
}

// addImportFlags registers the import flags on cmd.
func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputFile, "file", "", "Spreadsheet to import (skips discovery)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output CSV name inside the working directory (default products_import.csv)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report without writing the CSV")
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	addImportFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}
