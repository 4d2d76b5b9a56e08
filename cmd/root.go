// =============================================================================
// Product Importer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the root
// command with no subcommand performs an import, so a bare `importer`
// behaves like the original one-shot script.
//
// COBRA CLI STRUCTURE:
//   rootCmd (importer)
//   ├── importCmd  (importer import)
//   ├── verifyCmd  (importer verify)
//   └── versionCmd (importer version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --dir, --verbose)
//   2. Loading importer.yaml, .env and IMPORTER_* variables
//   3. Setting up logging on stderr
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/xlsx-product-import/internal/config"
	"github.com/ginjaninja78/xlsx-product-import/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the YAML configuration file.
var cfgFile string

// workDir overrides the configured working directory when set.
var workDir string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Product Importer - Prepare spreadsheet product lists for ERP import",

	Long: `Product Importer reads the product spreadsheet (*.xlsx) in the working
directory, cleans it up and writes products_import.csv for the ERP
application's "import CSV" action.

Processing steps:
  - The first sheet's title row is discarded and the next row becomes the header
  - Columns are renamed to month, barcode, product_name, quantity,
    consumer_price, purchase_price
  - Rows without a barcode or product name are dropped
  - Quantities and prices are read as integers (non-numeric values become 0)

Example Usage:
  importer                       # Import the spreadsheet in the current directory
  importer import --dry-run      # Show the report without writing the CSV
  importer --dir ./exports       # Import from another directory
  importer verify                # Check products_import.csv the way the ERP reads it`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: runImport,
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// runtimeEnv is what every command needs after flags are parsed.
type runtimeEnv struct {
	cfg    *config.Config
	logger logging.Adapter
	runID  string
}

// setup loads the configuration and builds the run logger.
func setup() (*runtimeEnv, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if workDir != "" {
		cfg.WorkDir = workDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	base := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	logger, runID := logging.WithRun(base)
	logger.Debug("configuration loaded",
		"config", cfgFile,
		"work_dir", cfg.WorkDir,
		"input_pattern", cfg.InputPattern,
		"output_file", cfg.OutputFile,
		"strict_columns", cfg.Strict(),
	)

	return &runtimeEnv{
		cfg:    cfg,
		logger: logging.Adapter{L: logger},
		runID:  runID,
	}, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the YAML configuration file (ignored if it does not exist)",
	)

	rootCmd.PersistentFlags().StringVar(
		&workDir,
		"dir",
		"",
		"Working directory to scan for the spreadsheet (default from config, else .)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug diagnostics on stderr",
	)

	// The root command runs an import, so it takes the import flags too.
	addImportFlags(rootCmd)
}
