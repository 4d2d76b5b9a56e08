// =============================================================================
// Product Importer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Product Importer CLI. It hands
// control to the Cobra commands in the cmd package.
//
// USAGE:
//   importer                - Import the spreadsheet in the current directory
//   importer import         - Same, with --file, --output and --dry-run
//   importer verify         - Check products_import.csv as the ERP reads it
//   importer version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Import pipeline (not for external import)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/xlsx-product-import/cmd"
)

func main() {
	cmd.Execute()
}
