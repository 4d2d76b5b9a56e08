// =============================================================================
// Product Importer - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the importer:
//   - Input discovery (one spreadsheet per run)
//   - Output path resolution
//   - Existence checks
//
// DISCOVERY POLICY:
//   - Only the working directory itself is scanned (no recursion)
//   - Names are matched case-sensitively against the input pattern
//   - Directories and Excel lock files (~$name.xlsx) are skipped
//   - Candidates are sorted by name; the first one is selected
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoInput is returned by SelectInputFile when no candidate exists.
var ErrNoInput = errors.New("no input file found")

// lockFilePrefix marks the owner files Excel leaves next to an open workbook.
const lockFilePrefix = "~$"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the importer.
type FileManager struct {
	// WorkDir is the directory scanned for input and receiving the output.
	WorkDir string

	// Pattern is the glob matched against file names (e.g. "*.xlsx").
	Pattern string

	// OutputFile is the output file name relative to WorkDir.
	OutputFile string
}

// NewFileManager creates a new FileManager.
func NewFileManager(workDir, pattern, outputFile string) *FileManager {
	return &FileManager{
		WorkDir:    workDir,
		Pattern:    pattern,
		OutputFile: outputFile,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the candidate input files in WorkDir.
//
// RETURNS:
//   - The matching file paths, sorted by file name.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	pattern := fm.Pattern
	if pattern == "" {
		pattern = "*.xlsx"
	}

	entries, err := os.ReadDir(fm.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", fm.WorkDir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()

		if strings.HasPrefix(name, lockFilePrefix) {
			continue
		}

		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
		}
		if !matched {
			continue
		}

		// Resolve symlinks and skip directories named like spreadsheets.
		info, err := os.Stat(filepath.Join(fm.WorkDir, name))
		if err != nil || info.IsDir() {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(fm.WorkDir, name)
	}

	return files, nil
}

// SelectInputFile picks the input for this run.
//
// RETURNS:
//   - The selected path and the number of candidates that were found.
//   - ErrNoInput when there is no candidate.
func (fm *FileManager) SelectInputFile() (string, int, error) {
	files, err := fm.DiscoverInputFiles()
	if err != nil {
		return "", 0, err
	}
	if len(files) == 0 {
		return "", 0, ErrNoInput
	}
	return files[0], len(files), nil
}

// OutputPath returns the full path of the output file.
func (fm *FileManager) OutputPath() string {
	return filepath.Join(fm.WorkDir, fm.OutputFile)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
