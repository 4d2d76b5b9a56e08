// =============================================================================
// Product Importer - Configuration Module
// =============================================================================
//
// This module is responsible for loading the importer configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults (reproduce the plain "drop a file and run" behaviour)
//   2. Optional YAML file (importer.yaml by default, ignored when absent)
//   3. Environment variables, optionally loaded from a .env file
//
// ENVIRONMENT OVERRIDES:
//   IMPORTER_WORK_DIR    - Directory scanned for the spreadsheet
//   IMPORTER_LOG_LEVEL   - debug, info, warn, error
//   IMPORTER_LOG_FORMAT  - text, json
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultConfigFile     = "importer.yaml"
	DefaultWorkDir        = "."
	DefaultInputPattern   = "*.xlsx"
	DefaultOutputFile     = "products_import.csv"
	DefaultPreviewRows    = 5
	DefaultCurrencySymbol = "₩"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
)

// Environment variable names.
const (
	EnvWorkDir   = "IMPORTER_WORK_DIR"
	EnvLogLevel  = "IMPORTER_LOG_LEVEL"
	EnvLogFormat = "IMPORTER_LOG_FORMAT"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the importer configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// WorkDir is the directory scanned for the input spreadsheet and the
	// directory the CSV is written to.
	// Default: "."
	WorkDir string `yaml:"work_dir"`

	// InputPattern is the glob matched against file names in WorkDir.
	// Matching is case-sensitive.
	// Default: "*.xlsx"
	InputPattern string `yaml:"input_pattern"`

	// OutputFile is the CSV file name, relative to WorkDir.
	// Default: "products_import.csv"
	OutputFile string `yaml:"output_file"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// StrictColumns rejects sheets that do not have exactly six columns.
	// When false, missing trailing columns read as empty and extra
	// columns are ignored.
	// Default: true
	StrictColumns *bool `yaml:"strict_columns"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// PreviewRows is the number of leading rows shown in the console preview.
	// Default: 5
	PreviewRows *int `yaml:"preview_rows"`

	// CurrencySymbol prefixes the price totals.
	// Default: "₩"
	CurrencySymbol string `yaml:"currency_symbol"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of diagnostics written to stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the diagnostics encoding.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// Strict reports whether the six-column layout is enforced.
func (c *Config) Strict() bool {
	return c.StrictColumns == nil || *c.StrictColumns
}

// Preview returns the configured preview row count.
func (c *Config) Preview() int {
	if c.PreviewRows == nil {
		return DefaultPreviewRows
	}
	return *c.PreviewRows
}

// OutputPath returns the CSV path inside WorkDir.
func (c *Config) OutputPath() string {
	return filepath.Join(c.WorkDir, c.OutputFile)
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration populated with default values only.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file and the environment.
//
// PARAMETERS:
//   - configPath: The path to the YAML file. A missing file is not an error;
//     the defaults are used instead.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file exists but cannot be read or parsed, or if the
//     resulting configuration is invalid.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No config file: defaults only.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyDefaults(&cfg)

	// A missing .env is the normal case.
	_ = godotenv.Load()
	applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.WorkDir == "" {
		cfg.WorkDir = DefaultWorkDir
	}
	if cfg.InputPattern == "" {
		cfg.InputPattern = DefaultInputPattern
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.StrictColumns == nil {
		strict := true
		cfg.StrictColumns = &strict
	}
	if cfg.PreviewRows == nil {
		n := DefaultPreviewRows
		cfg.PreviewRows = &n
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = DefaultCurrencySymbol
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
}

// applyEnv overrides values from IMPORTER_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvWorkDir); v != "" {
		cfg.WorkDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
}

// Validate re-checks a configuration after command-line overrides.
func (c *Config) Validate() error {
	if err := validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validate checks the configuration for values the importer cannot use.
func validate(cfg *Config) error {
	if _, err := filepath.Match(cfg.InputPattern, ""); err != nil {
		return fmt.Errorf("input_pattern %q: %w", cfg.InputPattern, err)
	}

	if filepath.IsAbs(cfg.OutputFile) || strings.HasPrefix(filepath.Clean(cfg.OutputFile), "..") {
		return fmt.Errorf("output_file %q must be relative to work_dir", cfg.OutputFile)
	}

	if *cfg.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must not be negative, got %d", *cfg.PreviewRows)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", cfg.LogFormat)
	}

	return nil
}
