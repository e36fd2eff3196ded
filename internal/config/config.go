// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Paths   PathsConfig
	Input   InputConfig
	Merge   MergeConfig
	Report  ReportConfig
	Logging LoggingConfig
}

// PathsConfig holds the input and output file locations.
type PathsConfig struct {
	// NHDRA is the raw NHDRA assessment export.
	NHDRA string `env:"NHDRA_PATH" default:"data/city_data/versions/v2025-09-06/nhdra.csv"`

	// Parcels is the parcels file written by import-nhdra and replaced by dedup.
	Parcels string `env:"PARCELS_PATH" default:"data/parcels.csv"`

	// Enhanced is the merge output.
	Enhanced string `env:"ENHANCED_PATH" default:"data/parcels_enhanced.csv"`

	// Clean is the deduplicated merge output.
	Clean string `env:"CLEAN_PATH" default:"data/parcels_enhanced_clean.csv"`
}

// InputConfig holds CSV loading settings.
type InputConfig struct {
	// NHDRASkipRows is the number of banner lines before the NHDRA header (default: 1)
	NHDRASkipRows int `env:"NHDRA_SKIP_ROWS" default:"1"`

	// MaxFileSize is the maximum input file size in bytes (default: 512MB)
	MaxFileSize int64 `env:"INPUT_MAX_FILE_SIZE" default:"536870912"`
}

// MergeConfig holds join and cleanup settings.
type MergeConfig struct {
	// Suffix renames NHDRA columns that collide with parcels columns (default: _nhdra)
	Suffix string `env:"MERGE_SUFFIX" default:"_nhdra"`

	// DedupColumn is the identifier dedup keeps one row per (default: parcel_id)
	DedupColumn string `env:"DEDUP_COLUMN" default:"parcel_id"`
}

// ReportConfig holds run summary settings.
type ReportConfig struct {
	// Format is auto, table, markdown or none (default: auto)
	Format string `env:"REPORT_FORMAT" default:"auto"`

	// SampleRows is how many output rows the summary previews (default: 5)
	SampleRows int `env:"REPORT_SAMPLE_ROWS" default:"5"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
