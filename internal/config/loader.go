package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		// Recurse into nested structs
		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		// Get tags
		envName := field.Tag.Get("env")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		value := strings.TrimSpace(os.Getenv(envName))

		// Apply default if not set
		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		// Set the field value
		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Path validation
	paths := []struct{ env, value string }{
		{"NHDRA_PATH", c.Paths.NHDRA},
		{"PARCELS_PATH", c.Paths.Parcels},
		{"ENHANCED_PATH", c.Paths.Enhanced},
		{"CLEAN_PATH", c.Paths.Clean},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" {
			errs = append(errs, fmt.Sprintf("%s must not be empty", p.env))
		}
	}
	if c.Paths.Clean != "" && c.Paths.Clean == c.Paths.Enhanced {
		errs = append(errs, "CLEAN_PATH must differ from ENHANCED_PATH")
	}

	// Input validation
	if c.Input.NHDRASkipRows < 0 {
		errs = append(errs, "NHDRA_SKIP_ROWS must be non-negative")
	}
	if c.Input.MaxFileSize <= 0 {
		errs = append(errs, "INPUT_MAX_FILE_SIZE must be positive")
	}

	// Merge validation
	if c.Merge.Suffix == "" {
		errs = append(errs, "MERGE_SUFFIX must not be empty")
	}
	if strings.TrimSpace(c.Merge.DedupColumn) == "" {
		errs = append(errs, "DEDUP_COLUMN must not be empty")
	}

	// Report validation
	validReports := map[string]bool{"auto": true, "table": true, "markdown": true, "none": true}
	if !validReports[strings.ToLower(c.Report.Format)] {
		errs = append(errs, fmt.Sprintf("REPORT_FORMAT (%q) must be one of: auto, table, markdown, none", c.Report.Format))
	}
	if c.Report.SampleRows < 0 {
		errs = append(errs, "REPORT_SAMPLE_ROWS must be non-negative")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Paths: {NHDRA: %q, Parcels: %q, Enhanced: %q, Clean: %q}, ",
		c.Paths.NHDRA, c.Paths.Parcels, c.Paths.Enhanced, c.Paths.Clean))
	b.WriteString(fmt.Sprintf("Input: {NHDRASkipRows: %d, MaxFileSize: %d}, ",
		c.Input.NHDRASkipRows, c.Input.MaxFileSize))
	b.WriteString(fmt.Sprintf("Merge: {Suffix: %q, DedupColumn: %q}, ",
		c.Merge.Suffix, c.Merge.DedupColumn))
	b.WriteString(fmt.Sprintf("Report: {Format: %q, SampleRows: %d}, ",
		c.Report.Format, c.Report.SampleRows))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
