package core

// validation.go checks mapping definitions before they are registered and
// source tables before they are mapped.
//
// Mapping problems are programming or config errors and are reported all at
// once. Missing source columns are not errors: the mapper fills the target
// with Null and logs a warning, so MissingColumns only reports them.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

var (
	ErrUnknownColumn  = errors.New("unknown column")
	ErrUnknownMapping = errors.New("unknown mapping")
)

// ValidationError represents a single problem in a mapping definition.
type ValidationError struct {
	Field   string // Target column name
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidateMapping checks that a mapping has a key, at least one column,
// unique target names, and a source for every column.
func ValidateMapping(m Mapping) error {
	var errs []error

	if strings.TrimSpace(m.Key) == "" {
		errs = append(errs, ValidationError{Message: "key is required"})
	}
	if len(m.Columns) == 0 {
		errs = append(errs, ValidationError{Message: "at least one column is required"})
	}

	seen := make(map[string]bool, len(m.Columns))
	for _, c := range m.Columns {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, ValidationError{Message: "column name is required"})
			continue
		}
		if seen[c.Name] {
			errs = append(errs, ValidationError{Field: c.Name, Message: "duplicate target column"})
		}
		seen[c.Name] = true

		switch {
		case c.Type == FieldParcelID && len(c.Sources) == 0:
			errs = append(errs, ValidationError{Field: c.Name, Message: "parcel_id needs component sources"})
		case c.Type != FieldParcelID && len(c.Sources) > 0:
			errs = append(errs, ValidationError{Field: c.Name, Message: "only parcel_id columns take multiple sources"})
		case c.Type != FieldParcelID && c.Source == "":
			errs = append(errs, ValidationError{Field: c.Name, Message: "source is required"})
		}
	}

	return errors.Join(errs...)
}

// MissingColumns returns the source columns m reads that src lacks, in
// mapping order without repeats.
func MissingColumns(m Mapping, src *table.Table) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, c := range m.Columns {
		for _, name := range c.sourceColumns() {
			if src.HasColumn(name) || seen[name] {
				continue
			}
			seen[name] = true
			missing = append(missing, name)
		}
	}
	return missing
}

// RequireColumns returns an error wrapping ErrUnknownColumn when t lacks any
// of the named columns.
func RequireColumns(t *table.Table, names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(missing, ", "))
	}
	return nil
}
