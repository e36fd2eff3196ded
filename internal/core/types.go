package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// FieldType represents how a target column is coerced.
type FieldType int

const (
	FieldText      FieldType = iota // trimmed text, "nan" treated as empty
	FieldNumeric                    // int or float, Null when unparseable
	FieldMoney                      // integer, truncated, missing counts as 0
	FieldClassCode                  // zero-padded text, never numeric
	FieldParcelID                   // map-block-lot identifier
)

func (ft FieldType) String() string {
	switch ft {
	case FieldText:
		return "text"
	case FieldNumeric:
		return "numeric"
	case FieldMoney:
		return "money"
	case FieldClassCode:
		return "class_code"
	case FieldParcelID:
		return "parcel_id"
	default:
		return "unknown"
	}
}

// ParseFieldType converts a mapping file type name to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FieldText, nil
	case "numeric", "number":
		return FieldNumeric, nil
	case "money":
		return FieldMoney, nil
	case "class_code":
		return FieldClassCode, nil
	case "parcel_id":
		return FieldParcelID, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", s)
	}
}

// ColumnSpec defines one target column and where its value comes from.
type ColumnSpec struct {
	Name    string    // Target column name
	Source  string    // Source column name (exact match)
	Sources []string  // Component columns, FieldParcelID only
	Type    FieldType // Coercion applied to the source text
}

// sourceColumns returns every source column the spec reads.
func (c ColumnSpec) sourceColumns() []string {
	if len(c.Sources) > 0 {
		return c.Sources
	}
	if c.Source == "" {
		return nil
	}
	return []string{c.Source}
}

// Mapping is a static source-to-target column mapping.
type Mapping struct {
	Key     string // Unique identifier: "nhdra_import"
	Label   string // Display name
	Columns []ColumnSpec
}

// TargetColumns returns the target column names in order.
func (m Mapping) TargetColumns() []string {
	cols := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		cols[i] = c.Name
	}
	return cols
}

// Names of the registered mappings.
const (
	MappingNHDRAImport   = "nhdra_import"
	MappingEnhancedMerge = "enhanced_merge"
)

// Columns the merge and cleanup steps address directly.
const (
	ColParcelID   = "parcel_id"
	ColOwnerName  = "owner_name"
	ColTotalValue = "total_value"

	NHDRAOwnerName  = "own name"
	NHDRATotalValue = "prc ttl assess"
)

// ImportResult summarises an import-nhdra run.
type ImportResult struct {
	RunID          string
	Source         string
	Output         string
	SourceRows     int
	Written        int
	Dropped        int // rows with an invalid parcel_id
	MissingColumns []string
	Duration       time.Duration
	Table          *table.Table
}

// MergeResult summarises a merge run.
type MergeResult struct {
	RunID          string
	Output         string
	Join           JoinStats
	MissingColumns []string
	Duration       time.Duration
	Table          *table.Table
}

// CleanupResult summarises a dedup run.
type CleanupResult struct {
	RunID    string
	Outputs  []string
	Dedup    DedupStats
	Duration time.Duration
	Table    *table.Table
}
