package core

import (
	"context"
	"strings"

	"github.com/e-stacy/lebanon-property-tax-map/internal/logging"
	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// MapStats summarises a mapping pass.
type MapStats struct {
	Rows           int
	MissingColumns []string // Source columns absent from the input header
	Unparsed       int      // Non-empty numeric cells that coerced to Null
}

// Mapper projects source tables onto a mapping's target schema.
type Mapper struct {
	mapping Mapping
}

// NewMapper creates a mapper for m.
func NewMapper(m Mapping) *Mapper {
	return &Mapper{mapping: m}
}

// boundColumn is a ColumnSpec resolved against one source header.
type boundColumn struct {
	spec    ColumnSpec
	sources []int       // -1 where the source column is absent
	present bool        // at least one source column exists
	missing table.Value // cell used when no source column exists
}

// Map builds a table with exactly the mapping's target columns, one row per
// source row. A missing source column is logged once and its target is
// filled as if every cell were empty: Null, or 0 for money columns. Cell
// content never causes an error; the only error is ctx's.
func (mp *Mapper) Map(ctx context.Context, src *table.Table) (*table.Table, MapStats, error) {
	logger := logging.WithFields(ctx, "mapping", mp.mapping.Key)

	stats := MapStats{MissingColumns: MissingColumns(mp.mapping, src)}
	for _, name := range stats.MissingColumns {
		logger.Warn("source column missing", "column", name)
	}

	bound := make([]boundColumn, len(mp.mapping.Columns))
	for i, spec := range mp.mapping.Columns {
		b := boundColumn{spec: spec, missing: coerce(spec.Type, make([]string, max(1, len(spec.Sources))))}
		for _, name := range spec.sourceColumns() {
			idx, ok := src.ColumnIndex(name)
			if !ok {
				idx = -1
			} else {
				b.present = true
			}
			b.sources = append(b.sources, idx)
		}
		bound[i] = b
	}

	out, err := table.New(mp.mapping.TargetColumns()...)
	if err != nil {
		return nil, MapStats{}, err
	}

	raw := make([]string, 0, 4)
	for i, r := range src.Rows() {
		if i%ContextCheckInterval == 0 && ctx.Err() != nil {
			return nil, MapStats{}, ctx.Err()
		}

		rec := make(table.Record, len(bound))
		for j, b := range bound {
			if !b.present {
				rec[j] = b.missing
				continue
			}
			raw = raw[:0]
			for _, idx := range b.sources {
				if idx < 0 {
					raw = append(raw, "")
					continue
				}
				raw = append(raw, r[idx].Text())
			}
			v := coerce(b.spec.Type, raw)
			if v.IsNull() && b.spec.Type == FieldNumeric && strings.TrimSpace(raw[0]) != "" {
				stats.Unparsed++
			}
			rec[j] = v
		}
		if err := out.Append(rec); err != nil {
			return nil, MapStats{}, err
		}
	}

	stats.Rows = out.Len()
	logger.Debug("mapping applied", "rows", stats.Rows, "unparsed", stats.Unparsed)
	return out, stats, nil
}

// coerce converts the raw source text for one target cell.
func coerce(ft FieldType, raw []string) table.Value {
	switch ft {
	case FieldParcelID:
		return parcelIDValue(raw)
	case FieldNumeric:
		return NumericValue(raw[0])
	case FieldMoney:
		return MoneyValue(raw[0])
	case FieldClassCode:
		return ClassCodeValue(raw[0])
	default:
		return TextValue(raw[0])
	}
}
