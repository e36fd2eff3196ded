package core

import (
	"strings"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// ParcelIDSeparator joins the map, block and lot components.
const ParcelIDSeparator = "-"

// ParcelID builds a map-block-lot identifier. Spaces are removed from each
// component, and components that are empty or read "nan" are left out, so
// a parcel with no block yields "12-7" rather than "12--7".
func ParcelID(components ...string) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		c = strings.ReplaceAll(strings.TrimSpace(c), " ", "")
		if c == "" || strings.EqualFold(c, missingText) {
			continue
		}
		parts = append(parts, c)
	}
	return strings.Join(parts, ParcelIDSeparator)
}

// NormalizeParcelID rewrites an existing identifier into the form ParcelID
// produces.
func NormalizeParcelID(id string) string {
	return ParcelID(strings.Split(id, ParcelIDSeparator)...)
}

// IsValidParcelID reports whether v can identify a parcel: non-null,
// non-empty, and free of a leftover "nan".
func IsValidParcelID(v table.Value) bool {
	if v.IsNull() {
		return false
	}
	s := v.Text()
	return s != "" && !strings.Contains(s, missingText)
}

// FilterValidParcels keeps the rows whose column holds a valid parcel id.
// It returns the filtered table and the number of rows dropped.
func FilterValidParcels(t *table.Table, column string) (*table.Table, int, error) {
	if err := RequireColumns(t, column); err != nil {
		return nil, 0, err
	}
	idx, _ := t.ColumnIndex(column)
	kept := t.Filter(func(_ int, r table.Record) bool {
		return IsValidParcelID(r[idx])
	})
	return kept, t.Len() - kept.Len(), nil
}

// parcelIDValue is the mapper's coercion for FieldParcelID columns. A
// single source holding a prebuilt identifier is normalized as well.
func parcelIDValue(components []string) table.Value {
	id := NormalizeParcelID(ParcelID(components...))
	if id == "" {
		return table.Null
	}
	return table.String(id)
}
