package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// JoinKey is a composite match key. Rows with an invalid key never match.
type JoinKey struct {
	String string
	Valid  bool
}

// KeyFunc derives the join key for row i of t.
type KeyFunc func(t *table.Table, i int) JoinKey

// BuildKey combines an owner name and total assessed value into a key:
// the upper-cased, trimmed owner, an underscore, then the total. Totals
// that parse as numbers are written in canonical form so "150000.0" and
// "150000" agree.
func BuildKey(upper cases.Caser, owner, total table.Value) JoinKey {
	if owner.IsNull() || total.IsNull() {
		return JoinKey{}
	}
	name := strings.TrimSpace(owner.Text())
	if name == "" || name == missingText {
		return JoinKey{}
	}
	return JoinKey{
		String: upper.String(name) + "_" + canonicalTotal(total),
		Valid:  true,
	}
}

// OwnerTotalKey returns a KeyFunc reading the owner and total columns.
// Either column missing from the table makes every key invalid.
func OwnerTotalKey(ownerCol, totalCol string) KeyFunc {
	upper := cases.Upper(language.Und)
	return func(t *table.Table, i int) JoinKey {
		if !t.HasColumn(ownerCol) || !t.HasColumn(totalCol) {
			return JoinKey{}
		}
		return BuildKey(upper, t.Get(i, ownerCol), t.Get(i, totalCol))
	}
}

func canonicalTotal(v table.Value) string {
	if d := ToDecimal(v.Text()); d.Valid {
		return d.Decimal.String()
	}
	return strings.TrimSpace(v.Text())
}
