package core

// convert.go provides the type coercions applied to raw CSV text.
//
// Assessment exports are messy:
//   - money columns carry currency symbols, thousands separators and
//     accounting negatives "(1,200)"
//   - spreadsheet round trips leave Excel formula prefixes (="0007")
//   - missing values show up as blanks or as the literal "nan"
//
// Every ToPg* function returns a pgtype value with Valid=false for empty or
// unparseable input instead of an error. The *Value helpers turn those into
// table.Value cells, where invalid becomes table.Null.

import (
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ClassCodeWidth is the fixed width class codes are padded to.
const ClassCodeWidth = 4

// missingText is how a missing value reads after a float-typed export.
const missingText = "nan"

// ToPgText trims s. Empty strings and the literal "nan" are invalid.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" || s == missingText {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToDecimal parses numeric text. Currency symbols, thousands separators and
// accounting-format negatives are accepted.
func ToDecimal(s string) decimal.NullDecimal {
	s, ok := cleanNumeric(s)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// ToPgNumeric converts a string to pgtype.Numeric.
func ToPgNumeric(s string) pgtype.Numeric {
	d := ToDecimal(s)
	if !d.Valid {
		return pgtype.Numeric{Valid: false}
	}
	return pgtype.Numeric{
		Int:   d.Decimal.Coefficient(),
		Exp:   d.Decimal.Exponent(),
		Valid: true,
	}
}

// ToPgMoney converts a monetary string to whole units, truncating toward zero.
func ToPgMoney(s string) pgtype.Int8 {
	d := ToDecimal(s)
	if !d.Valid || !fitsInt64(d.Decimal) {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: d.Decimal.IntPart(), Valid: true}
}

// ToPgClassCode renders a use/class code as zero-padded text. The value is
// never parsed as a number, so leading zeros in the source survive; a
// trailing ".0" left behind by a float export is dropped.
func ToPgClassCode(s string) pgtype.Text {
	t := ToPgText(CleanCell(s))
	if !t.Valid {
		return t
	}
	code := t.String
	if whole, ok := strings.CutSuffix(code, ".0"); ok && isDigits(strings.TrimLeft(whole, "+-")) {
		code = whole
	}
	return pgtype.Text{String: zeroPad(code, ClassCodeWidth), Valid: true}
}

// TextValue coerces s for a text column.
func TextValue(s string) table.Value {
	t := ToPgText(s)
	if !t.Valid {
		return table.Null
	}
	return table.String(t.String)
}

// NumericValue coerces s for a numeric column: integral values become Int,
// fractional values Float, anything else Null.
func NumericValue(s string) table.Value {
	n := ToPgNumeric(s)
	if !n.Valid {
		return table.Null
	}
	if i, err := n.Int64Value(); err == nil && i.Valid {
		return table.Int(i.Int64)
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return table.Null
	}
	return table.Float(f.Float64)
}

// MoneyValue coerces s for a monetary column. Missing and unparseable
// amounts count as zero.
func MoneyValue(s string) table.Value {
	m := ToPgMoney(s)
	if !m.Valid {
		return table.Int(0)
	}
	return table.Int(m.Int64)
}

// ClassCodeValue coerces s for the class_code column.
func ClassCodeValue(s string) table.Value {
	t := ToPgClassCode(s)
	if !t.Valid {
		return table.Null
	}
	return table.String(t.String)
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// cleanNumeric strips currency symbols and separators and rewrites "(x)" as
// "-x". It reports false when what is left is not a plain number.
func cleanNumeric(s string) (string, bool) {
	s = CleanCell(s)
	if s == "" {
		return "", false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return "", false
	}
	return s, true
}

var (
	minInt64 = decimal.NewFromInt(-1 << 63)
	maxInt64 = decimal.NewFromInt(1<<63 - 1)
)

func fitsInt64(d decimal.Decimal) bool {
	t := d.Truncate(0)
	return t.GreaterThanOrEqual(minInt64) && t.LessThanOrEqual(maxInt64)
}

// zeroPad left-pads s with zeros to width, keeping a leading sign in front
// of the padding. Longer values are returned unchanged.
func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	return sign + strings.Repeat("0", width-len(sign)-len(s)) + s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
