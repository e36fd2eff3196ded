package table

import (
	"math"
	"strconv"
)

// Kind identifies which scalar a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is a single cell. The zero Value is the null sentinel, which is
// written as an empty field.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
}

// Null is the sentinel for an absent or unparseable cell.
var Null = Value{}

// String returns a text Value. An empty string is kept as text, not null.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a float Value. NaN and infinities collapse to Null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}
	return Value{kind: KindFloat, flt: f}
}

// Kind returns the scalar kind held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null sentinel.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text renders the value the way it is written to CSV.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	default:
		return ""
	}
}

// String implements fmt.Stringer. Null prints as <null> to keep it visible
// in logs and test failures.
func (v Value) String() string {
	if v.kind == KindNull {
		return "<null>"
	}
	return v.Text()
}
