// Package table holds the in-memory tabular model shared by every transform:
// ordered columns, ordered records of scalar Values, and the CSV loader and
// writer that move tables to and from disk.
package table

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile    = errors.New("empty file")
	ErrNoHeader     = errors.New("header row not found")
	ErrFileTooLarge = errors.New("file too large")
)

// Record is one row. Cells are aligned with the owning table's columns.
type Record []Value

// Table is an ordered sequence of records sharing one column schema.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Record
}

// New creates an empty table with the given columns. Column names must be
// unique.
func New(columns ...string) (*Table, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, index: idx}, nil
}

// MustNew is New for fixed column lists known to be unique.
func MustNew(columns ...string) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// ColumnIndex returns the position of a column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table has a column with that exact name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.rows) }

// Row returns record i. The returned slice is shared with the table.
func (t *Table) Row(i int) Record { return t.rows[i] }

// Rows returns the records in order. The slice is shared with the table.
func (t *Table) Rows() []Record { return t.rows }

// Append adds a record, padding short records with Null and rejecting long
// ones.
func (t *Table) Append(r Record) error {
	if len(r) > len(t.columns) {
		return fmt.Errorf("record has %d cells, table has %d columns", len(r), len(t.columns))
	}
	if len(r) < len(t.columns) {
		padded := make(Record, len(t.columns))
		copy(padded, r)
		r = padded
	}
	t.rows = append(t.rows, r)
	return nil
}

// Get returns the cell for a named column, or Null when the column is absent.
func (t *Table) Get(row int, column string) Value {
	i, ok := t.index[column]
	if !ok {
		return Null
	}
	return t.rows[row][i]
}

// Filter returns a new table with the records for which keep returns true.
// Records are shared, not copied.
func (t *Table) Filter(keep func(i int, r Record) bool) *Table {
	out := &Table{columns: t.columns, index: t.index}
	for i, r := range t.rows {
		if keep(i, r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Head returns up to n leading records.
func (t *Table) Head(n int) []Record {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}
	return t.rows[:n]
}

// NonNullCount counts records whose cell in column is not Null.
func (t *Table) NonNullCount(column string) int {
	i, ok := t.index[column]
	if !ok {
		return 0
	}
	n := 0
	for _, r := range t.rows {
		if !r[i].IsNull() {
			n++
		}
	}
	return n
}
