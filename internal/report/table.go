package report

import (
	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// ColumnCoverage counts non-null cells per column. Columns absent from t
// report zero coverage.
func ColumnCoverage(t *table.Table, columns []string) []Coverage {
	cov := make([]Coverage, len(columns))
	for i, c := range columns {
		cov[i] = Coverage{Column: c, NonNull: t.NonNullCount(c), Total: t.Len()}
	}
	return cov
}

// Sample returns up to n leading rows of t restricted to the columns t
// actually has. Null cells render empty, as in the CSV output.
func Sample(t *table.Table, columns []string, n int) ([]string, [][]string) {
	var cols []string
	for _, c := range columns {
		if t.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 || n <= 0 {
		return nil, nil
	}

	head := t.Head(n)
	rows := make([][]string, len(head))
	for i := range head {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = t.Get(i, c).Text()
		}
		rows[i] = row
	}
	return cols, rows
}
