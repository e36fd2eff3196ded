package core

import (
	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// maxDuplicateSamples caps DedupStats.Samples.
const maxDuplicateSamples = 10

// DuplicateGroup is an identifier that appeared on more than one row.
// Rows are 0-based data row positions in the input.
type DuplicateGroup struct {
	ID   string
	Rows []int
}

// DedupStats summarises a dedup pass.
type DedupStats struct {
	Input   int              // Rows read
	Kept    int              // Rows written
	Removed int              // Later occurrences dropped
	NullIDs int              // Rows with a null identifier, always kept
	Groups  int              // Distinct identifiers seen more than once
	Samples []DuplicateGroup // First groups in input order
}

// Dedup keeps the first row for each distinct non-null value of column and
// drops later ones. Rows with a null identifier are kept. Kept rows are not
// modified and keep their order, so Dedup(Dedup(t)) equals Dedup(t).
func Dedup(t *table.Table, column string) (*table.Table, DedupStats, error) {
	if err := RequireColumns(t, column); err != nil {
		return nil, DedupStats{}, err
	}
	idx, _ := t.ColumnIndex(column)

	stats := DedupStats{Input: t.Len()}
	firstSeen := make(map[string]int, t.Len())
	groups := make(map[string][]int)
	var order []string

	out := t.Filter(func(i int, r table.Record) bool {
		v := r[idx]
		if v.IsNull() {
			stats.NullIDs++
			return true
		}
		id := v.Text()
		first, seen := firstSeen[id]
		if !seen {
			firstSeen[id] = i
			return true
		}
		if _, grouped := groups[id]; !grouped {
			groups[id] = []int{first}
			order = append(order, id)
		}
		groups[id] = append(groups[id], i)
		return false
	})

	stats.Kept = out.Len()
	stats.Removed = stats.Input - stats.Kept
	stats.Groups = len(order)
	for _, id := range order {
		if len(stats.Samples) == maxDuplicateSamples {
			break
		}
		stats.Samples = append(stats.Samples, DuplicateGroup{ID: id, Rows: groups[id]})
	}

	return out, stats, nil
}
