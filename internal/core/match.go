package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// ContextCheckInterval is how often, in rows, long loops check for
// cancellation.
var ContextCheckInterval = 100

// DefaultJoinSuffix is appended to B columns whose names collide with A.
const DefaultJoinSuffix = "_nhdra"

// JoinOptions configures LeftJoin.
type JoinOptions struct {
	Suffix string // Collision suffix for B columns (default: DefaultJoinSuffix)
}

// JoinStats summarises a join.
type JoinStats struct {
	Total     int // Rows in A, and in the output
	Matched   int // A rows that found a B row
	Ambiguous int // Matched A rows whose key was shared by several B rows
}

// Rate returns the match rate as a percentage.
func (s JoinStats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total) * 100
}

// LeftJoin attaches to every row of a the first row of b with an equal
// valid key. The output has exactly a.Len() rows in a's order: a's
// columns followed by b's, with colliding b names suffixed. Unmatched rows
// carry Null in every b column.
func LeftJoin(ctx context.Context, a, b *table.Table, keyA, keyB KeyFunc, opts JoinOptions) (*table.Table, JoinStats, error) {
	if opts.Suffix == "" {
		opts.Suffix = DefaultJoinSuffix
	}

	aCols := a.Columns()
	bCols := joinColumnNames(aCols, b.Columns(), opts.Suffix)
	out, err := table.New(append(aCols, bCols...)...)
	if err != nil {
		return nil, JoinStats{}, fmt.Errorf("build join schema: %w", err)
	}

	// First row per key, plus how many rows share it.
	first := make(map[string]int, b.Len())
	counts := make(map[string]int, b.Len())
	for i := 0; i < b.Len(); i++ {
		if i%ContextCheckInterval == 0 && ctx.Err() != nil {
			return nil, JoinStats{}, ctx.Err()
		}
		k := keyB(b, i)
		if !k.Valid {
			continue
		}
		if _, seen := first[k.String]; !seen {
			first[k.String] = i
		}
		counts[k.String]++
	}

	stats := JoinStats{Total: a.Len()}
	width := len(aCols) + len(bCols)
	for i := 0; i < a.Len(); i++ {
		if i%ContextCheckInterval == 0 && ctx.Err() != nil {
			return nil, JoinStats{}, ctx.Err()
		}

		rec := make(table.Record, width)
		copy(rec, a.Row(i))

		if k := keyA(a, i); k.Valid {
			if j, ok := first[k.String]; ok {
				copy(rec[len(aCols):], b.Row(j))
				stats.Matched++
				if counts[k.String] > 1 {
					stats.Ambiguous++
				}
			}
		}

		if err := out.Append(rec); err != nil {
			return nil, JoinStats{}, err
		}
	}

	return out, stats, nil
}

// joinColumnNames renames each b column that collides with an a column by
// appending suffix until the name is unique across both tables.
func joinColumnNames(aCols, bCols []string, suffix string) []string {
	taken := make(map[string]bool, len(aCols)+len(bCols))
	for _, c := range aCols {
		taken[c] = true
	}
	for _, c := range bCols {
		taken[c] = true
	}

	out := make([]string, len(bCols))
	for i, c := range bCols {
		name := c
		if slices.Contains(aCols, c) {
			name = c + suffix
			for taken[name] {
				name += suffix
			}
			taken[name] = true
		}
		out[i] = name
	}
	return out
}
