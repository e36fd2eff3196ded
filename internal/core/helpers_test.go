package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// csvTable parses CSV text the way the loader reads input files.
func csvTable(t *testing.T, text string) *table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(text), table.LoadOptions{})
	require.NoError(t, err)
	return tbl
}

// column returns every cell of col rendered as CSV text.
func column(t *table.Table, col string) []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.Get(i, col).Text()
	}
	return out
}

// withRegistry swaps in an empty registry for the duration of a test.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := registry
	registry = make(map[string]Mapping)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	})
}
