package application

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e-stacy/lebanon-property-tax-map/internal/config"
	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
	_ "github.com/e-stacy/lebanon-property-tax-map/internal/core/mappings"
	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

const nhdraExport = "NHDRA Assessment Export,,,,,,\n" +
	"rem mblu map,rem mblu block,rem mblu lot,own name,prc ttl assess,vns ayb,vns style desc\n" +
	"12,A,7,SMITH JOHN,150000,1990,Colonial\n" +
	"12,A,8,JONES MARY,200000,2001,Ranch\n" +
	"12,A,8,JONES MARY,200000,2002,Cape\n" +
	",,,VACANT,5000,,\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nhdra.csv"), []byte(nhdraExport), 0o644))
	return &config.Config{
		Paths: config.PathsConfig{
			NHDRA:    filepath.Join(dir, "nhdra.csv"),
			Parcels:  filepath.Join(dir, "parcels.csv"),
			Enhanced: filepath.Join(dir, "parcels_enhanced.csv"),
			Clean:    filepath.Join(dir, "parcels_enhanced_clean.csv"),
		},
		Input:   config.InputConfig{NHDRASkipRows: 1, MaxFileSize: 1 << 20},
		Merge:   config.MergeConfig{Suffix: "_nhdra", DedupColumn: "parcel_id"},
		Report:  config.ReportConfig{Format: "markdown", SampleRows: 3},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := New(cfg, &out).Execute(context.Background(), args)
	return out.String(), err
}

func TestPipeline(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "import-nhdra")
	require.NoError(t, err)
	assert.Contains(t, out, "## NHDRA import")
	assert.Contains(t, out, "**Source rows**: 4")
	assert.Contains(t, out, "**Dropped (no parcel_id)**: 1")
	assert.Contains(t, out, "12-A-7")
	assert.FileExists(t, cfg.Paths.Parcels)

	out, err = run(t, cfg, "merge")
	require.NoError(t, err)
	assert.Contains(t, out, "## Merge with NHDRA")
	assert.Contains(t, out, "3 of 3 (100.0%)")
	assert.Contains(t, out, "### Column coverage")
	assert.Contains(t, out, "first NHDRA row was used")
	assert.FileExists(t, cfg.Paths.Enhanced)

	out, err = run(t, cfg, "dedup")
	require.NoError(t, err)
	assert.Contains(t, out, "## Duplicate cleanup")
	assert.Contains(t, out, "**Removed**: 1")
	assert.Contains(t, out, "12-A-8 appears 2 times (data rows 2, 3)")
	assert.FileExists(t, cfg.Paths.Clean)
}

func TestFlagOverrides(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "import-nhdra", "--report", "none")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "none", cfg.Report.Format)

	_, err = run(t, cfg, "import-nhdra", "--report", "html")
	assert.ErrorContains(t, err, "REPORT_FORMAT")

	cfg = testConfig(t)
	out, err = run(t, cfg, "import-nhdra", "--sample", "0")
	require.NoError(t, err)
	assert.NotContains(t, out, "### Sample")
}

func TestCommandErrors(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "merge")
	require.Error(t, err)
	assert.Equal(t, "FILE003", core.MapError(err).Code, "merge before import has no parcels file")

	_, err = run(t, cfg, "dedup", "extra")
	assert.Error(t, err)

	_, err = run(t, cfg, "unknown")
	assert.Error(t, err)
}

func TestMappingsCommand(t *testing.T) {
	out, err := run(t, testConfig(t), "mappings")
	require.NoError(t, err)
	assert.Contains(t, out, "## Enhanced merge (enhanced_merge)")
	assert.Contains(t, out, "## NHDRA import (nhdra_import)")
	assert.Contains(t, out, "rem mblu map + rem mblu block + rem mblu lot")
	assert.Contains(t, out, "class_code")
}

func TestServiceOptions(t *testing.T) {
	cfg := testConfig(t)
	opts := ServiceOptions(cfg)

	assert.Equal(t, cfg.Paths.NHDRA, opts.NHDRAPath)
	assert.Equal(t, cfg.Paths.Parcels, opts.ParcelsPath)
	assert.Equal(t, cfg.Paths.Enhanced, opts.EnhancedPath)
	assert.Equal(t, cfg.Paths.Clean, opts.CleanPath)
	assert.Equal(t, 1, opts.NHDRASkipRows)
	assert.Equal(t, int64(1<<20), opts.MaxFileSize)
	assert.Equal(t, "_nhdra", opts.MergeSuffix)
	assert.Equal(t, "parcel_id", opts.DedupColumn)
}

func TestDedupSummary_Overflow(t *testing.T) {
	res := &core.CleanupResult{
		Dedup: core.DedupStats{
			Input: 30, Kept: 15, Removed: 15, Groups: 12,
			Samples: []core.DuplicateGroup{{ID: "1-1", Rows: []int{0, 5}}},
		},
		Table: mustTable(t),
	}
	s := dedupSummary(res, 0)
	assert.Equal(t, []string{"1-1 appears 2 times (data rows 1, 6)", "11 more duplicated identifiers not listed"}, s.Notes)
	assert.Empty(t, s.Sample)
}

func mustTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New("parcel_id")
	require.NoError(t, err)
	return tbl
}
