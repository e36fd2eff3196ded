package core

import (
	"context"
	"fmt"
	"time"

	"github.com/e-stacy/lebanon-property-tax-map/internal/logging"
	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// Options holds the file locations and knobs the commands run with.
type Options struct {
	NHDRAPath    string
	ParcelsPath  string
	EnhancedPath string
	CleanPath    string

	NHDRASkipRows int   // Banner lines before the NHDRA header
	MaxFileSize   int64 // Per-input size limit in bytes

	MergeSuffix string // Collision suffix for NHDRA columns
	DedupColumn string // Identifier dedup keeps one row per
}

// Service runs the three reconciliation commands.
type Service struct {
	opts Options
}

// NewService creates a new Service instance.
func NewService(opts Options) *Service {
	if opts.MergeSuffix == "" {
		opts.MergeSuffix = DefaultJoinSuffix
	}
	if opts.DedupColumn == "" {
		opts.DedupColumn = ColParcelID
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = table.DefaultMaxFileSize
	}
	return &Service{opts: opts}
}

// Options returns the options the service was created with, after defaults.
func (s *Service) Options() Options { return s.opts }

// withRun attaches a fresh run ID to ctx unless one is already present.
func withRun(ctx context.Context) (context.Context, string) {
	if id := logging.RunIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := logging.NewRunID()
	return logging.ContextWithRunID(ctx, id), id
}

func (s *Service) load(path string, skipRows int) (*table.Table, error) {
	return table.Load(path, table.LoadOptions{SkipRows: skipRows, MaxFileSize: s.opts.MaxFileSize})
}

// ImportNHDRA maps the raw NHDRA export onto the parcels schema, drops rows
// without a usable parcel_id and writes the parcels file.
func (s *Service) ImportNHDRA(ctx context.Context) (*ImportResult, error) {
	start := time.Now()
	ctx, runID := withRun(ctx)
	logger := logging.WithFields(ctx, "step", "import-nhdra")

	m, err := lookup(MappingNHDRAImport)
	if err != nil {
		return nil, err
	}

	logger.Info("loading NHDRA data", "path", s.opts.NHDRAPath, "skip_rows", s.opts.NHDRASkipRows)
	src, err := s.load(s.opts.NHDRAPath, s.opts.NHDRASkipRows)
	if err != nil {
		return nil, err
	}
	logger.Info("NHDRA data loaded", "rows", src.Len(), "columns", len(src.Columns()))

	mapped, stats, err := NewMapper(m).Map(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.Key, err)
	}

	valid, dropped, err := FilterValidParcels(mapped, ColParcelID)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		logger.Info("dropped rows without a valid parcel_id", "dropped", dropped)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := table.Save(s.opts.ParcelsPath, valid); err != nil {
		return nil, err
	}

	result := &ImportResult{
		RunID:          runID,
		Source:         s.opts.NHDRAPath,
		Output:         s.opts.ParcelsPath,
		SourceRows:     src.Len(),
		Written:        valid.Len(),
		Dropped:        dropped,
		MissingColumns: stats.MissingColumns,
		Duration:       time.Since(start),
		Table:          valid,
	}
	logger.Info("parcels written",
		"path", result.Output,
		"rows", result.Written,
		"columns", len(valid.Columns()),
		"duration", result.Duration,
	)
	return result, nil
}

// Merge left-joins the parcels file against NHDRA on owner name and total
// assessed value, projects the result onto the enhanced schema and writes
// the enhanced file. Every parcels row appears exactly once in the output.
func (s *Service) Merge(ctx context.Context) (*MergeResult, error) {
	start := time.Now()
	ctx, runID := withRun(ctx)
	logger := logging.WithFields(ctx, "step", "merge")

	m, err := lookup(MappingEnhancedMerge)
	if err != nil {
		return nil, err
	}

	logger.Info("loading parcels", "path", s.opts.ParcelsPath)
	parcels, err := s.load(s.opts.ParcelsPath, 0)
	if err != nil {
		return nil, err
	}
	logger.Info("parcels loaded", "rows", parcels.Len())

	logger.Info("loading NHDRA data", "path", s.opts.NHDRAPath)
	nhdra, err := s.load(s.opts.NHDRAPath, s.opts.NHDRASkipRows)
	if err != nil {
		return nil, err
	}
	logger.Info("NHDRA data loaded", "rows", nhdra.Len())

	if err := RequireColumns(parcels, ColOwnerName, ColTotalValue); err != nil {
		return nil, fmt.Errorf("%s: %w", s.opts.ParcelsPath, err)
	}
	if err := RequireColumns(nhdra, NHDRAOwnerName, NHDRATotalValue); err != nil {
		return nil, fmt.Errorf("%s: %w", s.opts.NHDRAPath, err)
	}

	joined, js, err := LeftJoin(ctx, parcels, nhdra,
		OwnerTotalKey(ColOwnerName, ColTotalValue),
		OwnerTotalKey(NHDRAOwnerName, NHDRATotalValue),
		JoinOptions{Suffix: s.opts.MergeSuffix},
	)
	if err != nil {
		return nil, fmt.Errorf("join parcels with NHDRA: %w", err)
	}
	logger.Info("records matched",
		"matched", js.Matched,
		"total", js.Total,
		"rate", fmt.Sprintf("%.1f%%", js.Rate()),
	)
	if js.Ambiguous > 0 {
		logger.Warn("owner and total shared by several NHDRA rows, first match used",
			"rows", js.Ambiguous)
	}

	enhanced, stats, err := NewMapper(m).Map(ctx, joined)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.Key, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := table.Save(s.opts.EnhancedPath, enhanced); err != nil {
		return nil, err
	}

	result := &MergeResult{
		RunID:          runID,
		Output:         s.opts.EnhancedPath,
		Join:           js,
		MissingColumns: stats.MissingColumns,
		Duration:       time.Since(start),
		Table:          enhanced,
	}
	logger.Info("enhanced parcels written",
		"path", result.Output,
		"rows", enhanced.Len(),
		"columns", len(enhanced.Columns()),
		"duration", result.Duration,
	)
	return result, nil
}

// Dedup keeps the first row per identifier in the enhanced file, writes the
// clean file, then replaces the parcels file with the same content.
func (s *Service) Dedup(ctx context.Context) (*CleanupResult, error) {
	start := time.Now()
	ctx, runID := withRun(ctx)
	logger := logging.WithFields(ctx, "step", "dedup")

	logger.Info("loading enhanced parcels", "path", s.opts.EnhancedPath)
	enhanced, err := s.load(s.opts.EnhancedPath, 0)
	if err != nil {
		return nil, err
	}

	clean, ds, err := Dedup(enhanced, s.opts.DedupColumn)
	if err != nil {
		return nil, fmt.Errorf("dedup %s: %w", s.opts.EnhancedPath, err)
	}
	logger.Info("duplicates removed",
		"column", s.opts.DedupColumn,
		"input", ds.Input,
		"kept", ds.Kept,
		"removed", ds.Removed,
	)

	outputs := []string{s.opts.CleanPath, s.opts.ParcelsPath}
	for _, path := range outputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := table.Save(path, clean); err != nil {
			return nil, err
		}
		logger.Info("clean parcels written", "path", path, "rows", clean.Len())
	}

	return &CleanupResult{
		RunID:    runID,
		Outputs:  outputs,
		Dedup:    ds,
		Duration: time.Since(start),
		Table:    clean,
	}, nil
}
