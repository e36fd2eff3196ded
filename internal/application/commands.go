package application

import (
	"github.com/spf13/cobra"

	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
)

func (a *App) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-nhdra",
		Short: "Map the raw NHDRA export onto the parcels schema",
		Long: `Load the NHDRA export (skipping its banner row), map its columns onto the
parcels schema, drop rows without a usable parcel_id and write parcels.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.service.ImportNHDRA(cmd.Context())
			if err != nil {
				return err
			}
			return a.reporter.Render(importSummary(res, a.cfg.Report.SampleRows))
		},
	}
}

func (a *App) mergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Attach NHDRA building detail to parcels",
		Long: `Left-join parcels.csv with the NHDRA export on upper-cased owner name and
total assessed value. Every parcel appears exactly once in the output; when
several NHDRA rows share a key the first one is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.service.Merge(cmd.Context())
			if err != nil {
				return err
			}
			return a.reporter.Render(mergeSummary(res, a.cfg.Report.SampleRows))
		},
	}
}

func (a *App) dedupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dedup",
		Short: "Keep one row per parcel and replace parcels.csv",
		Long: `Keep the first row for each parcel_id in the enhanced file, write the clean
file and then overwrite parcels.csv with the same content. Rows without a
parcel_id are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.service.Dedup(cmd.Context())
			if err != nil {
				return err
			}
			return a.reporter.Render(dedupSummary(res, a.cfg.Report.SampleRows))
		},
	}
}

func (a *App) mappingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "List the registered column mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range core.All() {
				if err := a.reporter.Render(mappingSummary(m)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
