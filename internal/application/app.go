// Package application wires configuration, the core service and the run
// report into the parcels command line.
package application

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/e-stacy/lebanon-property-tax-map/internal/config"
	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
	"github.com/e-stacy/lebanon-property-tax-map/internal/logging"
	"github.com/e-stacy/lebanon-property-tax-map/internal/report"
)

// App holds everything a command needs.
type App struct {
	cfg *config.Config
	out io.Writer

	// Flag overrides, applied in setup.
	logLevel     string
	reportFormat string
	sampleRows   int

	service  *core.Service
	reporter *report.Reporter
}

// New creates an App. A nil out writes to stdout.
func New(cfg *config.Config, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{cfg: cfg, out: out}
}

// Execute runs the command line with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "parcels",
		Short: "Reconcile Lebanon parcel data with the NHDRA assessment export",
		Long: `parcels builds the parcels dataset behind the property tax map.

Run the steps in order:

  import-nhdra  map the raw NHDRA export onto the parcels schema
  merge         attach NHDRA building detail to parcels by owner and total value
  dedup         keep one row per parcel_id and replace parcels.csv

File locations come from the environment or a .env file.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentFlags().StringVarP(&a.reportFormat, "report", "r", "", "report format: auto, table, markdown, none (overrides REPORT_FORMAT)")
	root.PersistentFlags().IntVar(&a.sampleRows, "sample", -1, "rows shown in the report sample (overrides REPORT_SAMPLE_ROWS)")

	root.AddCommand(
		a.importCommand(),
		a.mergeCommand(),
		a.dedupCommand(),
		a.mappingsCommand(),
	)
	return root
}

// setup applies flag overrides and builds the service and reporter.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
		logging.SetupWriter(a.out, a.cfg.Logging.Level, a.cfg.Logging.Format)
	}
	if a.reportFormat != "" {
		a.cfg.Report.Format = a.reportFormat
	}
	if a.sampleRows >= 0 {
		a.cfg.Report.SampleRows = a.sampleRows
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	format, err := report.ParseFormat(a.cfg.Report.Format)
	if err != nil {
		return err
	}
	a.reporter = report.New(a.out, format)
	a.service = core.NewService(ServiceOptions(a.cfg))
	return nil
}

// ServiceOptions maps configuration onto core.Options.
func ServiceOptions(cfg *config.Config) core.Options {
	return core.Options{
		NHDRAPath:     cfg.Paths.NHDRA,
		ParcelsPath:   cfg.Paths.Parcels,
		EnhancedPath:  cfg.Paths.Enhanced,
		CleanPath:     cfg.Paths.Clean,
		NHDRASkipRows: cfg.Input.NHDRASkipRows,
		MaxFileSize:   cfg.Input.MaxFileSize,
		MergeSuffix:   cfg.Merge.Suffix,
		DedupColumn:   cfg.Merge.DedupColumn,
	}
}
