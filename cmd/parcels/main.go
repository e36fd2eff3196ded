package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/e-stacy/lebanon-property-tax-map/internal/application"
	"github.com/e-stacy/lebanon-property-tax-map/internal/config"
	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
	_ "github.com/e-stacy/lebanon-property-tax-map/internal/core/mappings" // Register column mappings
	"github.com/e-stacy/lebanon-property-tax-map/internal/logging"
)

func main() {
	// Diagnostics go to stdout from the start, even before config is read
	logging.Setup("info", "text")

	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		application.PrintError(os.Stdout, err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "env_file", envLoaded, "config", cfg.String())
	slog.Debug("mappings registered", "count", core.MappingCount())

	// Ctrl-C stops the current step before anything is written
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.New(cfg, os.Stdout).Execute(ctx, os.Args[1:]); err != nil {
		application.PrintError(os.Stdout, err)
		stop()
		os.Exit(1)
	}
}
