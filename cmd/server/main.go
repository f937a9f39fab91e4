// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("CineMatch failed to start")
	}
}

//nolint:gocyclo // sequential startup steps
func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("loader", cfg.Dataset.Loader).
		Bool("availability", cfg.Availability.Enabled).
		Msg("Starting CineMatch with supervisor tree")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, err := initRecommend(cfg, logger)
	if err != nil {
		return err
	}

	paths := dataset.Paths{
		Movies:  cfg.Dataset.MoviesPath,
		Ratings: cfg.Dataset.RatingsPath,
		Links:   cfg.Dataset.LinksPath,
	}
	loader, err := dataset.New(cfg.Dataset.Loader, paths)
	if err != nil {
		return fmt.Errorf("create dataset loader: %w", err)
	}

	bus := events.NewBus(logging.NewWatermillLogger())
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	reloader := events.NewReloader(loader, engine, bus, events.ReloadConfig{
		Workers: cfg.Recommend.SimilarityWorkers,
		Warm:    cfg.Dataset.Warm,
	}, logger)

	// The mtime is taken before loading so a file replaced mid-load is
	// picked up by the watcher.
	loadedAt, statErr := paths.LastModified()
	if _, err := reloader.Reload(ctx, "startup"); err != nil {
		logging.Error().Err(err).Msg("Initial dataset load failed; serving 503 until a reload succeeds")
		loadedAt = time.Time{}
	} else if statErr != nil {
		loadedAt = time.Time{}
	}

	avail, err := initAvailability(cfg, logger)
	if err != nil {
		return err
	}
	defer avail.Close()

	perfMon := middleware.NewPerformanceMonitor(1000, time.Second)
	handler := api.NewHandler(engine, api.HandlerOptions{
		Enricher:           avail.Enricher(),
		AvailabilityBudget: cfg.Availability.RequestBudget,
		AvailabilityState:  avail.State,
		PerfMon:            perfMon,
		Version:            version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// Bridges zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddMessagingService(services.NewEventRouterService(eventRouterFactory(cfg, bus, reloader), logger))
	if cfg.Dataset.Watch {
		tree.AddDataService(services.NewDatasetWatcherService(paths, bus, cfg.Dataset.WatchInterval, loadedAt, logger))
		logging.Info().Dur("interval", cfg.Dataset.WatchInterval).Msg("Dataset watcher added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly one value and is never closed.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("CineMatch stopped gracefully")
	return nil
}
