// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yomira Reader HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the catalogue source (seed file or PostgreSQL + migrations).
//  4. Open the library store (memory, Redis or SQLite).
//  5. Wire services, the reader registry and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/yomira-reader/internal/api"
	"github.com/taibuivan/yomira-reader/internal/core/catalog"
	"github.com/taibuivan/yomira-reader/internal/core/gallery"
	"github.com/taibuivan/yomira-reader/internal/core/library"
	"github.com/taibuivan/yomira-reader/internal/core/reader"
	"github.com/taibuivan/yomira-reader/internal/platform/config"
	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/migration"
	pgstore "github.com/taibuivan/yomira-reader/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-reader/internal/platform/redis"
	"github.com/taibuivan/yomira-reader/internal/platform/sqlite"
	"github.com/taibuivan/yomira-reader/internal/platform/telemetry"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String(constants.FieldVersion, constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String(constants.FieldApp, constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("catalog_backend", cfg.CatalogBackend),
		slog.String("library_backend", cfg.LibraryBackend),
	)

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	metrics := telemetry.New()
	var checks []api.Check

	// ── 3. Catalogue ──────────────────────────────────────────────────────
	source, catalogCheck, closeCatalog, err := openCatalog(startupCtx, cfg, log)
	must(log, err, "open catalogue")
	defer closeCatalog()
	if catalogCheck != nil {
		checks = append(checks, *catalogCheck)
	}

	// ── 4. Library store ──────────────────────────────────────────────────
	store, closeStore, err := openLibrary(startupCtx, cfg, log)
	must(log, err, "open library store")
	defer closeStore()
	checks = append(checks, api.Check{Name: cfg.LibraryBackend, Ping: store.Ping})

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	catalogService := catalog.NewService(source, metrics, log)
	libraryService := library.NewService(store, library.Options{
		HistoryCap:    cfg.ProgressHistoryCap,
		BrightnessMin: cfg.Reader.BrightnessMin,
		BrightnessMax: cfg.Reader.BrightnessMax,
	}, metrics, log)

	registry := reader.NewRegistry(reader.Dependencies{
		Content:     catalogService,
		Preferences: libraryService,
		Progress:    libraryService,
		Limits:      reader.LimitsFromConfig(cfg.Reader),
		Metrics:     metrics,
		Logger:      log,
	}, cfg.Reader.SessionTTL)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	registryDone := make(chan struct{})
	go func() {
		registry.Run(rootCtx)
		close(registryDone)
	}()

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{Checks: checks}, log)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalogService),
		Library:   library.NewHandler(libraryService),
		Reader:    reader.NewHandler(registry),
	}

	server := api.NewServer(rootCtx, cfg, log, metrics, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	shutdownErr := server.Shutdown(constants.ShutdownTimeout)

	// Sessions are closed only after in-flight requests have drained.
	rootCancel()
	<-registryDone

	if shutdownErr != nil {
		log.Error("shutdown_error", slog.Any("error", shutdownErr))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// openCatalog builds the catalogue source named by CATALOG_BACKEND. The
// postgres backend also contributes a readiness check and applies migrations.
func openCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (catalog.Source, *api.Check, func(), error) {
	switch cfg.CatalogBackend {
	case config.BackendPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		check := &api.Check{Name: "postgres", Ping: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}}
		closer := func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}
		return catalog.NewPostgresSource(pool), check, closer, nil

	default:
		records, err := gallery.LoadSeed(cfg.CatalogSeedPath)
		if err != nil {
			return nil, nil, nil, err
		}
		source, err := gallery.BuildSource(records)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("catalog_seed_loaded",
			slog.String("path", cfg.CatalogSeedPath),
			slog.Int("titles", source.Len()),
		)
		return source, nil, func() {}, nil
	}
}

// openLibrary builds the preference/progress store named by LIBRARY_BACKEND.
func openLibrary(ctx context.Context, cfg *config.Config, log *slog.Logger) (library.Store, func(), error) {
	switch cfg.LibraryBackend {
	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			log.Info("closing_redis_client")
			if cerr := client.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}
		return library.NewRedisStore(client), closer, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		store, err := library.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("sqlite library store: %w", err)
		}
		closer := func() {
			log.Info("closing_sqlite_database")
			if cerr := db.Close(); cerr != nil {
				log.Error("sqlite_close_error", slog.Any("error", cerr))
			}
		}
		return store, closer, nil

	default:
		return library.NewMemoryStore(), func() {}, nil
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
