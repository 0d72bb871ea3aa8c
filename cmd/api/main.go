// Package main is the entry point for the Wayfare itinerary API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/wayfare/backend/internal/config"
	"github.com/wayfare/backend/internal/handler"
	"github.com/wayfare/backend/internal/itinerary"
	"github.com/wayfare/backend/internal/middleware"
	"github.com/wayfare/backend/internal/service"
	"github.com/wayfare/backend/internal/snapshot"
	"github.com/wayfare/backend/migrations"
)

// maxBodySize caps request bodies. Itinerary payloads are a handful of text
// fields; 1 MiB is generous.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger. JSON handler writes
	// machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Snapshot backend -------------------------------------------------
	snapshots, cleanup, err := buildSnapshotStore(cfg)
	if err != nil {
		slog.Error("failed to set up snapshot backend", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("snapshot backend ready", "backend", cfg.StorageBackend, "namespace", cfg.SnapshotNamespace)

	// --- Itinerary store --------------------------------------------------
	// The store seeds itself from the last snapshot; a missing or corrupt
	// snapshot starts empty rather than refusing to boot.
	store := itinerary.NewStore(context.Background(), snapshots, logger,
		itinerary.WithBucketSize(cfg.DayBucketSize))
	exports := service.NewExportService(store, cfg.DayBucketSize)
	server := handler.NewServer(store, exports, cfg.DayBucketSize)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// buildSnapshotStore constructs the snapshot backend named by the config and
// returns it with a cleanup function for whatever connection it holds.
func buildSnapshotStore(cfg config.Config) (itinerary.SnapshotStore, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendFile:
		return snapshot.NewFileStore(cfg.SnapshotPath), noop, nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			client.Close()
			return nil, noop, err
		}
		return snapshot.NewRedisStore(client, cfg.SnapshotNamespace),
			func() { client.Close() }, nil

	case config.BackendPostgres:
		// pgxpool manages a pool of Postgres connections.
		// New() does not open connections immediately — the first query does.
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, noop, err
		}
		if err := migrateUp(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return snapshot.NewPostgresStore(pool, cfg.SnapshotNamespace),
			pool.Close, nil
	}

	// config.Load already validated the backend name.
	panic("unreachable storage backend: " + cfg.StorageBackend)
}

// migrateUp applies any pending migrations before the server accepts traffic.
// Goose needs database/sql, not a pgx pool, so it opens its own short-lived
// connection.
func migrateUp(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("applied migrations", "count", len(results))
	}
	return nil
}
