// Package main is the entry point for the trip builder API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
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
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-builder/internal/catalog"
	"github.com/pkordes/trip-builder/internal/config"
	"github.com/pkordes/trip-builder/internal/handler"
	"github.com/pkordes/trip-builder/internal/metrics"
	"github.com/pkordes/trip-builder/internal/middleware"
	"github.com/pkordes/trip-builder/internal/repo"
	"github.com/pkordes/trip-builder/internal/service"
	"github.com/pkordes/trip-builder/internal/telemetry"
	"github.com/pkordes/trip-builder/migrations"
)

const serviceName = "trip-builder"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Telemetry --------------------------------------------------------
	shutdownTracing, err := telemetry.Init(ctx, cfg.OTLPEndpoint, serviceName, version)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown", "error", err)
		}
	}()

	recorder := metrics.NewRecorder()
	cat := catalog.Default()

	// --- Persistence ------------------------------------------------------
	// Without DATABASE_URL the server keeps trips in memory only and the
	// publisher just waits PUBLISH_DELAY.
	var (
		publisher service.Publisher = service.SimulatedPublisher{Delay: cfg.PublishDelay}
		opts                        = []handler.Option{
			handler.WithLogger(logger),
			handler.WithMetrics(recorder.Handler()),
		}
	)
	if cfg.DatabaseURL != "" {
		pool, err := openDatabase(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		trips := repo.NewTripRepo(pool)
		publisher = service.NewRepoPublisher(trips, service.DefaultRetryConfig())
		opts = append(opts, handler.WithSavedTrips(service.NewSavedTripService(trips, logger)))
	} else {
		logger.Info("DATABASE_URL not set, publishing is simulated", "delay", cfg.PublishDelay)
	}

	builder := service.NewTripBuilder(cat, publisher, service.Options{
		DaysCount: cfg.DefaultDays,
		MaxDays:   cfg.MaxDays,
		CreatorID: cfg.CreatorID,
		Logger:    logger,
		Recorder:  recorder,
	})
	srv := handler.NewServer(builder, cat, opts...)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → rate limit → body size.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Handler())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", httpServer.Addr, "version", version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		// In-flight requests, including a publish, get 15 seconds to finish.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openDatabase connects the pool, checks the database is reachable and
// applies pending migrations.
func openDatabase(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("database connection established")

	// goose needs database/sql; borrow the pool's connections through the
	// pgx stdlib adapter. The adapter keeps no idle connections of its own.
	applied, err := migrations.Up(ctx, stdlib.OpenDBFromPool(pool))
	if err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("migrations applied", "count", applied)
	return pool, nil
}
