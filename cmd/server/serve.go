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

	"github.com/kiranshivaraju/hirescreen/internal/api"
	"github.com/kiranshivaraju/hirescreen/internal/api/handler"
	mw "github.com/kiranshivaraju/hirescreen/internal/api/middleware"
	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/cache"
	"github.com/kiranshivaraju/hirescreen/internal/config"
	"github.com/kiranshivaraju/hirescreen/internal/metrics"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	return run()
}

func run() error {
	// 1. Load config, failing fast on invalid values
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Create store and service
	pgStore := store.NewPostgresStore(pool)
	m := metrics.New()
	svc := recruit.NewService(pgStore,
		recruit.WithCache(redisCache),
		recruit.WithRecorder(m),
		recruit.WithRunStatusTTL(cfg.Screening.RunStatusCacheTTL),
		recruit.WithLogger(slog.Default()),
	)

	// 6. Build router with dependencies
	deps := buildDependencies(cfg, pgStore, redisCache, svc, m)
	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// buildDependencies wires every route to its handler.
func buildDependencies(cfg *config.Config, st store.Store, c cache.Cache, svc *recruit.Service, m *metrics.Metrics) api.Dependencies {
	deps := api.Dependencies{
		Auth:      mw.NewAuth(st),
		RateLimit: mw.NewRateLimit(c, cfg.RateLimit.PerMinute),

		HealthHandler: healthHandler(st, c),
		MeHandler:     handler.Me,

		CreateJob: handler.NewCreateJobHandler(svc),
		ListJobs:  handler.NewListJobsHandler(svc),
		GetJob:    handler.NewGetJobHandler(svc),
		UpdateJob: handler.NewUpdateJobHandler(svc),
		DeleteJob: handler.NewDeleteJobHandler(svc),

		CreateCandidate: handler.NewCreateCandidateHandler(svc),
		ListCandidates:  handler.NewListCandidatesHandler(svc),
		GetCandidate:    handler.NewGetCandidateHandler(svc),
		UpdateCandidate: handler.NewUpdateCandidateHandler(svc),
		DeleteCandidate: handler.NewDeleteCandidateHandler(svc),

		RegisterResumeFiles: handler.NewRegisterResumeFilesHandler(svc),
		ListResumeFiles:     handler.NewListResumeFilesHandler(svc),
		GetResumeFile:       handler.NewGetResumeFileHandler(svc),
		DeleteResumeFile:    handler.NewDeleteResumeFileHandler(svc),

		CreateScreeningRun:       handler.NewCreateScreeningRunHandler(svc),
		ListScreeningRuns:        handler.NewListScreeningRunsHandler(svc),
		GetScreeningRun:          handler.NewGetScreeningRunHandler(svc),
		GetScreeningRunStatus:    handler.NewGetScreeningRunStatusHandler(svc),
		UpdateScreeningRunStatus: handler.NewUpdateScreeningRunStatusHandler(svc),

		RecordScreeningResult: handler.NewRecordScreeningResultHandler(svc),
		ListScreeningResults:  handler.NewListScreeningResultsHandler(svc),

		CreateCandidateAction: handler.NewCreateCandidateActionHandler(svc),
		ListCandidateActions:  handler.NewListCandidateActionsHandler(svc),

		CreateKeyHandler: handler.NewCreateKeyHandler(st),
		ListKeysHandler:  handler.NewListKeysHandler(st),
		RevokeKeyHandler: handler.NewRevokeKeyHandler(st),
	}
	if cfg.Metrics.Enabled {
		deps.Instrument = m.Middleware
		deps.MetricsHandler = m.Handler()
	}
	return deps
}

// healthHandler checks database and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			slog.Warn("health check: database ping failed", "error", err)
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			slog.Warn("health check: cache ping failed", "error", err)
			checks["cache"] = "degraded"
		}

		if checks["database"] != "ok" || checks["cache"] != "ok" {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, "", map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
