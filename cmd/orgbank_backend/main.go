package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/core/services"
	"github.com/SscSPs/org_banking/internal/dto"
	"github.com/SscSPs/org_banking/internal/handlers"
	"github.com/SscSPs/org_banking/internal/middleware"
	"github.com/SscSPs/org_banking/internal/platform/config"
	"github.com/SscSPs/org_banking/internal/platform/lock"
	"github.com/SscSPs/org_banking/internal/platform/metrics"
	"github.com/SscSPs/org_banking/internal/platform/scheduler"
	"github.com/SscSPs/org_banking/internal/repositories/database/pgsql"
	"github.com/SscSPs/org_banking/internal/repositories/memory"
	"github.com/SscSPs/org_banking/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Org Banking API
// @version 1.0
// @description Dual-authorization transaction engine for organization bank accounts.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	reconcileDate := flag.String("reconcile-date", "", "reconcile the given day (YYYY-MM-DD) once and exit")
	flag.Parse()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	locker, closeLocker, err := buildLocker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLocker()

	recorder := metrics.NewRecorder()
	container := services.NewServiceContainer(cfg, repos,
		services.WithLogger(logger),
		services.WithMetrics(recorder),
		services.WithLocker(locker),
	)

	if *reconcileDate != "" {
		if err := runReconciliationOnce(ctx, container, *reconcileDate, logger); err != nil {
			logger.Error("Manual reconciliation failed", slog.String("date", *reconcileDate), slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	sched := scheduler.New(logger, cfg.ReconciliationTimezone)
	if err := scheduleReconciliation(sched, cfg, container); err != nil {
		logger.Error("Failed to schedule reconciliation", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()
	if cfg.ReconciliationRunOnStart {
		if err := sched.RunNow(reconciliationJob); err != nil {
			logger.Error("Failed to trigger startup reconciliation", slog.String("error", err.Error()))
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, recorder); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
		}
	case sig := <-quit:
		logger.Info("Shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Error("Scheduler did not stop in time", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// buildRepositories opens the configured storage backend. The returned
// closer releases whatever was opened.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		store := memory.NewStore()
		if cfg.MemorySeedFile != "" {
			if err := memory.LoadSeedFile(store, cfg.MemorySeedFile); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
			logger.Info("Memory store seeded", slog.String("file", cfg.MemorySeedFile))
		}
		return store.Provider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	closer := func() {
		if cerr := sqlDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
		dbPool.Close()
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		closer()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if err := database.RunMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
		closer()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if cfg.EnableDBCheck {
		if err := database.VerifySchema(ctx, sqlDB, database.RequiredTables); err != nil {
			closer()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database schema verified")
	}

	return pgsql.NewRepositoryProvider(dbPool), closer, nil
}

// buildLocker returns a redis-backed run lock when REDIS_URL is set, so only
// one replica reconciles a given day.
func buildLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, reconciliation runs without a distributed lock")
		return lock.NoopLocker{}, func() {}, nil
	}
	client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return lock.NewRedisLocker(client), func() { _ = client.Close() }, nil
}

const reconciliationJob = "daily-reconciliation"

func scheduleReconciliation(sched *scheduler.Scheduler, cfg *config.Config, container *portssvc.ServiceContainer) error {
	job := func(ctx context.Context) {
		// Errors and per-account failures are logged by the service.
		_, _ = container.Reconciliation.GenerateDailyReports(ctx)
	}
	if cfg.ReconciliationCron != "" {
		return sched.Cron(cfg.ReconciliationCron, reconciliationJob, job)
	}
	return sched.Every(cfg.ReconciliationInterval, reconciliationJob, job)
}

func runReconciliationOnce(ctx context.Context, container *portssvc.ServiceContainer, rawDate string, logger *slog.Logger) error {
	day, err := time.Parse(dto.ReportDateLayout, rawDate)
	if err != nil {
		return err
	}
	created, err := container.Reconciliation.GenerateDailyReportsForDate(ctx, day)
	if err != nil {
		return err
	}
	logger.Info("Manual reconciliation finished", slog.String("date", rawDate), slog.Int("reports_created", created))
	return nil
}
