package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/user/project-roster/internal/adapter/api"
	"github.com/user/project-roster/internal/adapter/api/middleware"
	"github.com/user/project-roster/internal/adapter/metrics"
	"github.com/user/project-roster/internal/adapter/repository/postgres"
	redisrepo "github.com/user/project-roster/internal/adapter/repository/redis"
	"github.com/user/project-roster/internal/domain"
	"github.com/user/project-roster/internal/pkg/config"
	"github.com/user/project-roster/internal/pkg/logger"
	"github.com/user/project-roster/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	roles := domain.DefaultRoles
	if len(cfg.RoleCatalog) > 0 {
		roles = cfg.RoleCatalog
	}
	catalog, err := domain.NewCatalog(roles)
	if err != nil {
		logger.Error("invalid role catalog", "error", err)
		os.Exit(1)
	}

	m := metrics.NewRosterMetrics()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database and Redis Connections ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisAddr)
		if err != nil {
			logger.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("could not connect to redis, admin checks will hit the database", "error", err)
		}
	} else {
		logger.Warn("no redis address configured, admin cache disabled")
	}

	// --- Initialize Repositories ---
	membershipRepo := postgres.NewMembershipRepository(db, logger)
	directoryRepo := postgres.NewDirectoryRepository(db)
	adminGate := redisrepo.NewAdminGate(db, redisClient, logger, cfg.AdminCacheTTL, m)

	// --- Initialize Use Cases ---
	rosterUseCase := usecase.NewRosterService(membershipRepo, directoryRepo, catalog, m, logger)
	directoryUseCase := usecase.NewDirectoryService(directoryRepo)

	// --- Initialize HTTP Server ---
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api.NewRouter(cfg, logger, adminGate, rosterUseCase, directoryUseCase))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      middleware.Logging(logger)(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting roster server", "addr", server.Addr, "roles", catalog.Len())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("roster server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server shut down gracefully")
}
