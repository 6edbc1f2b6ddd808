package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/thebar-catering/thebar-site/internal/api/router"
	"github.com/thebar-catering/thebar-site/internal/app/bootstrap"
	"github.com/thebar-catering/thebar-site/internal/auth"
	appconfig "github.com/thebar-catering/thebar-site/internal/config"
	"github.com/thebar-catering/thebar-site/internal/health"
	httpmiddleware "github.com/thebar-catering/thebar-site/internal/http/middleware"
	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/internal/site"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/migrations"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting thebar-site API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		db, err := openSQLDB(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		sqlDB = db
		if cfg.MigrateOnStart {
			if err := migrations.Up(sqlDB); err != nil {
				logger.Error("failed to apply migrations", "error", err)
				os.Exit(1)
			}
			logger.Info("migrations applied")
		}
	}

	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}
	repo := buildRepository(pool, logger)

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	loc := bootstrap.Location(cfg, logger)

	integ, err := setupIntegrations(ctx, cfg, loc, logger)
	if err != nil {
		logger.Error("failed to set up integrations", "error", err)
		os.Exit(1)
	}

	metricsHandler, submissionMetrics := setupMetrics()

	svc := submissions.NewService(submissions.ServiceConfig{
		Repo:          repo,
		Guard:         bootstrap.BuildDuplicateGuard(redisClient, cfg),
		Notifiers:     integ.notifiers,
		Archiver:      integ.archiver,
		Metrics:       submissionMetrics,
		NotifyTimeout: cfg.NotifyTimeout,
		Logger:        logger,
	})

	var issuer *auth.Issuer
	if cfg.AdminJWTSecret != "" {
		issuer, err = auth.NewIssuer(cfg.AdminJWTSecret, cfg.AdminTokenTTL)
		if err != nil {
			logger.Error("failed to create token issuer", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("ADMIN_JWT_SECRET not set; admin endpoints disabled")
	}

	checks := map[string]health.Pinger{}
	if sqlDB != nil {
		checks["database"] = sqlDB
	}
	if redisClient != nil {
		checks["redis"] = health.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	limiter := httpmiddleware.NewRateLimiter(cfg.SubmitRateLimitRPS, cfg.SubmitRateLimitBurst)
	defer limiter.Close()

	siteHandler := site.NewHandler(site.ServiceSubmitter{Service: svc}, logger)
	if locale, ok := i18n.Parse(cfg.DefaultLocale); ok {
		siteHandler.SetDefaultLocale(locale)
	}

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		SubmissionsHandler: submissions.NewHandler(svc, logger),
		AuthHandler:        auth.NewHandler(issuer, cfg.AdminUsername, cfg.AdminPasswordHash, submissionMetrics, logger),
		Issuer:             issuer,
		HealthHandler:      health.NewHandler(checks, logger),
		SiteHandler:        siteHandler,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SubmitLimiter:      limiter,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
