package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thebar-catering/thebar-site/cmd/mainconfig"
	"github.com/thebar-catering/thebar-site/internal/app/bootstrap"
	"github.com/thebar-catering/thebar-site/internal/archive"
	appconfig "github.com/thebar-catering/thebar-site/internal/config"
	"github.com/thebar-catering/thebar-site/internal/notify"
	"github.com/thebar-catering/thebar-site/internal/observability/metrics"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// setupMetrics builds a dedicated registry so tests can create it repeatedly.
func setupMetrics() (http.Handler, *metrics.SubmissionMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewSubmissionMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), m
}

// openSQLDB opens the database/sql handle used for migrations and readiness.
func openSQLDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(databaseURL) == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres not reachable", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

func buildRepository(pool *pgxpool.Pool, logger *logging.Logger) submissions.Repository {
	if pool == nil {
		logger.Warn("DATABASE_URL not set or unreachable; submissions are kept in memory")
		return submissions.NewInMemoryRepository()
	}
	return submissions.NewPostgresRepository(pool)
}

type integrations struct {
	notifiers   []submissions.Notifier
	archiver    submissions.ExportArchiver
	emailSender string
}

// setupIntegrations wires email, Google Sheets and the S3 export archive.
// AWS is only initialized when SES or S3 is configured.
func setupIntegrations(ctx context.Context, cfg *appconfig.Config, loc *time.Location, logger *logging.Logger) (integrations, error) {
	var (
		sesClient notify.SESAPI
		s3Client  archive.S3API
	)
	if cfg.UsesAWS() {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return integrations{}, fmt.Errorf("load aws config: %w", err)
		}
		clients := bootstrap.BuildAWSClients(awsCfg, cfg)
		sesClient = clients.SES
		s3Client = clients.S3
	}

	sender, provider := bootstrap.BuildEmailSender(cfg, sesClient, logger)
	if sender == nil {
		logger.Warn("no email provider configured; operator emails disabled")
	} else {
		logger.Info("email provider selected", "provider", provider)
	}

	notifiers, err := bootstrap.BuildNotifiers(ctx, cfg, sender, loc, logger)
	if err != nil {
		return integrations{}, err
	}
	return integrations{
		notifiers:   notifiers,
		archiver:    bootstrap.BuildExportArchiver(cfg, s3Client, logger),
		emailSender: provider,
	}, nil
}
