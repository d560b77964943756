package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
	"github.com/chichermo/KaiZenith-sub001/internal/accounting/reports"
	"github.com/chichermo/KaiZenith-sub001/internal/app"
	jobmetrics "github.com/chichermo/KaiZenith-sub001/internal/jobs"
	"github.com/chichermo/KaiZenith-sub001/internal/observability"
	"github.com/chichermo/KaiZenith-sub001/internal/platform/cache"
	"github.com/chichermo/KaiZenith-sub001/internal/platform/db"
	"github.com/chichermo/KaiZenith-sub001/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, "kaizenith-worker")

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	chart := coa.DefaultChart()
	reportsCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportsRepo := reports.NewRepository(pool)
	reportsService := reports.NewService(reportsRepo, chart, reportsCache)

	integrityJob := jobs.NewIntegrityCheckJob(reportsService, metrics, logger, jobmetrics.NewMetrics(metrics.Registerer()))

	integrityTask, err := jobs.NewIntegrityCheckTask("")
	if err != nil {
		logger.Error("build integrity task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLedgerIntegrityCheck, Handler: integrityJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.IntegrityCronSpec, Task: integrityTask},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.String("cron", cfg.IntegrityCronSpec))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
