package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
	"github.com/chichermo/KaiZenith-sub001/internal/accounting/ledger"
	"github.com/chichermo/KaiZenith-sub001/internal/accounting/reports"
	"github.com/chichermo/KaiZenith-sub001/internal/app"
	"github.com/chichermo/KaiZenith-sub001/internal/observability"
	"github.com/chichermo/KaiZenith-sub001/internal/payroll"
	"github.com/chichermo/KaiZenith-sub001/internal/platform/cache"
	"github.com/chichermo/KaiZenith-sub001/internal/platform/db"
	"github.com/chichermo/KaiZenith-sub001/internal/sales/quotations"
	"github.com/chichermo/KaiZenith-sub001/internal/shared"
	"github.com/chichermo/KaiZenith-sub001/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, "kaizenith")

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, derived statements will not be cached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)
	chart := coa.DefaultChart()

	reportsCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportsRepo := reports.NewRepository(pool)
	reportsService := reports.NewService(reportsRepo, chart, reportsCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	ledgerRepo := ledger.NewRepository(pool)
	ledgerService := ledger.NewService(ledgerRepo, auditLogger, reportsCache, metrics)
	ledgerService.WithLogger(logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	quotationsRepo := quotations.NewRepository(pool)
	quotationsService := quotations.NewService(quotationsRepo)
	quotationsService.WithAudit(auditLogger)
	quotationsService.WithLogger(logger)
	quotationsHandler := quotations.NewHandler(logger, quotationsService)

	payrollRepo := payroll.NewRepository(pool)
	payrollService := payroll.NewService(payrollRepo, payroll.DefaultTaxPolicy())
	payrollHandler := payroll.NewHandler(logger, payrollService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		ChartHandler:      coa.NewHandler(chart),
		LedgerHandler:     ledgerHandler,
		ReportsHandler:    reportsHandler,
		QuotationsHandler: quotationsHandler,
		PayrollHandler:    payrollHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
