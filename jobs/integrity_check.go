package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/reports"
	jobmetrics "github.com/chichermo/KaiZenith-sub001/internal/jobs"
)

// UnbalancedGauge flags ledger corruption for the scrape endpoint.
type UnbalancedGauge interface {
	SetLedgerUnbalanced(unbalanced bool)
}

// IntegrityCheckJob rebuilds the trial balance and balance sheet and raises an
// alarm when either stops balancing. A false is_balanced can only come from
// out-of-band writes, so every hit is logged loudly.
type IntegrityCheckJob struct {
	Reports *reports.Service
	Gauge   UnbalancedGauge
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewIntegrityCheckJob initialises the integrity check handler.
func NewIntegrityCheckJob(reportsService *reports.Service, gauge UnbalancedGauge, logger *slog.Logger, metrics *jobmetrics.Metrics) *IntegrityCheckJob {
	return &IntegrityCheckJob{
		Reports: reportsService,
		Gauge:   gauge,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the integrity check.
func (j *IntegrityCheckJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("integrity check: handler not configured")
	}
	var payload IntegrityCheckPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	asOf := j.now()
	if payload.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", payload.AsOf)
		if err != nil {
			return asynq.SkipRetry
		}
		asOf = parsed
	}

	tracker := j.metrics().Track(TaskLedgerIntegrityCheck)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Time("as_of", asOf))
	logger.Info("starting ledger integrity check")

	var (
		tb reports.TrialBalance
		bs reports.BalanceSheet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tb, err = j.Reports.TrialBalance(gctx, asOf)
		return err
	})
	g.Go(func() error {
		var err error
		bs, err = j.Reports.BalanceSheet(gctx, asOf)
		return err
	})
	if err := g.Wait(); err != nil {
		resultErr = err
		logger.Error("integrity check failed", slog.Any("error", err))
		return resultErr
	}

	issues := 0
	if !tb.IsBalanced {
		issues++
		logger.Warn("trial balance out of balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()),
		)
		j.metrics().AddIntegrityIssues("trial_balance", 1)
	}
	if !bs.IsBalanced {
		issues++
		logger.Warn("balance sheet identity violated",
			slog.String("total_assets", bs.TotalAssets.String()),
			slog.String("total_liabilities", bs.TotalLiabilities.String()),
			slog.String("total_equity", bs.TotalEquity.String()),
		)
		j.metrics().AddIntegrityIssues("balance_sheet", 1)
	}
	if j.Gauge != nil {
		j.Gauge.SetLedgerUnbalanced(issues > 0)
	}

	logger.Info("completed ledger integrity check",
		slog.Int("accounts", len(tb.Rows)),
		slog.Int("issues", issues),
	)
	return resultErr
}

func (j *IntegrityCheckJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

func (j *IntegrityCheckJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *IntegrityCheckJob) metrics() *jobmetrics.Metrics {
	return j.Metrics
}
