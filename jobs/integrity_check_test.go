package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
	"github.com/chichermo/KaiZenith-sub001/internal/accounting/reports"
)

type stubTotalsRepo struct {
	totals []reports.AccountTotals
}

func (r stubTotalsRepo) AccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]reports.AccountTotals, error) {
	return r.totals, nil
}

func (r stubTotalsRepo) AccountTotalsBetween(ctx context.Context, from, to time.Time) ([]reports.AccountTotals, error) {
	return r.totals, nil
}

type stubGauge struct {
	set  bool
	last bool
}

func (g *stubGauge) SetLedgerUnbalanced(unbalanced bool) {
	g.set = true
	g.last = unbalanced
}

func newIntegrityJob(totals []reports.AccountTotals, gauge *stubGauge) *IntegrityCheckJob {
	chart := coa.NewChart(map[string]string{
		"110000": "Caja y bancos",
		"410000": "Ingresos por contratos",
	})
	svc := reports.NewService(stubTotalsRepo{totals: totals}, chart, reports.NewCache(nil, 0))
	return NewIntegrityCheckJob(svc, gauge, nil, nil)
}

func TestIntegrityCheckHealthyLedger(t *testing.T) {
	gauge := &stubGauge{}
	job := newIntegrityJob([]reports.AccountTotals{
		{Code: "110000", Debit: decimal.NewFromInt(100000)},
		{Code: "410000", Credit: decimal.NewFromInt(100000)},
	}, gauge)

	task, err := NewIntegrityCheckTask("2026-03-31")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !gauge.set || gauge.last {
		t.Fatalf("gauge should report balanced, got set=%v last=%v", gauge.set, gauge.last)
	}
}

func TestIntegrityCheckFlagsCorruption(t *testing.T) {
	gauge := &stubGauge{}
	job := newIntegrityJob([]reports.AccountTotals{
		{Code: "110000", Debit: decimal.NewFromInt(100000)},
		{Code: "410000", Credit: decimal.NewFromInt(99000)},
	}, gauge)

	task, err := NewIntegrityCheckTask("")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !gauge.last {
		t.Fatal("gauge should report unbalanced")
	}
}

func TestIntegrityCheckRejectsBadPayload(t *testing.T) {
	job := newIntegrityJob(nil, &stubGauge{})
	task := asynq.NewTask(TaskLedgerIntegrityCheck, []byte("{not json"))
	if err := job.Handle(context.Background(), task); err != asynq.SkipRetry {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
