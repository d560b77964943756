package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type mockRepo struct {
	asOfTotals    []AccountTotals
	betweenTotals []AccountTotals
	asOfCalls     int
	betweenCalls  int
	err           error
}

func (m *mockRepo) AccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]AccountTotals, error) {
	m.asOfCalls++
	return m.asOfTotals, m.err
}

func (m *mockRepo) AccountTotalsBetween(ctx context.Context, from, to time.Time) ([]AccountTotals, error) {
	m.betweenCalls++
	return m.betweenTotals, m.err
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, testChart(), NewCache(client, time.Minute))
}

func TestTrialBalanceUsesCacheUntilBump(t *testing.T) {
	repo := &mockRepo{asOfTotals: []AccountTotals{
		{Code: "110000", Debit: amount("100000")},
		{Code: "410000", Credit: amount("100000")},
	}}
	svc := newTestService(t, repo)
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	first, err := svc.TrialBalance(ctx, asOf)
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}
	second, err := svc.TrialBalance(ctx, asOf)
	if err != nil {
		t.Fatalf("trial balance (cached): %v", err)
	}
	if repo.asOfCalls != 1 {
		t.Fatalf("repo calls = %d, want 1 (second read served from cache)", repo.asOfCalls)
	}
	if !first.TotalDebit.Equal(second.TotalDebit) || first.IsBalanced != second.IsBalanced {
		t.Fatal("cached read differs from fresh read")
	}

	if err := svc.Cache().Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	if _, err := svc.TrialBalance(ctx, asOf); err != nil {
		t.Fatalf("trial balance after bump: %v", err)
	}
	if repo.asOfCalls != 2 {
		t.Fatalf("repo calls = %d, want 2 after bump", repo.asOfCalls)
	}
}

func TestIncomeStatementRejectsInvertedRange(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	if _, err := svc.IncomeStatement(context.Background(), from, to); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestBalanceSheetSurvivesCacheOutage(t *testing.T) {
	repo := &mockRepo{asOfTotals: []AccountTotals{
		{Code: "110000", Debit: amount("500")},
		{Code: "310000", Credit: amount("500")},
	}}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewService(repo, testChart(), NewCache(client, time.Minute))

	mr.Close()

	bs, err := svc.BalanceSheet(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("balance sheet without cache: %v", err)
	}
	if !bs.TotalAssets.Equal(amount("500")) || !bs.IsBalanced {
		t.Fatalf("unexpected statement: %+v", bs)
	}
}

func TestStatementReadsAreIdempotent(t *testing.T) {
	repo := &mockRepo{betweenTotals: []AccountTotals{
		{Code: "410000", Credit: amount("100000")},
		{Code: "520000", Debit: amount("40000")},
	}}
	svc := NewService(repo, testChart(), NewCache(nil, 0))
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	first, err := svc.IncomeStatement(ctx, from, to)
	if err != nil {
		t.Fatalf("income statement: %v", err)
	}
	second, err := svc.IncomeStatement(ctx, from, to)
	if err != nil {
		t.Fatalf("income statement (repeat): %v", err)
	}
	if !first.NetIncome.Equal(second.NetIncome) || !first.NetIncome.Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("net income drifted: %s vs %s", first.NetIncome, second.NetIncome)
	}
}
