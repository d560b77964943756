package reports

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
)

// Service derives statements from the ledger. Reads are pure: identical
// arguments with no intervening writes always produce identical statements.
// Concurrent identical requests are collapsed through singleflight before they
// reach the cache or the database.
type Service struct {
	repo  Repository
	chart coa.Chart
	cache *Cache
	group singleflight.Group
}

func NewService(repo Repository, chart coa.Chart, cache *Cache) *Service {
	return &Service{repo: repo, chart: chart, cache: cache}
}

// Cache exposes the underlying cache so the ledger service can bump it on writes.
func (s *Service) Cache() *Cache {
	return s.cache
}

// TrialBalance reports per-account debit/credit totals as of a date.
func (s *Service) TrialBalance(ctx context.Context, asOf time.Time) (TrialBalance, error) {
	var out TrialBalance
	err := s.fetch(ctx, &out, func(ctx context.Context) (any, error) {
		totals, err := s.repo.AccountTotalsAsOf(ctx, asOf)
		if err != nil {
			return nil, err
		}
		return BuildTrialBalance(s.chart, totals), nil
	}, "tb", asOf.Format("2006-01-02"))
	return out, err
}

// IncomeStatement reports revenue and expenses over an inclusive date range.
func (s *Service) IncomeStatement(ctx context.Context, from, to time.Time) (IncomeStatement, error) {
	if from.After(to) {
		return IncomeStatement{}, ErrInvalidRange
	}
	var out IncomeStatement
	err := s.fetch(ctx, &out, func(ctx context.Context) (any, error) {
		totals, err := s.repo.AccountTotalsBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return BuildIncomeStatement(s.chart, totals), nil
	}, "is", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return out, err
}

// BalanceSheet reports assets against liabilities plus equity as of a date.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	var out BalanceSheet
	err := s.fetch(ctx, &out, func(ctx context.Context) (any, error) {
		totals, err := s.repo.AccountTotalsAsOf(ctx, asOf)
		if err != nil {
			return nil, err
		}
		return BuildBalanceSheet(s.chart, totals), nil
	}, "bs", asOf.Format("2006-01-02"))
	return out, err
}

// fetch collapses concurrent identical reads, then goes through the versioned
// cache with loader as the fallback.
func (s *Service) fetch(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error {
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		// A broken cache must not take statement reads down with it.
		value, loadErr := loader(ctx)
		if loadErr != nil {
			return loadErr
		}
		return assign(dest, value)
	}
	value, err, _ := s.group.Do(key, func() (any, error) {
		var raw json.RawMessage
		if err := s.cache.FetchJSON(ctx, key, &raw, loader); err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(value.(json.RawMessage), dest)
}

func assign(dest any, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
