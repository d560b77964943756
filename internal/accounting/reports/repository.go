package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads movement aggregates for statement derivation. Statements are
// pure reads; no method here mutates anything.
type Repository interface {
	AccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]AccountTotals, error)
	AccountTotalsBetween(ctx context.Context, from, to time.Time) ([]AccountTotals, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const totalsAsOfQuery = `SELECT m.account_code, COALESCE(SUM(m.debit), 0), COALESCE(SUM(m.credit), 0)
FROM movements m
JOIN ledger_entries e ON e.id = m.entry_id
WHERE e.date <= $1
GROUP BY m.account_code
ORDER BY m.account_code`

const totalsBetweenQuery = `SELECT m.account_code, COALESCE(SUM(m.debit), 0), COALESCE(SUM(m.credit), 0)
FROM movements m
JOIN ledger_entries e ON e.id = m.entry_id
WHERE e.date >= $1 AND e.date <= $2
GROUP BY m.account_code
ORDER BY m.account_code`

func (r *repository) AccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]AccountTotals, error) {
	rows, err := r.db.Query(ctx, totalsAsOfQuery, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTotals(rows)
}

func (r *repository) AccountTotalsBetween(ctx context.Context, from, to time.Time) ([]AccountTotals, error) {
	rows, err := r.db.Query(ctx, totalsBetweenQuery, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTotals(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTotals(rows pgxRows) ([]AccountTotals, error) {
	var totals []AccountTotals
	for rows.Next() {
		var t AccountTotals
		if err := rows.Scan(&t.Code, &t.Debit, &t.Credit); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
