package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
	"github.com/chichermo/KaiZenith-sub001/internal/platform/db"
)

// Repository encapsulates DB operations for the ledger.
type Repository interface {
	List(ctx context.Context, limit, offset int) ([]Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the write operations available within a transaction.
// Record uses it so the entry row and its movement rows land atomically.
type TxRepository interface {
	InsertEntry(ctx context.Context, entry Entry) (Entry, error)
	InsertMovements(ctx context.Context, entryID int64, movements []Movement) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT id, date, description, reference_type, reference_id, idempotency_key, created_at
FROM ledger_entries ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.ReferenceType, &e.ReferenceID, &e.IdempotencyKey, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Entry, error) {
	var e Entry
	err := r.db.QueryRow(ctx, `SELECT id, date, description, reference_type, reference_id, idempotency_key, created_at
FROM ledger_entries WHERE id=$1`, id).
		Scan(&e.ID, &e.Date, &e.Description, &e.ReferenceType, &e.ReferenceID, &e.IdempotencyKey, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, entry_id, account_code, debit, credit
FROM movements WHERE entry_id=$1 ORDER BY id ASC`, id)
	if err != nil {
		return Entry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return Entry{}, err
		}
		e.Movements = append(e.Movements, m)
	}
	return e, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, entry Entry) (Entry, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO ledger_entries (date, description, reference_type, reference_id, idempotency_key)
VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		entry.Date, entry.Description, entry.ReferenceType, entry.ReferenceID, entry.IdempotencyKey)
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Entry{}, ErrDuplicateReference
		}
		return Entry{}, err
	}
	return entry, nil
}

func (r *txRepository) InsertMovements(ctx context.Context, entryID int64, movements []Movement) error {
	for _, m := range movements {
		if _, err := r.tx.Exec(ctx, `INSERT INTO movements (entry_id, account_code, debit, credit)
VALUES ($1,$2,$3,$4)`, entryID, m.AccountCode, m.Debit(), m.Credit()); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanMovement rebuilds the tagged side from the two-column storage encoding.
func scanMovement(row rowScanner) (Movement, error) {
	var m Movement
	var debit, credit decimal.Decimal
	if err := row.Scan(&m.ID, &m.EntryID, &m.AccountCode, &debit, &credit); err != nil {
		return Movement{}, err
	}
	if debit.IsPositive() {
		m.Side = coa.SideDebit
		m.Amount = debit
	} else {
		m.Side = coa.SideCredit
		m.Amount = credit
	}
	return m, nil
}
